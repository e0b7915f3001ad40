package handlers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"registration-module/models"
)

func seedRegistrations(n int) []models.Registration {
	var regs []models.Registration
	for i := 0; i < n; i++ {
		regs = append(regs, models.Registration{
			TxnID:         fmt.Sprintf("TXN%03d", i),
			Name:          "Person",
			Email:         "p@example.com",
			Phone:         "+911234567890",
			Profession:    "Student",
			State:         "Kerala",
			Batch:         "B1",
			Amount:        "1.00",
			PaymentStatus: models.StatusInitiated,
			CreatedAt:     time.Now(),
		})
	}
	return regs
}

func TestAdminWrongPasswordNoDataAccess(t *testing.T) {
	store := &fakeStore{}
	h := NewAdminHandler(testConfig(), store)

	endpoints := map[string]http.HandlerFunc{
		"/admin/download-registrations": h.DownloadRegistrations,
		"/admin/create-influencer":      h.CreateInfluencer,
		"/admin/influencer-stats":       h.InfluencerStats,
	}

	for path, handler := range endpoints {
		rec := postJSON(t, handler, path, map[string]string{
			"password": "wrong",
			"name":     "Inf",
			"email":    "inf@example.com",
			"phone":    "+911234567890",
			"ref_code": "REFABC",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", path, rec.Code)
		}
	}

	if store.listCalls != 0 || store.statsCalls != 0 || store.insertCalls != 0 {
		t.Errorf("data access performed despite bad password: list=%d stats=%d insert=%d",
			store.listCalls, store.statsCalls, store.insertCalls)
	}
}

func TestAdminMissingPasswordConfig(t *testing.T) {
	cfg := testConfig()
	cfg.AdminPassword = ""
	h := NewAdminHandler(cfg, &fakeStore{})

	rec := postJSON(t, h.DownloadRegistrations, "/admin/download-registrations",
		map[string]string{"password": ""})
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestDownloadRegistrationsCSV(t *testing.T) {
	for _, n := range []int{0, 1, 7} {
		store := &fakeStore{registrations: seedRegistrations(n)}
		h := NewAdminHandler(testConfig(), store)

		rec := postJSON(t, h.DownloadRegistrations, "/admin/download-registrations",
			map[string]string{"password": "hunter2"})
		if rec.Code != http.StatusOK {
			t.Fatalf("n=%d: status = %d: %s", n, rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
			t.Errorf("n=%d: content type = %q", n, ct)
		}
		if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "registrations.csv") {
			t.Errorf("n=%d: content disposition = %q", n, cd)
		}

		records, err := csv.NewReader(bytes.NewReader(rec.Body.Bytes())).ReadAll()
		if err != nil {
			t.Fatalf("n=%d: invalid CSV: %v", n, err)
		}
		if len(records) != n+1 {
			t.Errorf("n=%d: got %d records, want header + %d rows", n, len(records), n)
		}
		if len(records[0]) != len(models.ExportColumns) || records[0][0] != "txnid" {
			t.Errorf("n=%d: header = %v", n, records[0])
		}
	}
}

func TestDownloadRegistrationsXLSX(t *testing.T) {
	store := &fakeStore{registrations: seedRegistrations(2)}
	h := NewAdminHandler(testConfig(), store)

	rec := postJSON(t, h.DownloadRegistrations, "/admin/download-registrations?format=xlsx",
		map[string]string{"password": "hunter2"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("content type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "registrations.xlsx") {
		t.Errorf("content disposition = %q", cd)
	}
}

func TestDownloadRegistrationsStoreError(t *testing.T) {
	store := &fakeStore{listErr: errTest}
	h := NewAdminHandler(testConfig(), store)

	rec := postJSON(t, h.DownloadRegistrations, "/admin/download-registrations",
		map[string]string{"password": "hunter2"})
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestCreateInfluencer(t *testing.T) {
	store := &fakeStore{}
	h := NewAdminHandler(testConfig(), store)

	rec := postJSON(t, h.CreateInfluencer, "/admin/create-influencer", map[string]string{
		"password": "hunter2",
		"name":     "Inf",
		"email":    "inf@example.com",
		"phone":    "+911234567890",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		RefCode string `json:"ref_code"`
		Link    string `json:"link"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(resp.RefCode, "REF") {
		t.Errorf("ref_code = %q", resp.RefCode)
	}
	if !strings.Contains(resp.Link, "?ref="+resp.RefCode) {
		t.Errorf("link %q does not carry ref_code as query parameter", resp.Link)
	}
	if !strings.HasPrefix(resp.Link, "https://app.example.com/") {
		t.Errorf("link %q not built from frontend base URL", resp.Link)
	}

	if len(store.influencers) != 1 || store.influencers[0].RefCode != resp.RefCode {
		t.Errorf("influencer row not persisted: %+v", store.influencers)
	}
}

func TestCreateInfluencerValidation(t *testing.T) {
	h := NewAdminHandler(testConfig(), &fakeStore{})

	rec := postJSON(t, h.CreateInfluencer, "/admin/create-influencer", map[string]string{
		"password": "hunter2",
		"name":     "Inf",
		"email":    "not-an-email",
		"phone":    "+911234567890",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	rec = postJSON(t, h.CreateInfluencer, "/admin/create-influencer", map[string]string{
		"password": "hunter2",
		"email":    "inf@example.com",
		"phone":    "+911234567890",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing name: status = %d, want 400", rec.Code)
	}
}

func TestInfluencerStats(t *testing.T) {
	store := &fakeStore{stats: models.InfluencerStats{Initiated: 4, Success: 2, Revenue: 998.0}}
	h := NewAdminHandler(testConfig(), store)

	rec := postJSON(t, h.InfluencerStats, "/admin/influencer-stats", map[string]string{
		"password": "hunter2",
		"ref_code": "REFABC",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Initiated int     `json:"initiated"`
		Success   int     `json:"success"`
		Revenue   float64 `json:"revenue"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Initiated != 4 || resp.Success != 2 || resp.Revenue != 998.0 {
		t.Errorf("stats = %+v", resp)
	}
}

func TestInfluencerStatsMissingRefCode(t *testing.T) {
	h := NewAdminHandler(testConfig(), &fakeStore{})

	rec := postJSON(t, h.InfluencerStats, "/admin/influencer-stats", map[string]string{
		"password": "hunter2",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
