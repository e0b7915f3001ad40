package handlers

import (
	"crypto/hmac"
	"encoding/json"
	"net/http"
	"strings"

	"registration-module/config"
	"registration-module/errors"
	"registration-module/http/response"
	"registration-module/logger"
	"registration-module/models"
	"registration-module/services"
	"registration-module/utils"
)

// AdminHandler serves the password-gated operator endpoints.
type AdminHandler struct {
	cfg   config.Config
	store Store
}

// NewAdminHandler wires the handler with its dependencies.
func NewAdminHandler(cfg config.Config, store Store) *AdminHandler {
	return &AdminHandler{cfg: cfg, store: store}
}

// checkPassword authorizes a request against the shared admin password using
// a constant-time comparison. Returns nil on match.
func (h *AdminHandler) checkPassword(password string) error {
	if h.cfg.AdminPassword == "" {
		logger.Error("CRITICAL: ADMIN_PASSWORD is not set!")
		return errors.NewConfigError("Server configuration error")
	}
	if !hmac.Equal([]byte(password), []byte(h.cfg.AdminPassword)) {
		return errors.NewUnauthorizedError("Unauthorized")
	}
	return nil
}

type downloadRequest struct {
	Password string `json:"password"`
}

// DownloadRegistrations exports every registration, newest first, as a CSV
// attachment; ?format=xlsx selects a spreadsheet rendering instead.
func (h *AdminHandler) DownloadRegistrations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.SendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.SendAppError(w, errors.NewInvalidParamsError("Invalid request body"))
		return
	}

	if err := h.checkPassword(req.Password); err != nil {
		response.SendAppError(w, err)
		return
	}

	regs, err := h.store.ListRegistrations(r.Context())
	if err != nil {
		logger.Error("Database error listing registrations: %v", err)
		response.SendAppError(w, errors.E(errors.Internal, "Database error", err))
		return
	}

	if r.URL.Query().Get("format") == "xlsx" {
		data, err := services.RegistrationsXLSX(regs)
		if err != nil {
			logger.Error("Error rendering XLSX export: %v", err)
			response.SendAppError(w, errors.E(errors.Internal, "Export error", err))
			return
		}
		response.SendAttachment(w, "registrations.xlsx",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
		return
	}

	data, err := services.RegistrationsCSV(regs)
	if err != nil {
		logger.Error("Error rendering CSV export: %v", err)
		response.SendAppError(w, errors.E(errors.Internal, "Export error", err))
		return
	}
	response.SendAttachment(w, "registrations.csv", "text/csv", data)
}

type createInfluencerRequest struct {
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type createInfluencerResponse struct {
	RefCode string `json:"ref_code"`
	Link    string `json:"link"`
}

// CreateInfluencer issues a referral code and a shareable link carrying it.
func (h *AdminHandler) CreateInfluencer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.SendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req createInfluencerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.SendAppError(w, errors.NewInvalidParamsError("Invalid request body"))
		return
	}

	if err := h.checkPassword(req.Password); err != nil {
		response.SendAppError(w, err)
		return
	}

	if h.cfg.FrontendURL == "" {
		logger.Error("CRITICAL: FRONTEND_URL is not set!")
		response.SendAppError(w, errors.NewConfigError("Server configuration error"))
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Phone) == "" {
		response.SendAppError(w, errors.NewInvalidParamsError("Missing required fields"))
		return
	}
	if err := utils.ValidateEmail(req.Email); err != nil {
		response.SendAppError(w, errors.NewInvalidParamsError("Invalid email"))
		return
	}

	inf := &models.Influencer{
		RefCode: services.NewRefCode(),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
	}

	if err := h.store.InsertInfluencer(r.Context(), inf); err != nil {
		logger.Error("Database error inserting influencer: %v", err)
		response.SendAppError(w, errors.E(errors.Internal, "Database error", err))
		return
	}

	response.SendJSON(w, http.StatusOK, createInfluencerResponse{
		RefCode: inf.RefCode,
		Link:    h.cfg.FrontendURL + "/?ref=" + inf.RefCode,
	})
}

type influencerStatsRequest struct {
	Password string `json:"password"`
	RefCode  string `json:"ref_code"`
}

type influencerStatsResponse struct {
	Initiated int     `json:"initiated"`
	Success   int     `json:"success"`
	Revenue   float64 `json:"revenue"`
}

// InfluencerStats returns registration counts and SUCCESS revenue attributed
// to one referral code.
func (h *AdminHandler) InfluencerStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.SendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req influencerStatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.SendAppError(w, errors.NewInvalidParamsError("Invalid request body"))
		return
	}

	if err := h.checkPassword(req.Password); err != nil {
		response.SendAppError(w, err)
		return
	}

	if strings.TrimSpace(req.RefCode) == "" {
		response.SendAppError(w, errors.NewInvalidParamsError("Missing ref_code"))
		return
	}

	stats, err := h.store.InfluencerStats(r.Context(), req.RefCode)
	if err != nil {
		logger.Error("Database error aggregating influencer stats: %v", err)
		response.SendAppError(w, errors.E(errors.Internal, "Database error", err))
		return
	}

	response.SendJSON(w, http.StatusOK, influencerStatsResponse{
		Initiated: stats.Initiated,
		Success:   stats.Success,
		Revenue:   stats.Revenue,
	})
}
