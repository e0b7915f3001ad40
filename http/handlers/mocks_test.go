package handlers

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"registration-module/models"
)

var errTest = errors.New("store unavailable")

// fakeStore is an in-memory Store with per-method error injection and call
// counters, so tests can assert that an endpoint touched (or did not touch)
// the database.
type fakeStore struct {
	mu sync.Mutex

	registrations []models.Registration
	influencers   []models.Influencer
	stats         models.InfluencerStats

	insertErr error
	updateErr error
	listErr   error
	statsErr  error

	listCalls   int
	statsCalls  int
	insertCalls int
}

func (f *fakeStore) InsertRegistration(ctx context.Context, reg *models.Registration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.registrations = append(f.registrations, *reg)
	return nil
}

func (f *fakeStore) GetRegistration(ctx context.Context, txnid string) (*models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.registrations {
		if f.registrations[i].TxnID == txnid {
			reg := f.registrations[i]
			return &reg, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStore) MarkPaymentSuccess(ctx context.Context, txnid string, payuTxnID *string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	for i := range f.registrations {
		if f.registrations[i].TxnID == txnid {
			f.registrations[i].PaymentStatus = models.StatusSuccess
			f.registrations[i].PayUTxnID = payuTxnID
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeStore) MarkPaymentFailed(ctx context.Context, txnid string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	for i := range f.registrations {
		if f.registrations[i].TxnID == txnid {
			f.registrations[i].PaymentStatus = models.StatusFailed
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeStore) ListRegistrations(ctx context.Context) ([]models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Registration, len(f.registrations))
	copy(out, f.registrations)
	return out, nil
}

func (f *fakeStore) InsertInfluencer(ctx context.Context, inf *models.Influencer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertCalls++
	if f.insertErr != nil {
		return f.insertErr
	}
	f.influencers = append(f.influencers, *inf)
	return nil
}

func (f *fakeStore) InfluencerStats(ctx context.Context, refCode string) (*models.InfluencerStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statsCalls++
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	stats := f.stats
	stats.RefCode = refCode
	return &stats, nil
}

func (f *fakeStore) registration(txnid string) *models.Registration {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.registrations {
		if f.registrations[i].TxnID == txnid {
			reg := f.registrations[i]
			return &reg
		}
	}
	return nil
}

// fakeEvents records published events without a broker.
type fakeEvents struct {
	mu        sync.Mutex
	initiated []string
	success   []string
	failed    []string
}

func (f *fakeEvents) PaymentInitiated(reg *models.Registration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initiated = append(f.initiated, reg.TxnID)
}

func (f *fakeEvents) PaymentSuccess(txnid, payuTxnID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.success = append(f.success, txnid)
}

func (f *fakeEvents) PaymentFailed(txnid string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failed = append(f.failed, txnid)
}
