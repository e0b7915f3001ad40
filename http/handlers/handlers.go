package handlers

import (
	"context"

	"registration-module/models"
)

// Store is the persistence surface the handlers depend on. db.Store satisfies
// it; tests substitute a fake.
type Store interface {
	InsertRegistration(ctx context.Context, reg *models.Registration) error
	GetRegistration(ctx context.Context, txnid string) (*models.Registration, error)
	MarkPaymentSuccess(ctx context.Context, txnid string, payuTxnID *string) (int64, error)
	MarkPaymentFailed(ctx context.Context, txnid string) (int64, error)
	ListRegistrations(ctx context.Context) ([]models.Registration, error)
	InsertInfluencer(ctx context.Context, inf *models.Influencer) error
	InfluencerStats(ctx context.Context, refCode string) (*models.InfluencerStats, error)
}

// EventPublisher reports payment lifecycle transitions. services.Events
// satisfies it; publishing is best-effort and never blocks a response.
type EventPublisher interface {
	PaymentInitiated(reg *models.Registration)
	PaymentSuccess(txnid, payuTxnID string)
	PaymentFailed(txnid string)
}
