package services

import (
	"time"

	"registration-module/logger"
	"registration-module/models"
	"registration-module/services/kafka"
)

// Events publishes payment lifecycle events. Publishing is best-effort: a
// broker failure is logged, never surfaced to the request path.
type Events struct {
	producer *kafka.Producer
}

// NewEvents builds the event publisher. Empty brokers disable it.
func NewEvents(brokers, topic string) *Events {
	return &Events{producer: kafka.NewProducer(brokers, topic)}
}

// Close closes the underlying producer.
func (e *Events) Close() error {
	return e.producer.Close()
}

// PaymentInitiated reports a new INITIATED registration.
func (e *Events) PaymentInitiated(reg *models.Registration) {
	evt := map[string]interface{}{
		"event":  "payment.initiated",
		"txnid":  reg.TxnID,
		"email":  reg.Email,
		"amount": reg.Amount,
		"status": models.StatusInitiated,
		"ts":     time.Now().UTC().Format(time.RFC3339),
	}
	if err := e.producer.Publish(reg.TxnID, evt); err != nil {
		logger.Warn("Failed to publish payment.initiated event: %v", err)
	}
}

// PaymentSuccess reports a SUCCESS transition.
func (e *Events) PaymentSuccess(txnid, payuTxnID string) {
	evt := map[string]interface{}{
		"event":       "payment.success",
		"txnid":       txnid,
		"payu_txn_id": payuTxnID,
		"status":      models.StatusSuccess,
		"ts":          time.Now().UTC().Format(time.RFC3339),
	}
	if err := e.producer.Publish(txnid, evt); err != nil {
		logger.Warn("Failed to publish payment.success event: %v", err)
	}
}

// PaymentFailed reports a FAILED transition.
func (e *Events) PaymentFailed(txnid string) {
	evt := map[string]interface{}{
		"event":  "payment.failed",
		"txnid":  txnid,
		"status": models.StatusFailed,
		"ts":     time.Now().UTC().Format(time.RFC3339),
	}
	if err := e.producer.Publish(txnid, evt); err != nil {
		logger.Warn("Failed to publish payment.failed event: %v", err)
	}
}
