package models

import "time"

// Payment status values for a registration
const (
	StatusInitiated = "INITIATED"
	StatusSuccess   = "SUCCESS"
	StatusFailed    = "FAILED"
)

// Registration represents one applicant registration keyed by txnid
type Registration struct {
	ID            int       `json:"id"`
	TxnID         string    `json:"txnid"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Profession    string    `json:"profession"`
	State         string    `json:"state"`
	Batch         string    `json:"batch"`
	Language      string    `json:"language,omitempty"`
	Amount        string    `json:"amount"`
	PaymentStatus string    `json:"payment_status"`
	PayUTxnID     *string   `json:"payu_txn_id,omitempty"`
	Referral      *string   `json:"referral,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ExportColumns is the column order of registration exports (CSV and XLSX).
var ExportColumns = []string{
	"txnid", "name", "email", "phone", "profession", "state", "batch",
	"language", "amount", "payment_status", "payu_txn_id", "referral",
	"created_at",
}

// ExportRow renders the registration in ExportColumns order.
func (r *Registration) ExportRow() []string {
	payuTxnID := ""
	if r.PayUTxnID != nil {
		payuTxnID = *r.PayUTxnID
	}
	referral := ""
	if r.Referral != nil {
		referral = *r.Referral
	}
	return []string{
		r.TxnID, r.Name, r.Email, r.Phone, r.Profession, r.State, r.Batch,
		r.Language, r.Amount, r.PaymentStatus, payuTxnID, referral,
		r.CreatedAt.Format(time.RFC3339),
	}
}
