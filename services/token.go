package services

import (
	"strings"

	"github.com/google/uuid"
)

// NewTxnID returns a fresh transaction id. Random UUIDs replace the legacy
// time-based tokens so concurrent requests cannot collide. PayU caps txnid
// at 25 characters.
func NewTxnID() string {
	return "TXN" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:22]
}

// NewRefCode returns a fresh referral code for an influencer.
func NewRefCode() string {
	return "REF" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:13]
}
