package services

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"
)

func TestRequestHashRecipe(t *testing.T) {
	req := PaymentRequest{
		Key:         "testkey",
		TxnID:       "TXN123",
		Amount:      "1.00",
		ProductInfo: "ISML Foundation Program",
		Firstname:   "Alice",
		Email:       "alice@example.com",
	}

	// key|txnid|amount|productinfo|firstname|email + ten empty fields + salt
	raw := "testkey|TXN123|1.00|ISML Foundation Program|Alice|alice@example.com|||||||||||testsalt"
	sum := sha512.Sum512([]byte(raw))
	expected := hex.EncodeToString(sum[:])

	got := RequestHash(req, "testsalt")
	if got != expected {
		t.Errorf("RequestHash = %s, want %s", got, expected)
	}
	if len(got) != 128 {
		t.Errorf("RequestHash length = %d, want 128 hex chars", len(got))
	}
}

func TestRequestHashChangesWithFields(t *testing.T) {
	base := PaymentRequest{
		Key:         "k",
		TxnID:       "t",
		Amount:      "1.00",
		ProductInfo: "p",
		Firstname:   "f",
		Email:       "e@example.com",
	}
	baseHash := RequestHash(base, "s")

	other := base
	other.Amount = "2.00"
	if RequestHash(other, "s") == baseHash {
		t.Error("hash did not change when amount changed")
	}
	if RequestHash(base, "other-salt") == baseHash {
		t.Error("hash did not change when salt changed")
	}
}

func TestVerifyResponseHash(t *testing.T) {
	req := PaymentRequest{
		Key:         "testkey",
		TxnID:       "TXN123",
		Amount:      "1.00",
		ProductInfo: "ISML Foundation Program",
		Firstname:   "Alice",
		Email:       "alice@example.com",
	}

	raw := "testsalt|success|||||||||||alice@example.com|Alice|ISML Foundation Program|1.00|TXN123|testkey"
	sum := sha512.Sum512([]byte(raw))
	valid := hex.EncodeToString(sum[:])

	if !VerifyResponseHash(req, "testsalt", "success", valid) {
		t.Error("valid response hash rejected")
	}
	if VerifyResponseHash(req, "testsalt", "success", "deadbeef") {
		t.Error("invalid response hash accepted")
	}
	if VerifyResponseHash(req, "testsalt", "failure", valid) {
		t.Error("hash accepted for wrong status")
	}
}
