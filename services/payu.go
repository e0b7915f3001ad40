package services

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
)

// PaymentRequest carries the fields PayU signs on the way out.
type PaymentRequest struct {
	Key         string
	TxnID       string
	Amount      string
	ProductInfo string
	Firstname   string
	Email       string
}

// RequestHash computes the PayU request signature: SHA-512 hex over
// key|txnid|amount|productinfo|firstname|email followed by ten empty UDF
// fields and the salt.
func RequestHash(req PaymentRequest, salt string) string {
	hashString := fmt.Sprintf("%s|%s|%s|%s|%s|%s|||||||||||%s",
		req.Key, req.TxnID, req.Amount, req.ProductInfo, req.Firstname,
		req.Email, salt)

	sum := sha512.Sum512([]byte(hashString))
	return hex.EncodeToString(sum[:])
}

// ResponseHash computes the hash PayU sends back on postbacks. The field
// order is the reverse of the request recipe, with the gateway status
// inserted after the salt.
func ResponseHash(req PaymentRequest, salt, status string) string {
	hashString := fmt.Sprintf("%s|%s|||||||||||%s|%s|%s|%s|%s|%s",
		salt, status, req.Email, req.Firstname, req.ProductInfo, req.Amount,
		req.TxnID, req.Key)

	sum := sha512.Sum512([]byte(hashString))
	return hex.EncodeToString(sum[:])
}

// VerifyResponseHash checks an inbound postback hash against the expected
// value using a constant-time comparison.
func VerifyResponseHash(req PaymentRequest, salt, status, got string) bool {
	expected := ResponseHash(req, salt, status)
	return hmac.Equal([]byte(expected), []byte(got))
}
