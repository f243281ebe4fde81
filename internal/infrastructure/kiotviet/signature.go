package kiotviet

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// VerifySignature checks an x-hub-signature header value against the
// HMAC-SHA256 of the raw webhook body. The header may carry an optional
// "sha256=" prefix. An empty secret disables verification and always
// reports true.
func VerifySignature(secret string, body []byte, signature string) bool {
	if secret == "" {
		return true
	}

	signature = strings.TrimPrefix(strings.TrimSpace(signature), "sha256=")
	if signature == "" {
		return false
	}

	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	expected := hex.EncodeToString(h.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}

// SignBody computes the hex HMAC-SHA256 of a webhook body
func SignBody(secret string, body []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
