package veriff

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Signature computes the X-SIGNATURE header for an outbound call:
// SHA-256 over the exact request body bytes concatenated with the shared
// secret. Signing the marshaled bytes that go on the wire keeps the hash
// immune to key-order differences between semantically equal payloads.
func Signature(payload []byte, secret string) string {
	digest := sha256.Sum256(append(append([]byte{}, payload...), []byte(secret)...))
	return hex.EncodeToString(digest[:])
}

// VerifyWebhookSignature checks the HMAC-SHA256 signature the verification
// provider attaches to inbound webhooks.
func VerifyWebhookSignature(body []byte, secret, header string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(header))
}
