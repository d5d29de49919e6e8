package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Verify recomputes the expected HMAC-SHA256 over payload and compares it
// against the hex signature supplied by the sender. The comparison is
// constant time. Malformed hex or a length mismatch fails closed; the
// function never panics. An empty secret still yields a real comparison —
// whether unsigned events are acceptable at all is the caller's policy.
func Verify(payload []byte, suppliedSignatureHex, secret string) bool {
	supplied, err := hex.DecodeString(suppliedSignatureHex)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := mac.Sum(nil)

	// hmac.Equal is constant time; it also rejects mismatched lengths.
	return hmac.Equal(supplied, expected)
}
