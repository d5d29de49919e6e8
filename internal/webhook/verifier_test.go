package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func signPayload(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyRoundTrip(t *testing.T) {
	payload := []byte(`{"type":"DEPOSIT_RECEIVED","data":{"amount":"500"}}`)
	secret := "wh-secret"

	if !Verify(payload, signPayload(payload, secret), secret) {
		t.Fatalf("expected valid signature to verify")
	}
}

func TestVerifyRejectsMutatedPayload(t *testing.T) {
	payload := []byte(`{"type":"DEPOSIT_RECEIVED"}`)
	secret := "wh-secret"
	sig := signPayload(payload, secret)

	mutated := append([]byte(nil), payload...)
	mutated[0] ^= 0x01

	if Verify(mutated, sig, secret) {
		t.Fatalf("expected mutated payload to fail verification")
	}
}

func TestVerifyRejectsMutatedSignature(t *testing.T) {
	payload := []byte(`{"type":"DEPOSIT_RECEIVED"}`)
	secret := "wh-secret"
	sig := []byte(signPayload(payload, secret))

	if sig[0] == 'a' {
		sig[0] = 'b'
	} else {
		sig[0] = 'a'
	}

	if Verify(payload, string(sig), secret) {
		t.Fatalf("expected corrupted signature to fail verification")
	}
}

func TestVerifyFailsClosedOnMalformedHex(t *testing.T) {
	payload := []byte("payload")

	if Verify(payload, "not-hex-at-all", "secret") {
		t.Fatalf("expected non-hex signature to be rejected")
	}
	if Verify(payload, "abcd", "secret") {
		t.Fatalf("expected short signature to be rejected")
	}
	if Verify(payload, "", "secret") {
		t.Fatalf("expected empty signature to be rejected")
	}
}

func TestVerifyEmptySecretStillCompares(t *testing.T) {
	payload := []byte("payload")

	if Verify(payload, signPayload([]byte("other"), ""), "") {
		t.Fatalf("empty secret must not bypass comparison")
	}
	if !Verify(payload, signPayload(payload, ""), "") {
		t.Fatalf("a genuine empty-key MAC should still verify")
	}
}
