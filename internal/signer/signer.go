package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// authScheme is the scheme name the partner expects in the Authorization header.
const authScheme = "Bitso"

// Credentials holds the partner API key pair. Loaded once at process start and
// never serialized back out; nothing in this package logs the secret.
type Credentials struct {
	APIKey    string
	APISecret string
}

// Configured reports whether both halves of the key pair are present.
func (c Credentials) Configured() bool {
	return c.APIKey != "" && c.APISecret != ""
}

// SignedRequest is the authentication material derived for a single outbound
// partner call. It is never persisted.
type SignedRequest struct {
	Nonce     string
	Signature string
	Header    string
}

// Signer produces partner authentication headers. The clock is injectable so
// tests can pin the nonce; production code uses time.Now.
type Signer struct {
	creds Credentials
	now   func() time.Time
}

// New constructs a Signer over the provided credentials.
func New(creds Credentials) *Signer {
	return NewWithClock(creds, time.Now)
}

// NewWithClock constructs a Signer with an explicit time source.
func NewWithClock(creds Credentials, now func() time.Time) *Signer {
	if now == nil {
		now = time.Now
	}
	return &Signer{creds: creds, now: now}
}

// Sign derives the Authorization header value for one outbound request. The
// signature covers nonce||method||path||body with no delimiters, so body must
// be the exact bytes that will be transmitted (empty for body-less requests)
// and path must include any query string.
func (s *Signer) Sign(method, path string, body []byte) SignedRequest {
	nonce := strconv.FormatInt(s.now().UnixMilli(), 10)

	mac := hmac.New(sha256.New, []byte(s.creds.APISecret))
	mac.Write([]byte(nonce))
	mac.Write([]byte(method))
	mac.Write([]byte(path))
	mac.Write(body)
	signature := hex.EncodeToString(mac.Sum(nil))

	return SignedRequest{
		Nonce:     nonce,
		Signature: signature,
		Header:    authScheme + " " + s.creds.APIKey + ":" + nonce + ":" + signature,
	}
}
