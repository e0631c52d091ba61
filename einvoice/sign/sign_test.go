package sign

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testTime = time.Date(2025, 3, 7, 10, 30, 0, 0, time.UTC)

func TestSign_KnownVectorWithPayload(t *testing.T) {
	s := New("client-123", "test-secret")

	h := s.Sign("POST", "/einvoice/document/submit", []byte(`{"documentNumber":"INV-001"}`), testTime)

	assert.Equal(t, "2025-03-07T10:30:00Z", h.Timestamp)
	assert.Equal(t, "client-123", h.ClientID)
	assert.Equal(t, "5ccbf35b861632a06a48c5f04cf2dcb28ae7a054541c2a5f508688e174a86b0d", h.Signature)
}

func TestSign_KnownVectorWithoutPayload(t *testing.T) {
	s := New("client-123", "test-secret")

	h := s.Sign("GET", "/einvoice/submission/abc123", nil, testTime)

	assert.Equal(t, "e86728153fb26923582744964594c566f1adb784602ef6f5991f3dcc42a7f4db", h.Signature)
}

func TestSign_MethodUppercased(t *testing.T) {
	s := New("client-123", "test-secret")

	lower := s.Sign("get", "/einvoice/submission/abc123", nil, testTime)
	upper := s.Sign("GET", "/einvoice/submission/abc123", nil, testTime)

	assert.Equal(t, upper.Signature, lower.Signature)
}

func TestSign_PayloadChangesSignature(t *testing.T) {
	s := New("client-123", "test-secret")

	a := s.Sign("POST", "/p", []byte(`{"a":1}`), testTime)
	b := s.Sign("POST", "/p", []byte(`{"a":2}`), testTime)

	assert.NotEqual(t, a.Signature, b.Signature)
}

func TestSign_TimestampIsUTC(t *testing.T) {
	s := New("client-123", "test-secret")
	loc := time.FixedZone("MYT", 8*3600)

	h := s.Sign("GET", "/p", nil, time.Date(2025, 3, 7, 18, 30, 0, 0, loc))

	assert.Equal(t, "2025-03-07T10:30:00Z", h.Timestamp)
}

func TestHeadersMap(t *testing.T) {
	h := Headers{Timestamp: "ts", Signature: "sig", ClientID: "cid"}

	m := h.Map()
	assert.Equal(t, "ts", m["X-Timestamp"])
	assert.Equal(t, "sig", m["X-Signature"])
	assert.Equal(t, "cid", m["X-Client-ID"])
}
