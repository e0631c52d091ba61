// Package sign computes the HMAC-SHA256 request signature required by the
// tax authority's API.
package sign

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

const TimestampLayout = "2006-01-02T15:04:05Z"

// Headers carries the three signature headers attached to every signed
// request.
type Headers struct {
	Timestamp string
	Signature string
	ClientID  string
}

// Map renders the headers under their wire names.
func (h Headers) Map() map[string]string {
	return map[string]string{
		"X-Timestamp": h.Timestamp,
		"X-Signature": h.Signature,
		"X-Client-ID": h.ClientID,
	}
}

type Signer struct {
	clientID string
	secret   []byte
}

func New(clientID, clientSecret string) *Signer {
	return &Signer{clientID: clientID, secret: []byte(clientSecret)}
}

// Sign computes the signature over the canonical string
//
//	METHOD\nPATH\nTIMESTAMP\n[payload]
//
// where payload is the compact JSON request body, present only on requests
// that carry one. The HMAC key is the client secret; the signature is hex
// encoded.
func (s *Signer) Sign(method, path string, payload []byte, ts time.Time) Headers {
	stamp := ts.UTC().Format(TimestampLayout)

	var b strings.Builder
	b.WriteString(strings.ToUpper(method))
	b.WriteByte('\n')
	b.WriteString(path)
	b.WriteByte('\n')
	b.WriteString(stamp)
	b.WriteByte('\n')
	if len(payload) > 0 {
		b.Write(payload)
	}

	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(b.String()))

	return Headers{
		Timestamp: stamp,
		Signature: hex.EncodeToString(mac.Sum(nil)),
		ClientID:  s.clientID,
	}
}
