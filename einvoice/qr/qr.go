// Package qr builds public verification links for submitted documents and
// renders them as QR codes.
package qr

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"

	"github.com/danialmy/go-ship-einvoice/einvoice"
)

// VerificationLink builds the public portal link for a document in the
// format
//
//	https://{portal-host}/documents/{documentNumber}/{DD-MM-YYYY}/{Base64URL(SHA256(document)) no padding}
//
// where document is the JSON payload that was submitted.
func VerificationLink(env einvoice.Environment, documentNumber string, issueDate time.Time, document []byte) (string, error) {
	base, err := PortalBaseURL(env.BaseURL())
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(documentNumber) == "" {
		return "", fmt.Errorf("document number is empty")
	}

	date := issueDate.Format("02-01-2006")
	hash := computeDocumentHashBase64URL(document)

	return fmt.Sprintf("%s/documents/%s/%s/%s", strings.TrimRight(base, "/"), documentNumber, date, hash), nil
}

// PNG renders a verification link as a 300x300 QR code.
func PNG(link string) ([]byte, error) {
	return qrcode.Encode(link, qrcode.Medium, 300)
}

// PortalBaseURL maps the API base URL onto the public portal host by
// dropping the "-api" host segment.
func PortalBaseURL(base string) (string, error) {
	if strings.TrimSpace(base) == "" {
		return "", fmt.Errorf("base URL is empty")
	}

	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base URL must include scheme and host, got: %q", base)
	}

	u.Host = strings.Replace(u.Host, "-api.", ".", 1)
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""

	return u.String(), nil
}

func computeDocumentHashBase64URL(document []byte) string {
	sum := sha256.Sum256(document)
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
