package qr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danialmy/go-ship-einvoice/einvoice"
)

func TestPortalBaseURL(t *testing.T) {
	base, err := PortalBaseURL("https://sandbox-myinvois-api.hasil.gov.my")
	require.NoError(t, err)
	assert.Equal(t, "https://sandbox-myinvois.hasil.gov.my", base)

	base, err = PortalBaseURL("https://myinvois-api.hasil.gov.my")
	require.NoError(t, err)
	assert.Equal(t, "https://myinvois.hasil.gov.my", base)

	_, err = PortalBaseURL("")
	assert.Error(t, err)

	_, err = PortalBaseURL("not-a-url")
	assert.Error(t, err)
}

func TestVerificationLink(t *testing.T) {
	issueDate := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	document := []byte(`{"documentNumber":"INV-001"}`)

	link, err := VerificationLink(einvoice.Sandbox, "INV-001", issueDate, document)
	require.NoError(t, err)

	assert.Equal(t,
		"https://sandbox-myinvois.hasil.gov.my/documents/INV-001/07-03-2025/KcC2m_swN-gqeJ3J_io8-MvcpeDW2oAjV8hGqj3ieJM",
		link)
}

func TestVerificationLink_EmptyDocumentNumber(t *testing.T) {
	_, err := VerificationLink(einvoice.Sandbox, " ", time.Now(), []byte("{}"))
	assert.Error(t, err)
}

func TestPNG(t *testing.T) {
	png, err := PNG("https://sandbox-myinvois.hasil.gov.my/documents/INV-001")
	require.NoError(t, err)

	require.Greater(t, len(png), 8)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), png[:8])
}
