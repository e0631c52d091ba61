package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danialmy/go-ship-einvoice/courier"
	"github.com/danialmy/go-ship-einvoice/einvoice"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sg", cfg.CourierCountryCode)
	assert.Equal(t, courier.Sandbox, cfg.CourierEnv)
	assert.Equal(t, einvoice.Sandbox, cfg.EInvoiceEnv)
	assert.Equal(t, 1, cfg.CourierRetries)
	assert.Equal(t, "shipping_label.pdf", cfg.LabelPath)
}

func TestLoad_Environments(t *testing.T) {
	t.Setenv("COURIER_ENV", "production")
	t.Setenv("EINVOICE_ENV", "prod")
	t.Setenv("COURIER_COUNTRY_CODE", "my")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, courier.Production, cfg.CourierEnv)
	assert.Equal(t, einvoice.Production, cfg.EInvoiceEnv)
	assert.Equal(t, "https://api.ninjavan.co/my", cfg.CourierEnv.BaseURL(cfg.CourierCountryCode))
}

func TestLoad_BadEnvironment(t *testing.T) {
	t.Setenv("COURIER_ENV", "staging")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_BadCountryCode(t *testing.T) {
	t.Setenv("COURIER_COUNTRY_CODE", "us")

	_, err := Load()
	assert.Error(t, err)
}
