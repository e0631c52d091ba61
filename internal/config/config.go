package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/danialmy/go-ship-einvoice/courier"
	"github.com/danialmy/go-ship-einvoice/einvoice"
)

// Config holds everything the CLI commands need for both vendors.
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Courier
	CourierClientID     string              `envconfig:"COURIER_CLIENT_ID"`
	CourierClientSecret string              `envconfig:"COURIER_CLIENT_SECRET"`
	CourierCountryCode  string              `envconfig:"COURIER_COUNTRY_CODE" default:"sg"`
	CourierEnv          courier.Environment `envconfig:"COURIER_ENV" default:"sandbox"`
	CourierRetries      int                 `envconfig:"COURIER_RETRIES" default:"1"`
	LabelPath           string              `envconfig:"LABEL_PATH" default:"shipping_label.pdf"`

	// E-invoice
	EInvoiceClientID     string               `envconfig:"EINVOICE_CLIENT_ID"`
	EInvoiceClientSecret string               `envconfig:"EINVOICE_CLIENT_SECRET"`
	EInvoiceEnv          einvoice.Environment `envconfig:"EINVOICE_ENV" default:"sandbox"`
	PDFDir               string               `envconfig:"PDF_DIR" default:"."`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := courier.ValidateCountryCode(cfg.CourierCountryCode); err != nil {
		return nil, err
	}
	return &cfg, nil
}
