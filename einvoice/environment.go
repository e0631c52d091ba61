package einvoice

import (
	"fmt"
	"strings"
)

type Environment int

const (
	Sandbox Environment = iota
	Production
)

func (e Environment) BaseURL() string {
	switch e {
	case Production:
		return "https://myinvois-api.hasil.gov.my"
	case Sandbox:
		return "https://sandbox-myinvois-api.hasil.gov.my"
	}
	panic("invalid environment")
}

// TokenURL returns the OAuth token endpoint; the sandbox exposes it under a
// different path than production.
func (e Environment) TokenURL() string {
	switch e {
	case Production:
		return e.BaseURL() + "/oauth/token"
	case Sandbox:
		return e.BaseURL() + "/connect/token"
	}
	panic("invalid environment")
}

func (e Environment) Name() string {
	switch e {
	case Production:
		return "production"
	case Sandbox:
		return "sandbox"
	}
	panic("invalid environment")
}

func (e *Environment) UnmarshalText(text []byte) error {
	val := strings.ToLower(strings.TrimSpace(string(text)))

	switch val {
	case "production", "prod":
		*e = Production
	case "sandbox":
		*e = Sandbox
	default:
		return fmt.Errorf("invalid e-invoice environment: %q (allowed: sandbox, production)", val)
	}
	return nil
}
