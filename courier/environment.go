package courier

import (
	"fmt"
	"strings"
)

type Environment int

const (
	Sandbox Environment = iota
	Production
)

// BaseURL returns the API base for the given country code. Sandbox traffic
// always goes through the vendor's Singapore sandbox host, but the country
// code still selects the path prefix.
func (e Environment) BaseURL(countryCode string) string {
	cc := strings.ToLower(countryCode)
	switch e {
	case Production:
		return "https://api.ninjavan.co/" + cc
	case Sandbox:
		return "https://api-sandbox.ninjavan.co/" + cc
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
		return fmt.Errorf("invalid courier environment: %q (allowed: sandbox, production)", val)
	}
	return nil
}
