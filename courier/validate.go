package courier

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/danialmy/go-ship-einvoice/courier/model"
)

const (
	maxDimensionCM = 200
	maxWeightKG    = 50
)

var (
	phoneRe    = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
	trackingRe = regexp.MustCompile(`^[A-Za-z0-9-]{5,30}$`)
)

var supportedCountries = map[string]bool{
	"sg": true, "my": true, "id": true, "ph": true, "th": true, "vn": true,
}

func ValidatePhoneNumber(phone string) error {
	if !phoneRe.MatchString(phone) {
		return &ValidationError{Field: "phone_number", Reason: fmt.Sprintf("bad format: %q", phone)}
	}
	return nil
}

func ValidateAddress(a model.Address) error {
	if len(strings.TrimSpace(a.Address1)) < 5 {
		return &ValidationError{Field: "address", Reason: "too short or empty"}
	}
	return nil
}

func ValidateDimensions(d model.Dimensions) error {
	if d.Width <= 0 || d.Width > maxDimensionCM ||
		d.Height <= 0 || d.Height > maxDimensionCM ||
		d.Depth <= 0 || d.Depth > maxDimensionCM {
		return &ValidationError{
			Field:  "dimensions",
			Reason: fmt.Sprintf("width=%v, height=%v, depth=%v outside (0, %d]", d.Width, d.Height, d.Depth, maxDimensionCM),
		}
	}
	return nil
}

func ValidateWeight(weight float64) error {
	if weight <= 0 || weight > maxWeightKG {
		return &ValidationError{Field: "weight", Reason: fmt.Sprintf("%vkg outside (0, %d]", weight, maxWeightKG)}
	}
	return nil
}

func ValidateTrackingNumber(trackingNumber string) error {
	if !trackingRe.MatchString(trackingNumber) {
		return &ValidationError{Field: "tracking_number", Reason: fmt.Sprintf("bad format: %q", trackingNumber)}
	}
	return nil
}

func ValidateServiceLevel(level model.ServiceLevel) error {
	switch level {
	case model.ServiceStandard, model.ServiceExpress, model.ServiceParcel, model.ServiceSameDay:
		return nil
	}
	return &ValidationError{Field: "service_level", Reason: fmt.Sprintf("unknown level: %q", level)}
}

func ValidateCountryCode(countryCode string) error {
	if !supportedCountries[strings.ToLower(countryCode)] {
		return &ValidationError{Field: "country_code", Reason: fmt.Sprintf("unsupported: %q", countryCode)}
	}
	return nil
}

func ValidateCOD(cod model.COD) error {
	if !cod.Amount.IsPositive() {
		return &ValidationError{Field: "cod", Reason: fmt.Sprintf("amount must be positive, got %s", cod.Amount)}
	}
	if cod.Currency == "" {
		return &ValidationError{Field: "cod", Reason: "currency is required"}
	}
	return nil
}

func validateContact(role string, c model.Contact) error {
	if err := ValidatePhoneNumber(c.PhoneNumber); err != nil {
		return prefixField(role, err)
	}
	if err := ValidateAddress(c.Address); err != nil {
		return prefixField(role, err)
	}
	return nil
}

func prefixField(role string, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return &ValidationError{Field: role + "." + verr.Field, Reason: verr.Reason}
	}
	return err
}
