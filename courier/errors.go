package courier

import (
	"errors"
	"fmt"
)

// ErrUnauthorized marks a 401 from the courier API; the caller should
// refresh the access token before retrying.
var ErrUnauthorized = errors.New("courier: unauthorized")

type RequestError struct {
	StatusCode   int
	Err          error
	Body         string
	ErrorDetails map[string]any
}

func (r *RequestError) Error() string {
	return fmt.Sprintf("status: %d err: %v message: %s", r.StatusCode, r.Err, r.Body)
}

func (r *RequestError) Unwrap() error {
	return r.Err
}

// ValidationError reports a payload field that failed local validation,
// before any network call was made.
type ValidationError struct {
	Field  string
	Reason string
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", v.Field, v.Reason)
}
