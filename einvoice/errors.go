package einvoice

import (
	"errors"
	"fmt"
)

var ErrUnauthorized = errors.New("einvoice: unauthorized")

type RequestError struct {
	StatusCode   int
	Err          error
	Body         string
	ErrorDetails map[string]any
}

func (r *RequestError) Error() string {
	return fmt.Sprintf("status: %d err: %v message: %s", r.StatusCode, r.Err, r.Message())
}

func (r *RequestError) Unwrap() error {
	return r.Err
}

// Message returns the vendor's error message when the body decoded as JSON
// with one, otherwise the raw body.
func (r *RequestError) Message() string {
	if m, ok := r.ErrorDetails["message"].(string); ok && m != "" {
		return m
	}
	return r.Body
}
