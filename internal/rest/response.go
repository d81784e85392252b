package rest

import (
	"errors"
	"net/http"

	"upliftService/business/uplift"
	"upliftService/domain"
)

// ErrorBody is the error shape of the public uplift and health endpoints.
type ErrorBody struct {
	Error string `json:"error"`
}

// statusFor maps core errors to HTTP status codes. Caller faults are 400,
// everything else is a server fault.
func statusFor(err error) int {
	switch {
	case errors.Is(err, uplift.ErrInputShape),
		errors.Is(err, uplift.ErrInputValue),
		errors.Is(err, domain.ErrUnsupportedPayload):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
