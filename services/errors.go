package services

import "fmt"

// Error codes returned to clients
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodePickupUnavailable = "PICKUP_UNAVAILABLE"
	CodeCartLimit         = "CART_LIMIT"
)

// ValidationError is a client input problem. Controllers answer it with 400.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...any) *ValidationError {
	return &ValidationError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}
