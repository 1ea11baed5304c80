package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)
)

// Store wraps a persistence failure. The step names what the caller was doing
// so the response says which part of the unit of work failed.
func Store(step string, err error) error {
	if err == nil {
		return nil
	}
	return Wrap(err, CodeStoreError, "store error: "+step, http.StatusInternalServerError)
}

func Configuration(message string) *AppError {
	return New(CodeConfigurationError, message, http.StatusUnprocessableEntity)
}

func Notification(err error) *AppError {
	return Wrap(err, CodeNotificationFailed, "notification delivery failed", http.StatusBadGateway)
}

func RequiredField(field string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("%s is required", field), http.StatusBadRequest)
}

func InvalidField(field string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("%s is invalid", field), http.StatusBadRequest)
}
