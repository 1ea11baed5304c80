package paycycleerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidOrganizationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid organization id",
		http.StatusBadRequest,
	)
	ErrInvalidFrequency = apperror.New(
		apperror.CodeInvalidInput,
		"invalid pay cycle frequency, expected weekly, biweekly or monthly",
		http.StatusBadRequest,
	)
	ErrPayCycleNotFound = apperror.New(
		apperror.CodeNotFound,
		"pay cycle is not configured for this organization",
		http.StatusNotFound,
	)
)
