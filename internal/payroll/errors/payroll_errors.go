package payrollerrors

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
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidProjectID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid project id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrDuplicateAdjustment = apperror.New(
		apperror.CodeInvalidInput,
		"only one adjustment per employee is allowed",
		http.StatusBadRequest,
	)
	ErrUnknownAdjustmentEmployee = apperror.New(
		apperror.CodeInvalidInput,
		"adjustment names an employee who is not payable in this organization",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"period_start must be before or equal period_end",
		http.StatusBadRequest,
	)
	ErrInvalidMoneyValue = apperror.New(
		apperror.CodeInvalidInput,
		"pay components cannot be negative",
		http.StatusBadRequest,
	)
	ErrInvalidTaxRate = apperror.New(
		apperror.CodeInvalidInput,
		"tax_rate must be between 0 and 1",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll status filter",
		http.StatusBadRequest,
	)
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll not found",
		http.StatusNotFound,
	)
	ErrPayrollOverlap = apperror.New(
		apperror.CodeConflict,
		"payroll already exists for this employee in an overlapping period",
		http.StatusConflict,
	)
	ErrPayrollAlreadyCalculated = apperror.New(
		apperror.CodeConflict,
		"payroll already calculated for this employee, project and period",
		http.StatusConflict,
	)
	ErrCalculationInProgress = apperror.New(
		apperror.CodeConflict,
		"payroll calculation for this project and period is already running",
		http.StatusConflict,
	)
	ErrExpenseAlreadyProcessed = apperror.New(
		apperror.CodeConflict,
		"expense was processed by another payroll run",
		http.StatusConflict,
	)
	ErrCalculationCancelled = apperror.New(
		apperror.CodeServiceUnavailable,
		"payroll calculation was cancelled",
		http.StatusServiceUnavailable,
	)
	ErrPayslipNotGenerated = apperror.New(
		apperror.CodeNotFound,
		"payslip is not generated yet",
		http.StatusNotFound,
	)
)
