package payroll

import (
	"errors"
	"strings"

	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const idempotencyConstraint = "uq_payroll_idempotency_key"

// mapRepositoryError turns driver errors into payroll errors; anything it
// does not recognise becomes a store error tagged with step.
func mapRepositoryError(step string, err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == idempotencyConstraint {
			return payrollerrors.ErrPayrollAlreadyCalculated.WithCause(err)
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, idempotencyConstraint) {
		return payrollerrors.ErrPayrollAlreadyCalculated.WithCause(err)
	}

	return apperror.Store(step, err)
}
