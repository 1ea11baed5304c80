package rateconfig

import (
	"errors"

	rateconfigerrors "go-payroll/internal/rateconfig/errors"
	"go-payroll/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(step string, err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rateconfigerrors.ErrRateConfigNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return rateconfigerrors.ErrEmployeeNotFound
	}

	return apperror.Store(step, err)
}
