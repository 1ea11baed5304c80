package rateconfig

import (
	"context"
	"database/sql"

	"go-payroll/internal/payroll"
	rateconfigerrors "go-payroll/internal/rateconfig/errors"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/money"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rate_config_service.go -destination=mock/rate_config_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, organizationID, employeeID string, req UpsertRateConfigRequest) (RateConfigResponse, error)
	GetAll(ctx context.Context, organizationID string) ([]RateConfigResponse, error)
	GetByEmployee(ctx context.Context, organizationID, employeeID string) (RateConfigResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("rateconfig.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rateconfig.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// Upsert replaces the employee's rate configuration. Records already
// calculated keep the rate they were computed with.
func (s *service) Upsert(
	ctx context.Context,
	organizationID, employeeID string,
	req UpsertRateConfigRequest,
) (RateConfigResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	orgID, err := uuid.Parse(organizationID)
	if err != nil {
		return RateConfigResponse{}, rateconfigerrors.ErrInvalidOrganizationID
	}
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return RateConfigResponse{}, rateconfigerrors.ErrInvalidEmployeeID
	}
	switch req.PaymentMode {
	case payroll.PaymentModeHourly, payroll.PaymentModeSalaried:
	default:
		return RateConfigResponse{}, rateconfigerrors.ErrInvalidPaymentMode
	}
	if req.HourlyRate < 0 {
		return RateConfigResponse{}, rateconfigerrors.ErrInvalidHourlyRate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RateConfigResponse{}, apperror.Store("begin transaction", err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, organizationID, employeeID)
	if err != nil {
		return RateConfigResponse{}, mapRepositoryError("check employee", err)
	}
	if !exists {
		return RateConfigResponse{}, rateconfigerrors.ErrEmployeeNotFound
	}

	cfg := &payroll.RateConfig{
		EmployeeID:     empID,
		OrganizationID: orgID,
		PaymentMode:    req.PaymentMode,
		HourlyRate:     money.FromFloat(req.HourlyRate),
	}
	if err := qtx.Upsert(ctx, cfg); err != nil {
		return RateConfigResponse{}, mapRepositoryError("save rate configuration", err)
	}

	saved, err := qtx.FindByEmployee(ctx, organizationID, employeeID)
	if err != nil {
		return RateConfigResponse{}, mapRepositoryError("read rate configuration", err)
	}

	if err := tx.Commit(); err != nil {
		return RateConfigResponse{}, apperror.Store("commit rate configuration", err)
	}

	log.Info("rate configuration saved",
		zap.String("employee_id", employeeID),
		zap.String("payment_mode", cfg.PaymentMode),
		zap.String("hourly_rate", money.String(cfg.HourlyRate)),
	)

	return mapToResponse(*saved), nil
}

func (s *service) GetAll(ctx context.Context, organizationID string) ([]RateConfigResponse, error) {
	if _, err := uuid.Parse(organizationID); err != nil {
		return nil, rateconfigerrors.ErrInvalidOrganizationID
	}

	rows, err := s.repo.FindAllByOrganization(ctx, organizationID)
	if err != nil {
		return nil, mapRepositoryError("list rate configurations", err)
	}

	return mapToListResponse(rows), nil
}

func (s *service) GetByEmployee(ctx context.Context, organizationID, employeeID string) (RateConfigResponse, error) {
	if _, err := uuid.Parse(organizationID); err != nil {
		return RateConfigResponse{}, rateconfigerrors.ErrInvalidOrganizationID
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return RateConfigResponse{}, rateconfigerrors.ErrInvalidEmployeeID
	}

	row, err := s.repo.FindByEmployee(ctx, organizationID, employeeID)
	if err != nil {
		return RateConfigResponse{}, mapRepositoryError("read rate configuration", err)
	}

	return mapToResponse(*row), nil
}

func mapToResponse(row RateConfigRow) RateConfigResponse {
	return RateConfigResponse{
		EmployeeID:   row.EmployeeID.String(),
		EmployeeName: row.EmployeeName,
		PaymentMode:  row.PaymentMode,
		HourlyRate:   money.String(row.HourlyRate),
	}
}

func mapToListResponse(rows []RateConfigRow) []RateConfigResponse {
	res := make([]RateConfigResponse, len(rows))
	for i, row := range rows {
		res[i] = mapToResponse(row)
	}
	return res
}
