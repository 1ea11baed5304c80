package rateconfig_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-payroll/internal/payroll"
	"go-payroll/internal/rateconfig"
	rateconfigerrors "go-payroll/internal/rateconfig/errors"
	"go-payroll/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeRateConfigRepository struct {
	employeeExistsFn        func(ctx context.Context, organizationID string, employeeID string) (bool, error)
	upsertFn                func(ctx context.Context, cfg *payroll.RateConfig) error
	findAllByOrganizationFn func(ctx context.Context, organizationID string) ([]rateconfig.RateConfigRow, error)
	findByEmployeeFn        func(ctx context.Context, organizationID string, employeeID string) (*rateconfig.RateConfigRow, error)
}

func (f *fakeRateConfigRepository) WithTx(*sql.Tx) rateconfig.Repository {
	return f
}

func (f *fakeRateConfigRepository) EmployeeExists(ctx context.Context, organizationID string, employeeID string) (bool, error) {
	if f.employeeExistsFn != nil {
		return f.employeeExistsFn(ctx, organizationID, employeeID)
	}
	return true, nil
}

func (f *fakeRateConfigRepository) Upsert(ctx context.Context, cfg *payroll.RateConfig) error {
	if f.upsertFn != nil {
		return f.upsertFn(ctx, cfg)
	}
	return nil
}

func (f *fakeRateConfigRepository) FindAllByOrganization(ctx context.Context, organizationID string) ([]rateconfig.RateConfigRow, error) {
	if f.findAllByOrganizationFn != nil {
		return f.findAllByOrganizationFn(ctx, organizationID)
	}
	return nil, nil
}

func (f *fakeRateConfigRepository) FindByEmployee(ctx context.Context, organizationID string, employeeID string) (*rateconfig.RateConfigRow, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, organizationID, employeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

type serviceDeps struct {
	sqlMock sqlmock.Sqlmock
	service rateconfig.Service
	repo    *fakeRateConfigRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := &fakeRateConfigRepository{}
	return &serviceDeps{
		sqlMock: sqlMock,
		service: rateconfig.NewService(db, repo, zap.NewNop()),
		repo:    repo,
	}
}

func expectTx(mock sqlmock.Sqlmock, commit bool) {
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestRateConfigService_Upsert(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	employeeID := uuid.New()

	t.Run("saves rounded hourly rate", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps.sqlMock, true)

		var saved *payroll.RateConfig
		deps.repo.upsertFn = func(_ context.Context, cfg *payroll.RateConfig) error {
			saved = cfg
			return nil
		}
		deps.repo.findByEmployeeFn = func(_ context.Context, _ string, _ string) (*rateconfig.RateConfigRow, error) {
			return &rateconfig.RateConfigRow{
				EmployeeID:   saved.EmployeeID,
				PaymentMode:  saved.PaymentMode,
				HourlyRate:   saved.HourlyRate,
				EmployeeName: "Ada Lovelace",
			}, nil
		}

		resp, err := deps.service.Upsert(ctx, orgID.String(), employeeID.String(), rateconfig.UpsertRateConfigRequest{
			PaymentMode: payroll.PaymentModeHourly,
			HourlyRate:  20.005,
		})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, orgID, saved.OrganizationID)
		assert.True(t, saved.HourlyRate.Equal(decimal.RequireFromString("20.01")))
		assert.Equal(t, "20.01", resp.HourlyRate)
		assert.Equal(t, "Ada Lovelace", resp.EmployeeName)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps.sqlMock, false)
		deps.repo.employeeExistsFn = func(context.Context, string, string) (bool, error) { return false, nil }

		_, err := deps.service.Upsert(ctx, orgID.String(), employeeID.String(), rateconfig.UpsertRateConfigRequest{PaymentMode: payroll.PaymentModeHourly})
		assert.ErrorIs(t, err, rateconfigerrors.ErrEmployeeNotFound)
	})

	t.Run("foreign key violation maps to employee not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps.sqlMock, false)
		deps.repo.upsertFn = func(context.Context, *payroll.RateConfig) error {
			return &pgconn.PgError{Code: "23503", ConstraintName: "rate_configs_employee_id_fkey"}
		}

		_, err := deps.service.Upsert(ctx, orgID.String(), employeeID.String(), rateconfig.UpsertRateConfigRequest{PaymentMode: payroll.PaymentModeSalaried})
		assert.ErrorIs(t, err, rateconfigerrors.ErrEmployeeNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps.sqlMock, false)
		deps.repo.upsertFn = func(context.Context, *payroll.RateConfig) error { return errors.New("connection reset") }

		_, err := deps.service.Upsert(ctx, orgID.String(), employeeID.String(), rateconfig.UpsertRateConfigRequest{PaymentMode: payroll.PaymentModeHourly})
		assert.True(t, apperror.HasCode(err, apperror.CodeStoreError))
	})

	t.Run("rejects bad input before any write", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Upsert(ctx, orgID.String(), "not-a-uuid", rateconfig.UpsertRateConfigRequest{PaymentMode: payroll.PaymentModeHourly})
		assert.ErrorIs(t, err, rateconfigerrors.ErrInvalidEmployeeID)

		_, err = deps.service.Upsert(ctx, orgID.String(), employeeID.String(), rateconfig.UpsertRateConfigRequest{PaymentMode: "daily"})
		assert.ErrorIs(t, err, rateconfigerrors.ErrInvalidPaymentMode)

		_, err = deps.service.Upsert(ctx, orgID.String(), employeeID.String(), rateconfig.UpsertRateConfigRequest{PaymentMode: payroll.PaymentModeHourly, HourlyRate: -1})
		assert.ErrorIs(t, err, rateconfigerrors.ErrInvalidHourlyRate)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestRateConfigService_Get(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.NewString()

	t.Run("list", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.findAllByOrganizationFn = func(_ context.Context, got string) ([]rateconfig.RateConfigRow, error) {
			assert.Equal(t, orgID, got)
			return []rateconfig.RateConfigRow{
				{EmployeeID: uuid.New(), PaymentMode: payroll.PaymentModeHourly, HourlyRate: decimal.NewFromInt(25)},
				{EmployeeID: uuid.New(), PaymentMode: payroll.PaymentModeSalaried, HourlyRate: decimal.Zero},
			}, nil
		}

		resp, err := deps.service.GetAll(ctx, orgID)
		require.NoError(t, err)
		require.Len(t, resp, 2)
		assert.Equal(t, "25.00", resp[0].HourlyRate)
		assert.Equal(t, "0.00", resp[1].HourlyRate)
	})

	t.Run("missing configuration", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetByEmployee(ctx, orgID, uuid.NewString())
		assert.ErrorIs(t, err, rateconfigerrors.ErrRateConfigNotFound)
	})
}
