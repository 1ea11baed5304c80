package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	analyticserrors "go-payroll/internal/analytics/errors"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/clock"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/money"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	SummaryKeyPrefix = "payroll:summary:"
	SummaryCacheTTL  = 5 * time.Minute

	dateLayout = "2006-01-02"
)

func SummaryCacheKey(organizationID string, year int, month time.Month) string {
	return fmt.Sprintf("%s%s:%04d-%02d", SummaryKeyPrefix, organizationID, year, int(month))
}

// MonthBounds returns the first and last calendar day of the month.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

type Service interface {
	GetMonthlySummary(ctx context.Context, organizationID string, month, year int) (SummaryResponse, error)
	// InvalidateMonths drops cached summaries for every month the period
	// touches.
	InvalidateMonths(ctx context.Context, organizationID string, periodStart, periodEnd time.Time) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("analytics.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("analytics.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) GetMonthlySummary(ctx context.Context, organizationID string, month, year int) (SummaryResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(organizationID); err != nil {
		return SummaryResponse{}, analyticserrors.ErrInvalidOrganizationID
	}
	if month < 1 || month > 12 {
		return SummaryResponse{}, analyticserrors.ErrInvalidMonth
	}
	if year < 1 || year > 9999 {
		return SummaryResponse{}, analyticserrors.ErrInvalidYear
	}

	cacheKey := SummaryCacheKey(organizationID, year, time.Month(month))
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp SummaryResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		from, to := MonthBounds(year, time.Month(month))
		records, err := s.repo.FindApprovedWithin(ctx, organizationID, from, to)
		if err != nil {
			log.Error("monthly summary query failed", zap.String("organization_id", organizationID), zap.Error(err))
			return nil, apperror.Store("read approved payrolls", err)
		}

		summary := ComputeSummary(records)
		resp := SummaryResponse{
			OrganizationID: organizationID,
			Month:          month,
			Year:           year,
			PeriodStart:    from.Format(dateLayout),
			PeriodEnd:      to.Format(dateLayout),
			TotalAmount:    money.String(summary.TotalAmount),
			EmployeeCount:  summary.EmployeeCount,
			AverageSalary:  money.String(summary.AverageSalary),
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, SummaryCacheTTL).Err(); err != nil {
					log.Warn("cache monthly summary failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		return SummaryResponse{}, err
	}

	return v.(SummaryResponse), nil
}

func (s *service) InvalidateMonths(ctx context.Context, organizationID string, periodStart, periodEnd time.Time) error {
	if s.rdb == nil {
		return nil
	}

	var keys []string
	cursor := time.Date(periodStart.Year(), periodStart.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := clock.Date(periodEnd)
	for !cursor.After(last) {
		keys = append(keys, SummaryCacheKey(organizationID, cursor.Year(), cursor.Month()))
		cursor = cursor.AddDate(0, 1, 0)
	}
	if len(keys) == 0 {
		return nil
	}

	return s.rdb.Del(ctx, keys...).Err()
}
