package paycycle

import (
	"context"
	"time"

	paycycleerrors "go-payroll/internal/paycycle/errors"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/clock"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// CycleDates is an inclusive date window.
type CycleDates struct {
	Start time.Time
	End   time.Time
}

// NextCycleDates computes the window that follows lastEnd. Monthly windows end
// the day before the same calendar day of the next month.
func NextCycleDates(frequency Frequency, lastEnd time.Time) (CycleDates, error) {
	start := clock.Date(lastEnd).AddDate(0, 0, 1)

	var end time.Time
	switch frequency {
	case FrequencyWeekly:
		end = start.AddDate(0, 0, 6)
	case FrequencyBiweekly:
		end = start.AddDate(0, 0, 13)
	case FrequencyMonthly:
		end = start.AddDate(0, 1, 0).AddDate(0, 0, -1)
	default:
		return CycleDates{}, paycycleerrors.ErrInvalidFrequency
	}

	return CycleDates{Start: start, End: end}, nil
}

type Service interface {
	Configure(ctx context.Context, organizationID string, frequency string) (PayCycleResponse, error)
	Get(ctx context.Context, organizationID string) (PayCycleResponse, error)
}

type service struct {
	repo   Repository
	clock  clock.Clock
	logger *zap.Logger
}

func NewService(repo Repository, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("paycycle.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("paycycle.service")
	}
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &service{repo: repo, clock: clk, logger: l}
}

// Configure advances the organization's cycle. The first call seeds the
// previous end as yesterday so the first cycle starts today.
func (s *service) Configure(ctx context.Context, organizationID string, frequency string) (PayCycleResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return PayCycleResponse{}, paycycleerrors.ErrInvalidOrganizationID
	}
	freq := Frequency(frequency)
	if !freq.Valid() {
		return PayCycleResponse{}, paycycleerrors.ErrInvalidFrequency
	}

	existing, err := s.repo.FindByOrganization(ctx, organizationID)
	if err != nil {
		log.Error("configure pay cycle read failed", zap.String("organization_id", organizationID), zap.Error(err))
		return PayCycleResponse{}, apperror.Store("read pay cycle config", err)
	}

	now := s.clock.Now().UTC()
	lastEnd := clock.Date(now).AddDate(0, 0, -1)
	cfg := &PayCycleConfig{
		OrganizationID: orgUUID,
		CreatedAt:      now,
	}
	if existing != nil {
		lastEnd = existing.NextCycleEnd
		cfg.ID = existing.ID
		cfg.CreatedAt = existing.CreatedAt
	}

	dates, err := NextCycleDates(freq, lastEnd)
	if err != nil {
		return PayCycleResponse{}, err
	}

	cfg.Frequency = freq
	cfg.NextCycleStart = dates.Start
	cfg.NextCycleEnd = dates.End
	cfg.UpdatedAt = now

	if err := s.repo.Upsert(ctx, cfg); err != nil {
		log.Error("configure pay cycle upsert failed", zap.String("organization_id", organizationID), zap.Error(err))
		return PayCycleResponse{}, apperror.Store("save pay cycle config", err)
	}

	log.Info("pay cycle configured",
		zap.String("organization_id", organizationID),
		zap.String("frequency", frequency),
		zap.String("next_cycle_start", dates.Start.Format(dateLayout)),
		zap.String("next_cycle_end", dates.End.Format(dateLayout)),
	)

	return mapToResponse(*cfg), nil
}

func (s *service) Get(ctx context.Context, organizationID string) (PayCycleResponse, error) {
	if _, err := uuid.Parse(organizationID); err != nil {
		return PayCycleResponse{}, paycycleerrors.ErrInvalidOrganizationID
	}

	cfg, err := s.repo.FindByOrganization(ctx, organizationID)
	if err != nil {
		return PayCycleResponse{}, apperror.Store("read pay cycle config", err)
	}
	if cfg == nil {
		return PayCycleResponse{}, paycycleerrors.ErrPayCycleNotFound
	}

	return mapToResponse(*cfg), nil
}

func mapToResponse(cfg PayCycleConfig) PayCycleResponse {
	return PayCycleResponse{
		ID:             cfg.ID.String(),
		OrganizationID: cfg.OrganizationID.String(),
		Frequency:      string(cfg.Frequency),
		NextCycleStart: cfg.NextCycleStart.Format(dateLayout),
		NextCycleEnd:   cfg.NextCycleEnd.Format(dateLayout),
		CreatedAt:      cfg.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      cfg.UpdatedAt.Format(time.RFC3339),
	}
}
