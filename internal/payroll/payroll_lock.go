package payroll

import (
	"context"
	"fmt"
	"net/http"
	"time"

	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DefaultRunLockTTL = 5 * time.Minute

// releaseScript deletes the lock only while it still holds our token, so an
// expired lock taken over by another run is left alone.
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

//go:generate mockgen -source=payroll_lock.go -destination=mock/payroll_lock_mock.go -package=mock
type RunLocker interface {
	// Acquire returns ErrCalculationInProgress when the key is already held.
	Acquire(ctx context.Context, key string) (release func(), err error)
}

func RunLockKey(projectID string, periodStart, periodEnd time.Time) string {
	return fmt.Sprintf("payroll:run:%s:%s:%s", projectID, periodStart.Format(dateLayout), periodEnd.Format(dateLayout))
}

type redisRunLocker struct {
	rdb    *redis.Client
	ttl    time.Duration
	token  func() string
	logger *zap.Logger
}

func NewRedisRunLocker(rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) RunLocker {
	l := zap.L().Named("payroll.lock")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.lock")
	}
	if ttl <= 0 {
		ttl = DefaultRunLockTTL
	}
	return &redisRunLocker{
		rdb:    rdb,
		ttl:    ttl,
		token:  func() string { return uuid.NewString() },
		logger: l,
	}
}

func (l *redisRunLocker) Acquire(ctx context.Context, key string) (func(), error) {
	token := l.token()
	ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeServiceUnavailable, "payroll run lock unavailable", http.StatusServiceUnavailable)
	}
	if !ok {
		return nil, payrollerrors.ErrCalculationInProgress
	}

	release := func() {
		// The caller's ctx may already be cancelled.
		rctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := l.rdb.Eval(rctx, releaseScript, []string{key}, token).Err(); err != nil {
			l.logger.Warn("release payroll run lock failed", zap.String("key", key), zap.Error(err))
		}
	}
	return release, nil
}

type noopRunLocker struct{}

// NewNoopRunLocker is used when no Redis is configured; the idempotency key
// still prevents duplicate records.
func NewNoopRunLocker() RunLocker {
	return noopRunLocker{}
}

func (noopRunLocker) Acquire(context.Context, string) (func(), error) {
	return func() {}, nil
}
