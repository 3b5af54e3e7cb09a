package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/model"
	"github.com/fakhrymubarak/weather-dashboard/internal/redis"
)

// ErrUsageDisabled is returned by reports when no Redis address is configured.
var ErrUsageDisabled = errors.New("usage accounting disabled")

const usageDateLayout = "2006-01-02"

// UsageRepository counts upstream calls per UTC day and outcome.
type UsageRepository interface {
	Record(ctx context.Context, at time.Time, outcome model.Outcome) error
	Report(ctx context.Context, day time.Time) (*model.UsageReport, error)
}

// usageStore is the subset of the Redis client the repository uses.
type usageStore interface {
	HIncrBy(ctx context.Context, key, field string, incr int64) *redisv9.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redisv9.BoolCmd
	HGetAll(ctx context.Context, key string) *redisv9.MapStringStringCmd
}

type usageRepository struct {
	store usageStore
	ttl   time.Duration
}

// NewUsageRepository returns a Redis-backed repository, or a disabled one
// when Redis is not configured.
func NewUsageRepository() UsageRepository {
	client := redis.GetClient()
	if client == nil {
		return disabledUsage{}
	}
	return &usageRepository{store: client, ttl: config.GetUsageTTL()}
}

func usageKey(day time.Time) string {
	return "usage:" + day.UTC().Format(usageDateLayout)
}

func (r *usageRepository) Record(ctx context.Context, at time.Time, outcome model.Outcome) error {
	key := usageKey(at)
	if err := r.store.HIncrBy(ctx, key, string(outcome), 1).Err(); err != nil {
		return fmt.Errorf("incrementing %s: %w", key, err)
	}
	if r.ttl > 0 {
		if err := r.store.Expire(ctx, key, r.ttl).Err(); err != nil {
			return fmt.Errorf("expiring %s: %w", key, err)
		}
	}
	return nil
}

func (r *usageRepository) Report(ctx context.Context, day time.Time) (*model.UsageReport, error) {
	key := usageKey(day)
	fields, err := r.store.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}

	report := &model.UsageReport{
		Date:   day.UTC().Format(usageDateLayout),
		Counts: make(map[model.Outcome]int64, len(fields)),
	}
	for field, raw := range fields {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %s/%s: %w", key, field, err)
		}
		report.Counts[model.Outcome(field)] = n
		report.Total += n
	}
	return report, nil
}

type disabledUsage struct{}

func (disabledUsage) Record(context.Context, time.Time, model.Outcome) error { return nil }

func (disabledUsage) Report(context.Context, time.Time) (*model.UsageReport, error) {
	return nil, ErrUsageDisabled
}
