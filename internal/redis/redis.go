package redis

import (
	"context"
	"sync"
	"time"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	redisv9 "github.com/redis/go-redis/v9"
)

var (
	client *redisv9.Client
	once   sync.Once
)

// GetClient returns the shared client, or nil when redis.addr is empty and
// usage accounting is therefore disabled.
func GetClient() *redisv9.Client {
	once.Do(func() {
		addr := config.GetRedisAddr()
		if addr == "" {
			return
		}
		client = redisv9.NewClient(&redisv9.Options{
			Addr: addr,
		})
	})
	return client
}

// Ping checks connectivity with a short deadline. It is a no-op when the
// client is disabled.
func Ping(ctx context.Context) error {
	c := GetClient()
	if c == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.Ping(ctx).Err()
}

// Close releases the shared client, if any.
func Close() error {
	if client == nil {
		return nil
	}
	return client.Close()
}

// ResetClientForTest resets the Redis client singleton. Use only in tests.
func ResetClientForTest() {
	once = sync.Once{}
	client = nil
}
