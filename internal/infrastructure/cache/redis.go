// Package cache is a JSON cache over Redis that degrades to a no-op when the
// server is unreachable. Reads then miss and writes are dropped, so callers
// fall back to the database.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"strings"
	"sync/atomic"
	"time"

	"job-portal/internal/config"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTTL     = 10 * time.Minute
	defaultLockTTL = 30 * time.Second
	scanBatch      = 100
)

var ErrUnavailable = errors.New("redis unavailable")

type Redis struct {
	client *redis.Client
	logger *log.Logger
	ttl    time.Duration

	degraded atomic.Bool
}

// NewRedis pings once at startup. When that fails the returned cache stays
// in bypass mode for the life of the process.
func NewRedis(cfg config.RedisConfig, logger *log.Logger) *Redis {
	if logger == nil {
		logger = log.Default()
	}
	addr := net.JoinHostPort(orDefault(cfg.Host, "localhost"), orDefault(cfg.Port, "6379"))
	r := &Redis{logger: logger, ttl: cfg.TTL}

	client := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Password})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Printf("cache=redis status=bypass addr=%s err=%v", addr, err)
		_ = client.Close()
		return r
	}

	logger.Printf("cache=redis status=connected addr=%s", addr)
	r.client = client
	return r
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

// Available reports whether a live Redis connection backs this cache.
func (r *Redis) Available() bool {
	return r != nil && r.client != nil
}

func (r *Redis) Close() error {
	if !r.Available() {
		return nil
	}
	return r.client.Close()
}

func (r *Redis) Ping(ctx context.Context) error {
	if !r.Available() {
		return ErrUnavailable
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if !r.Available() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, r.observe(err)
	case len(b) == 0:
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !r.Available() {
		return nil
	}
	if ttl <= 0 {
		ttl = r.defaultTTL()
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.observe(r.client.Set(ctx, key, b, ttl).Err())
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if !r.Available() {
		return nil
	}
	return r.observe(r.client.Del(ctx, key).Err())
}

// DeleteByPattern scans for matching keys and unlinks them one page at a time.
func (r *Redis) DeleteByPattern(ctx context.Context, pattern string) error {
	pattern = strings.TrimSpace(pattern)
	if !r.Available() || pattern == "" {
		return nil
	}

	var cursor uint64
	removed := int64(0)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return r.observe(err)
		}
		if len(keys) > 0 {
			n, err := r.client.Unlink(ctx, keys...).Result()
			if err != nil {
				return r.observe(err)
			}
			removed += n
		}
		if cursor = next; cursor == 0 {
			break
		}
	}
	if removed > 0 {
		r.logger.Printf("cache=redis op=invalidate pattern=%s keys=%d", pattern, removed)
	}
	return nil
}

// SetIfNotExists is a best-effort lock. Without Redis it never acquires.
func (r *Redis) SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	if !r.Available() {
		return false, nil
	}
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	ok, err := r.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, r.observe(err)
	}
	return ok, nil
}

var deleteIfValueScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// DeleteIfValue removes key only while it still holds value, so a lock owner
// cannot release a lock someone else has taken since.
func (r *Redis) DeleteIfValue(ctx context.Context, key string, value string) (bool, error) {
	if !r.Available() {
		return false, nil
	}
	n, err := deleteIfValueScript.Run(ctx, r.client, []string{key}, value).Int()
	if err != nil {
		return false, r.observe(err)
	}
	return n == 1, nil
}

// observe logs the first runtime failure after a healthy period.
func (r *Redis) observe(err error) error {
	if err == nil {
		r.degraded.Store(false)
		return nil
	}
	if r.degraded.CompareAndSwap(false, true) {
		r.logger.Printf("cache=redis status=degraded err=%v", err)
	}
	return err
}

func (r *Redis) defaultTTL() time.Duration {
	if r.ttl > 0 {
		return r.ttl
	}
	return defaultTTL
}
