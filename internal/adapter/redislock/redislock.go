// Package redislock provides a Redis lease so that only one replica runs the
// payout sweep at a time.
package redislock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"creator-ads/internal/core/port"
)

// releaseScript deletes the key only while it still holds our token.
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// ErrNotHeld is returned by Release when the lease expired or was taken over.
var ErrNotHeld = errors.New("sweep lease not held")

type client interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// Connect initializes a Redis client from URL or host:port input.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	var rdb *redis.Client
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		opt, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		rdb = redis.NewClient(opt)
	} else {
		rdb = redis.NewClient(&redis.Options{Addr: addr})
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// Lock is a single-holder lease stored under one key. The lease expires
// after ttl so a crashed holder cannot block the sweep forever.
type Lock struct {
	rdb     client
	key     string
	ttl     time.Duration
	tokenFn func() string

	mu    sync.Mutex
	token string
}

// New returns a lease on key.
func New(rdb client, key string, ttl time.Duration) *Lock {
	return &Lock{rdb: rdb, key: key, ttl: ttl, tokenFn: uuid.NewString}
}

// Acquire implements port.SweepLock.
func (l *Lock) Acquire(ctx context.Context) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	token := l.tokenFn()
	ok, err := l.rdb.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire %s: %w", l.key, err)
	}
	if ok {
		l.token = token
	}
	return ok, nil
}

// Release implements port.SweepLock.
func (l *Lock) Release(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.token == "" {
		return ErrNotHeld
	}
	token := l.token
	l.token = ""

	n, err := l.rdb.Eval(ctx, releaseScript, []string{l.key}, token).Int64()
	if err != nil {
		return fmt.Errorf("release %s: %w", l.key, err)
	}
	if n == 0 {
		return ErrNotHeld
	}
	return nil
}

var _ port.SweepLock = (*Lock)(nil)
