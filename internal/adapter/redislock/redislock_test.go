package redislock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis keeps one key with the SET NX and compare-and-delete semantics
// the lease relies on.
type fakeRedis struct {
	values  map[string]string
	ttl     time.Duration
	failSet error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}}
}

func (f *fakeRedis) SetNX(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	if f.failSet != nil {
		return redis.NewBoolResult(false, f.failSet)
	}
	if _, ok := f.values[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.values[key] = value.(string)
	f.ttl = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Eval(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	if f.values[keys[0]] == args[0] {
		delete(f.values, keys[0])
		return redis.NewCmdResult(int64(1), nil)
	}
	return redis.NewCmdResult(int64(0), nil)
}

func TestLockIsExclusive(t *testing.T) {
	rdb := newFakeRedis()
	ctx := context.Background()
	first := New(rdb, "sweep", time.Minute)
	second := New(rdb, "sweep", time.Minute)

	ok, err := first.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Minute, rdb.ttl)

	ok, err = second.Acquire(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.ErrorIs(t, second.Release(ctx), ErrNotHeld)

	require.NoError(t, first.Release(ctx))
	ok, err = second.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReleaseAfterTakeover(t *testing.T) {
	rdb := newFakeRedis()
	ctx := context.Background()
	l := New(rdb, "sweep", time.Minute)

	ok, err := l.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	// The lease expired and another replica took it.
	rdb.values["sweep"] = "someone-else"
	assert.ErrorIs(t, l.Release(ctx), ErrNotHeld)
	assert.Equal(t, "someone-else", rdb.values["sweep"])
}

func TestAcquireError(t *testing.T) {
	rdb := newFakeRedis()
	rdb.failSet = errors.New("connection refused")
	ok, err := New(rdb, "sweep", time.Minute).Acquire(context.Background())
	assert.False(t, ok)
	assert.ErrorContains(t, err, "connection refused")
}
