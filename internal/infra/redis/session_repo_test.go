package redis_test

import (
	"context"
	"testing"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"crystal-petrol-bot/internal/domain/model"
	red "crystal-petrol-bot/internal/infra/redis"
)

// fakeRedis implements RedisClient in memory for tests.
type fakeRedis struct {
	values   map[string]string
	counters map[string]int64
	expires  map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		values:   make(map[string]string),
		counters: make(map[string]int64),
		expires:  make(map[string]time.Duration),
	}
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	v, ok := f.values[key]
	if !ok {
		return "", goredis.Nil
	}
	return v, nil
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	}
	f.expires[key] = expiration
	return nil
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.values, k)
	}
	return nil
}

func (f *fakeRedis) Incr(_ context.Context, key string) (int64, error) {
	f.counters[key]++
	return f.counters[key], nil
}

func (f *fakeRedis) Expire(_ context.Context, key string, expiration time.Duration) error {
	f.expires[key] = expiration
	return nil
}

func (f *fakeRedis) Close() error { return nil }

func TestSessionRepoRoundTrip(t *testing.T) {
	fake := newFakeRedis()
	repo := red.NewSessionRepo(fake, time.Minute)
	ctx := context.Background()

	got, err := repo.Get(ctx, 42)
	if err != nil {
		t.Fatalf("get on empty store: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil session, got %+v", got)
	}

	sess := model.NewSession()
	sess.Step = model.StepAwaitRegion
	sess.Name = "Ali"
	sess.Phone = "+998901234567"
	if err := repo.Set(ctx, 42, sess); err != nil {
		t.Fatalf("set: %v", err)
	}
	if d := fake.expires["conv_session:42"]; d != time.Minute {
		t.Errorf("ttl = %s, want 1m", d)
	}

	got, err = repo.Get(ctx, 42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Step != model.StepAwaitRegion || got.Phone != "+998901234567" {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	if err := repo.Clear(ctx, 42); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got, err := repo.Get(ctx, 42); err != nil || got != nil {
		t.Fatalf("expected cleared session, got %+v err %v", got, err)
	}
}

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	fake := newFakeRedis()
	limiter := red.NewRateLimiter(fake)
	ctx := context.Background()
	key := red.UserCommandKey(42, "/start")

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, key, 3, time.Minute)
		if err != nil {
			t.Fatalf("allow #%d: %v", i+1, err)
		}
		if !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	allowed, err := limiter.Allow(ctx, key, 3, time.Minute)
	if err != nil {
		t.Fatalf("allow over limit: %v", err)
	}
	if allowed {
		t.Error("request over the limit should be rejected")
	}
	if d := fake.expires[key]; d != time.Minute {
		t.Errorf("window not set on first increment: %s", d)
	}
}
