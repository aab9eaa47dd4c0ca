package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis is an in-memory RedisClient built on go-redis result helpers.
type fakeRedis struct {
	mu      sync.Mutex
	data    map[string][]byte
	ttls    map[string]time.Duration
	setErr  error
	pingErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		data: make(map[string][]byte),
		ttls: make(map[string]time.Duration),
	}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	data, _ := value.([]byte)
	f.data[key] = data
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			n++
		}
		delete(f.data, k)
		delete(f.ttls, k)
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Ping(_ context.Context) *redis.StatusCmd {
	if f.pingErr != nil {
		return redis.NewStatusResult("", f.pingErr)
	}
	return redis.NewStatusResult("PONG", nil)
}

type entry struct {
	Name string        `json:"name"`
	TTL  time.Duration `json:"ttl"`
}

func entryExpiry() Expiry[string, entry] {
	return ExpiryFunc[string, entry](func(_ string, v entry, _ time.Time) time.Duration { return v.TTL })
}

func TestRedisCache_InsertGet(t *testing.T) {
	fake := newFakeRedis()
	c, err := NewRedisCache(fake, "lc:", entryExpiry(), DefaultPolicy(), nil)
	if err != nil {
		t.Fatalf("NewRedisCache failed: %v", err)
	}
	ctx := context.Background()

	if err := c.Insert(ctx, "k", entry{Name: "a", TTL: 30 * time.Second}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if got := fake.ttls["lc:k"]; got != 30*time.Second {
		t.Errorf("redis TTL = %v, want 30s", got)
	}

	got, ok := c.Get(ctx, "k")
	if !ok {
		t.Fatal("Get after Insert should return ok=true")
	}
	if got.Name != "a" {
		t.Errorf("Get().Name = %q, want %q", got.Name, "a")
	}
}

func TestRedisCache_ZeroTTLDeletes(t *testing.T) {
	fake := newFakeRedis()
	c, _ := NewRedisCache(fake, "", entryExpiry(), DefaultPolicy(), nil)
	ctx := context.Background()

	_ = c.Insert(ctx, "k", entry{Name: "good", TTL: time.Minute})
	if err := c.Insert(ctx, "k", entry{Name: "error", TTL: 0}); err != nil {
		t.Fatalf("Insert with TTL=0 failed: %v", err)
	}

	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("zero-TTL insert should delete the key")
	}
	if _, ok := fake.data["k"]; ok {
		t.Error("zero-TTL insert should not write to redis")
	}
}

func TestRedisCache_PolicyClamp(t *testing.T) {
	fake := newFakeRedis()
	c, _ := NewRedisCache(fake, "", entryExpiry(), Policy{MaxTTL: time.Minute}, nil)

	_ = c.Insert(context.Background(), "k", entry{TTL: time.Hour})
	if got := fake.ttls["k"]; got != time.Minute {
		t.Errorf("redis TTL = %v, want clamped 1m", got)
	}
}

func TestRedisCache_DefaultPolicyCapsTTL(t *testing.T) {
	fake := newFakeRedis()
	c, _ := NewRedisCache(fake, "", entryExpiry(), DefaultPolicy(), nil)
	ctx := context.Background()

	_ = c.Insert(ctx, "short", entry{TTL: 10 * time.Minute})
	_ = c.Insert(ctx, "long", entry{TTL: 3 * time.Hour})

	if got := fake.ttls["short"]; got != 10*time.Minute {
		t.Errorf("short TTL = %v, want 10m", got)
	}
	if got := fake.ttls["long"]; got != time.Hour {
		t.Errorf("long TTL = %v, want 1h", got)
	}
}

func TestRedisCache_MissCases(t *testing.T) {
	fake := newFakeRedis()
	c, _ := NewRedisCache(fake, "", entryExpiry(), DefaultPolicy(), nil)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "absent"); ok {
		t.Error("Get on absent key should miss")
	}

	fake.data["garbage"] = []byte("{not json")
	if _, ok := c.Get(ctx, "garbage"); ok {
		t.Error("Get on undecodable payload should miss")
	}
}

func TestRedisCache_SetError(t *testing.T) {
	fake := newFakeRedis()
	fake.setErr = errors.New("READONLY")
	c, _ := NewRedisCache(fake, "", entryExpiry(), DefaultPolicy(), nil)

	if err := c.Insert(context.Background(), "k", entry{TTL: time.Minute}); err == nil {
		t.Error("Insert should surface redis errors")
	}
}

func TestRedisCache_InvalidateIdempotent(t *testing.T) {
	c, _ := NewRedisCache(newFakeRedis(), "", entryExpiry(), DefaultPolicy(), nil)
	ctx := context.Background()

	if err := c.Invalidate(ctx, "never-existed"); err != nil {
		t.Errorf("Invalidate on missing key should not error, got %v", err)
	}
}

func TestRedisCache_Ping(t *testing.T) {
	fake := newFakeRedis()
	c, _ := NewRedisCache(fake, "", entryExpiry(), DefaultPolicy(), nil)

	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("Ping() = %v, want nil", err)
	}

	fake.pingErr = errors.New("connection refused")
	if err := c.Ping(context.Background()); err == nil {
		t.Error("Ping() should surface redis errors")
	}
}

func TestNewRedisCache_Validation(t *testing.T) {
	if _, err := NewRedisCache[entry](nil, "", entryExpiry(), DefaultPolicy(), nil); err != ErrNilStore {
		t.Errorf("nil client error = %v, want %v", err, ErrNilStore)
	}
	if _, err := NewRedisCache[entry](newFakeRedis(), "", nil, DefaultPolicy(), nil); err != ErrNilExpiry {
		t.Errorf("nil expiry error = %v, want %v", err, ErrNilExpiry)
	}
}

func TestRedisConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RedisConfig
		wantErr bool
	}{
		{"valid", RedisConfig{Addr: "localhost:6379"}, false},
		{"missing addr", RedisConfig{}, true},
		{"negative db", RedisConfig{Addr: "localhost:6379", DB: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewRedisClient(t *testing.T) {
	client, err := NewRedisClient(RedisConfig{Addr: "localhost:6379", DB: 2})
	if err != nil {
		t.Fatalf("NewRedisClient failed: %v", err)
	}
	defer client.Close()

	if got := client.Options().DB; got != 2 {
		t.Errorf("Options().DB = %d, want 2", got)
	}
}
