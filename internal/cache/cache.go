// Package cache keeps whole entity collections in Redis so that every portal reads the
// same snapshot. Writers invalidate the collection key; readers refill it on a miss.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "ops:"

// Collection names used as cache keys.
const (
	CollectionOrders = "orders:all"
	CollectionStaff  = "staff"
)

// Collections is a read-through cache of JSON-encoded collections.
// A nil *Collections is valid and caches nothing.
type Collections struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

// New returns a cache backed by rdb. A zero ttl defaults to one minute.
func New(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *Collections {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Collections{rdb: rdb, ttl: ttl, log: log}
}

// Key builds the redis key for a collection, e.g. Key("staff", "pilot") -> "ops:staff:pilot".
func Key(collection string, parts ...string) string {
	k := keyPrefix + collection
	for _, p := range parts {
		k += ":" + p
	}
	return k
}

// Get decodes the cached value of key into dst. It reports false on a miss or when the
// cache is disabled; cache errors are logged and treated as a miss.
func (c *Collections) Get(ctx context.Context, key string, dst any) bool {
	if c == nil {
		return false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.log.Warn("cache decode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// fillScript stores ARGV[2] under KEYS[1] only while the generation at KEYS[2] still
// equals ARGV[1], so a load that raced with Invalidate never lands.
var fillScript = redis.NewScript(`
local gen = redis.call("GET", KEYS[2])
if not gen then gen = "0" end
if gen ~= ARGV[1] then return 0 end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 1
`)

func genKey(key string) string { return key + ":gen" }

// generation returns the current invalidation counter of key. A missing counter is "0".
func (c *Collections) generation(ctx context.Context, key string) (string, error) {
	gen, err := c.rdb.Get(ctx, genKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	return gen, err
}

// fill stores v under key if no invalidation happened since gen was read.
func (c *Collections) fill(ctx context.Context, key, gen string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	stored, err := fillScript.Run(ctx, c.rdb, []string{key, genKey(key)}, gen, payload, c.ttl.Milliseconds()).Int()
	if err != nil {
		c.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		return
	}
	if stored == 0 {
		c.log.Debug("cache fill skipped, collection changed during load", zap.String("key", key))
	}
}

// Invalidate drops the given keys and bumps their generations. Failures are returned so
// writers can log them; the TTL bounds staleness either way.
func (c *Collections) Invalidate(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keys...)
		for _, k := range keys {
			pipe.Incr(ctx, genKey(k))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate %v: %w", keys, err)
	}
	return nil
}

// Fetch returns the cached collection stored at key or loads, caches and returns it.
// The loaded value is only cached when no writer invalidated key while it was loading.
func Fetch[T any](ctx context.Context, c *Collections, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	var out []T
	if c.Get(ctx, key, &out) {
		return out, nil
	}
	if c == nil {
		return load(ctx)
	}
	gen, err := c.generation(ctx, key)
	if err != nil {
		c.log.Warn("cache generation read failed", zap.String("key", key), zap.Error(err))
		return load(ctx)
	}
	out, err = load(ctx)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, key, gen, out)
	return out, nil
}
