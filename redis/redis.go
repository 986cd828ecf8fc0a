package redis

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

// InitRedis connects the directory cache. The cache is optional: when
// REDIS_ADDR is unset or the server is unreachable, lookups fall through to
// the database.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, directory cache disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	if _, err := client.Ping(Ctx).Result(); err != nil {
		log.Printf("Failed to connect to Redis, directory cache disabled: %v", err)
		return
	}

	Client = client
	log.Println("✅ Connected to Redis")
}

// GetCached returns the cached payload for a key, if the cache is enabled
// and the key exists.
func GetCached(key string) (string, bool) {
	if Client == nil {
		return "", false
	}
	val, err := Client.Get(Ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// SetCached stores a payload with a TTL. Failures are ignored; the cache is
// advisory.
func SetCached(key, val string, ttl time.Duration) {
	if Client == nil {
		return
	}
	Client.Set(Ctx, key, val, ttl)
}
