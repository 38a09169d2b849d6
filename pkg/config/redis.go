package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to Redis for the feed cache. The cache is optional: a
// missing address or failed ping returns nil and the service runs uncached.
func InitRedis(addr string) *redis.Client {
	if addr == "" {
		log.Println("REDIS_ADDR not set, feed cache disabled.")
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unreachable at %s, feed cache disabled: %v", addr, err)
		return nil
	}

	log.Println("Successfully connected to Redis!")
	return client
}
