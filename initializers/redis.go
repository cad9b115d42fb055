package initializers

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// ConnectToRedis leaves Redis nil when no address is configured or the
// server does not answer; callers fall back to in-process state.
func ConnectToRedis() {
	if Config.RedisAddr == "" {
		log.Println("REDIS_ADDR not set, using in-memory session store")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     Config.RedisAddr,
		Password: Config.RedisPassword,
		DB:       Config.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("WARNING: Failed to connect to Redis: %v. Using in-memory session store.", err)
		_ = client.Close()
		return
	}
	Redis = client
	log.Println("Redis connected successfully")
}
