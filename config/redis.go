package config

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis connects to Redis when REDIS_URL is set. The client stays nil
// when Redis is unreachable so rate limiting degrades to a no-op.
func InitRedis() {
	if App == nil || App.RedisURL == "" {
		log.Println("REDIS_URL not set, rate limiting disabled")
		return
	}

	opt, err := redis.ParseURL(App.RedisURL)
	if err != nil {
		log.Printf("Invalid REDIS_URL: %v. Rate limiting disabled.", err)
		return
	}

	client := redis.NewClient(opt)
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Printf("Failed to connect to Redis: %v. Rate limiting disabled.", err)
		return
	}

	RedisClient = client
	log.Println("Redis connected successfully")
}
