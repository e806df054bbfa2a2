package database

import (
	"context"
	"log"
	"pod_dining/config"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

func ConnectRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr:     config.ConfigDefault("REDIS_ADDR", "localhost:6379"),
		Password: config.Config("REDIS_PASSWORD"),
	})

	if err := Redis.Ping(context.Background()).Err(); err != nil {
		// Pub/sub seat map và giữ group code dùng Redis; không có thì vẫn chạy được.
		// Redis = nil để các chỗ kiểm tra database.Redis != nil rẽ sang nhánh không Redis.
		log.Printf("⚠️ Không kết nối được Redis: %v", err)
		Redis = nil
		return
	}
	log.Println("Connection Opened to Redis")
}
