package config

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// RedisClient is the process-wide Redis client.
var RedisClient *redis.Client

// InitRedis connects to Redis and checks the connection.
func InitRedis(ctx context.Context, s *Settings) error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     s.RedisAddr,
		Password: s.RedisPassword,
		DB:       s.RedisDB,
	})

	pong, err := RedisClient.Ping(ctx).Result()
	if err != nil {
		return errors.Wrap(err, "connect to redis")
	}
	Logger.Info("Connected to Redis", zap.String("addr", s.RedisAddr), zap.String("ping", pong))
	return nil
}
