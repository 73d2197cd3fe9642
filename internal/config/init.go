package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Settings is the process configuration read from the environment.
type Settings struct {
	Env           string
	AppPort       string
	DBDSN         string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	JWTSecret     string
	FeedCacheTTL  time.Duration
}

// LoadEnv reads .env into the environment when present.
func LoadEnv() bool {
	return godotenv.Load() == nil
}

// Load reads Settings from the environment, failing on missing required keys.
func Load() (*Settings, error) {
	s := &Settings{
		Env:           os.Getenv("APP_ENV"),
		AppPort:       os.Getenv("APP_PORT"),
		DBDSN:         os.Getenv("DB_DSN"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		FeedCacheTTL:  5 * time.Minute,
	}
	if s.Env == "" {
		s.Env = "development"
	}
	if s.AppPort == "" {
		s.AppPort = "8080"
	}
	if s.DBDSN == "" {
		return nil, errors.New("DB_DSN is not set")
	}
	if s.RedisAddr == "" {
		return nil, errors.New("REDIS_ADDR is not set")
	}
	if s.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	if raw := os.Getenv("REDIS_DB"); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "REDIS_DB %q", raw)
		}
		s.RedisDB = db
	}
	if raw := os.Getenv("FEED_CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "FEED_CACHE_TTL %q", raw)
		}
		s.FeedCacheTTL = ttl
	}
	return s, nil
}
