package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_DSN", "user:pass@tcp(localhost:3306)/yatube?parseTime=true")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("JWT_SECRET", "s3cret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("FEED_CACHE_TTL", "")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", s.AppPort)
	assert.Equal(t, "development", s.Env)
	assert.Equal(t, 0, s.RedisDB)
	assert.Equal(t, 5*time.Minute, s.FeedCacheTTL)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_PORT", "9000")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("FEED_CACHE_TTL", "30s")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", s.AppPort)
	assert.Equal(t, 3, s.RedisDB)
	assert.Equal(t, 30*time.Second, s.FeedCacheTTL)
}

func TestLoadMissingRequired(t *testing.T) {
	for _, key := range []string{"DB_DSN", "REDIS_ADDR", "JWT_SECRET"} {
		t.Run(key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(key, "")
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	setRequired(t)
	t.Setenv("REDIS_DB", "one")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("REDIS_DB", "")
	t.Setenv("FEED_CACHE_TTL", "forever")
	_, err = Load()
	assert.Error(t, err)
}
