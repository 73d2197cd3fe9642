package redis

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	followingKeyPrefix        = "following:"
	followingVersionKeyPrefix = "following-version:"
)

var errStaleVersion = errors.New("following set changed since read")

// FollowingCacheRedis keeps each user's followed-author set as a
// comma-separated string with a TTL. An empty string is a cached empty set.
// A second, non-expiring key holds the version bumped by Invalidate.
type FollowingCacheRedis struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *zap.Logger
}

// NewFollowingCacheRedis builds a FollowingCacheRedis; ttl 0 keeps entries until invalidated.
func NewFollowingCacheRedis(client *redis.Client, ttl time.Duration, logger *zap.Logger) *FollowingCacheRedis {
	return &FollowingCacheRedis{
		Client: client,
		TTL:    ttl,
		Logger: logger,
	}
}

func followingKey(userID uuid.UUID) string {
	return followingKeyPrefix + userID.String()
}

func followingVersionKey(userID uuid.UUID) string {
	return followingVersionKeyPrefix + userID.String()
}

// Get returns ok=false on a cache miss. The version is valid either way.
func (r *FollowingCacheRedis) Get(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, int64, bool, error) {
	vals, err := r.Client.MGet(ctx, followingKey(userID), followingVersionKey(userID)).Result()
	if err != nil {
		return nil, 0, false, errors.Wrapf(err, "get following of %s", userID)
	}
	version, err := parseVersion(vals[1])
	if err != nil {
		return nil, 0, false, errors.Wrapf(err, "get following version of %s", userID)
	}
	raw, ok := vals[0].(string)
	if !ok {
		return nil, version, false, nil
	}

	ids := make([]uuid.UUID, 0)
	if raw == "" {
		return ids, version, true, nil
	}
	for _, part := range strings.Split(raw, ",") {
		id, err := uuid.FromString(part)
		if err != nil {
			// A corrupt entry is treated as a miss and dropped.
			r.Logger.Warn("Dropping corrupt following cache entry", zap.String("key", followingKey(userID)), zap.Error(err))
			_ = r.Client.Del(ctx, followingKey(userID)).Err()
			return nil, version, false, nil
		}
		ids = append(ids, id)
	}
	return ids, version, true, nil
}

// Set stores ids unless the version moved on since the Get that returned
// version. A skipped write is not an error.
func (r *FollowingCacheRedis) Set(ctx context.Context, userID uuid.UUID, version int64, ids []uuid.UUID) error {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id.String())
	}
	key, versionKey := followingKey(userID), followingVersionKey(userID)

	err := r.Client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, versionKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		current, err := parseVersion(raw)
		if err != nil {
			return err
		}
		if current != version {
			return errStaleVersion
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, strings.Join(parts, ","), r.TTL)
			return nil
		})
		return err
	}, versionKey)

	switch {
	case errors.Is(err, errStaleVersion), errors.Is(err, redis.TxFailedErr):
		r.Logger.Debug("Skipped stale following set", zap.String("user_id", userID.String()), zap.Int64("version", version))
		return nil
	case err != nil:
		return errors.Wrapf(err, "set following of %s", userID)
	}
	r.Logger.Debug("Cached following set", zap.String("user_id", userID.String()), zap.Int("count", len(ids)))
	return nil
}

// Invalidate drops the cached set and bumps the version so in-flight loads are discarded.
func (r *FollowingCacheRedis) Invalidate(ctx context.Context, userID uuid.UUID) error {
	_, err := r.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, followingVersionKey(userID))
		pipe.Del(ctx, followingKey(userID))
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "invalidate following of %s", userID)
	}
	return nil
}

// parseVersion reads a version value; a missing key is version 0.
func parseVersion(v interface{}) (int64, error) {
	switch raw := v.(type) {
	case nil:
		return 0, nil
	case string:
		if raw == "" {
			return 0, nil
		}
		return strconv.ParseInt(raw, 10, 64)
	default:
		return 0, errors.Errorf("unexpected version value %T", v)
	}
}
