package timeline

import (
	"context"

	"github.com/gofrs/uuid"
)

// FollowingCache keeps the set of authors a user follows between feed reads.
// A hit with an empty slice means the user follows nobody.
//
// Every entry is guarded by a per-user version that Invalidate bumps. Get
// reports the version it saw, hit or miss, and Set only stores ids when the
// version is still the same, so a set loaded before a concurrent follow can
// never overwrite the invalidation.
type FollowingCache interface {
	Get(ctx context.Context, userID uuid.UUID) (ids []uuid.UUID, version int64, ok bool, err error)
	Set(ctx context.Context, userID uuid.UUID, version int64, ids []uuid.UUID) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
