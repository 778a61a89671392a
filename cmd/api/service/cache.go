package service

import (
	"context"
	"time"
)

// familyTreeCacheKey holds the serialized full-graph response. Every
// mutation invalidates it; the tree service repopulates on the next read.
const familyTreeCacheKey = "familytree:full"

// TreeCache is the slice of the Redis client the services need,
// implemented by redis.Client. A nil cache disables caching.
type TreeCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	SetWithExpiry(ctx context.Context, key, value string, expiry time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
