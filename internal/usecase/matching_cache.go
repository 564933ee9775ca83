package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MatchingCache is the subset of the Redis cache the matching flows need.
// Implementations must treat an unavailable backend as a miss.
type MatchingCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

const (
	matchingCachePrefix  = "jobs:matching:"
	MatchingCachePattern = matchingCachePrefix + "*"
)

func MatchingCacheKey(userID uuid.UUID) string {
	return matchingCachePrefix + userID.String()
}
