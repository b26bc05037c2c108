package metrics

import (
	"context"
	"time"
)

// SnapshotCache keeps freshly computed aggregates for the polling UI.
// Implemented by the Redis cache service; a nil cache disables caching.
type SnapshotCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}
