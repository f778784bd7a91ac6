package repository

import "context"

// CacheRepository stores serialized credit decisions by key. A miss is reported
// through the bool, not as an error.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Ping(ctx context.Context) error
}
