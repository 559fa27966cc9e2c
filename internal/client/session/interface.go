package session

import (
	"context"
)

// Store is the persistent key-value state surviving process restarts:
// auth tokens and last-selected record ids.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
