// Package metadata persists small key/value settings of the console in the
// local SQLite database: the bearer token and the last sign-in email.
package metadata

import (
	"context"
)

// Repository is a string key/value store. Get reports ok=false for a
// missing key instead of returning an error.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
