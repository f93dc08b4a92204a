package client

import (
	"context"

	"github.com/dmitrijs2005/eslconsole/internal/client/models"
)

// Client is the session-level API contract: liveness, sign-in and identity.
// Entity collections are reached through Collection and Categories.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, token string) (*models.Profile, error)
}

// TokenSource yields the bearer token attached to entity requests. An empty
// string sends the request unauthenticated.
type TokenSource func() string
