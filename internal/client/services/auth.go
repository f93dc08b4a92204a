// Package services contains the console's application services. This file
// holds the authentication service: sign-in, identity lookup, liveness, and
// the locally persisted bearer token.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/eslconsole/internal/client/client"
	"github.com/dmitrijs2005/eslconsole/internal/client/models"
	"github.com/dmitrijs2005/eslconsole/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/eslconsole/internal/common"
)

// AuthService combines the backend auth endpoints with token persistence.
// It satisfies session.Backend.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	FetchProfile(ctx context.Context, token string) (*models.Profile, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error

	LoadToken(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
	LastEmail(ctx context.Context) (string, error)
}

type authService struct {
	client client.Client
	db     *sql.DB
}

func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

func (a *authService) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(a.db)
}

// Login exchanges credentials for a token and remembers the email for the
// next prompt. The token itself is persisted by the session.
func (a *authService) Login(ctx context.Context, email, password string) (string, error) {
	token, err := a.client.Login(ctx, email, password)
	if err != nil {
		return "", fmt.Errorf("login error: %w", err)
	}
	if err := a.getMetadataRepo().Set(ctx, common.LastEmailMetadataKey, email); err != nil {
		return "", fmt.Errorf("remember email: %w", err)
	}
	return token, nil
}

func (a *authService) FetchProfile(ctx context.Context, token string) (*models.Profile, error) {
	p, err := a.client.Me(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	return p, nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

// LoadToken returns the persisted token or "" when none is stored.
func (a *authService) LoadToken(ctx context.Context) (string, error) {
	token, _, err := a.getMetadataRepo().Get(ctx, common.TokenMetadataKey)
	return token, err
}

func (a *authService) SaveToken(ctx context.Context, token string) error {
	return a.getMetadataRepo().Set(ctx, common.TokenMetadataKey, token)
}

func (a *authService) ClearToken(ctx context.Context) error {
	return a.getMetadataRepo().Delete(ctx, common.TokenMetadataKey)
}

func (a *authService) LastEmail(ctx context.Context) (string, error) {
	email, _, err := a.getMetadataRepo().Get(ctx, common.LastEmailMetadataKey)
	return email, err
}
