// Package session tracks who is signed in to the console.
//
// A Store moves through uninitialized → resolving → {authenticated |
// anonymous}. A token becomes authenticated only after the backend resolves
// it to a profile; any failure to do so drops the session to anonymous and
// forgets the persisted token. Profile results that arrive after the session
// has moved on (logout, or a newer login) are discarded.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/eslconsole/internal/client/models"
	"github.com/dmitrijs2005/eslconsole/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrAlreadyInitialized = errors.New("session already initialized")
	// ErrStale is returned when a profile result no longer belongs to the
	// current session and was dropped.
	ErrStale = errors.New("session changed while resolving profile")
)

// Backend is what the store needs from the auth service.
type Backend interface {
	Login(ctx context.Context, email, password string) (string, error)
	FetchProfile(ctx context.Context, token string) (*models.Profile, error)
	LoadToken(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// Phase is the authentication phase of a Store.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseResolving
	PhaseAuthenticated
	PhaseAnonymous
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseResolving:
		return "resolving"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseAnonymous:
		return "anonymous"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// State is a consistent copy of the session.
type State struct {
	Phase Phase
	Token string
	User  *models.Profile
	// TokenExpiry is read from the token's exp claim without verifying the
	// signature. Zero for opaque tokens.
	TokenExpiry time.Time
}

// IsLoading reports whether a stored token is still being resolved.
func (s State) IsLoading() bool { return s.Phase == PhaseResolving }

func (s State) IsAuthenticated() bool { return s.Phase == PhaseAuthenticated }

// Store holds the signed-in token and profile. Subscribers registered with
// OnLogout run after every sign-out. Safe for concurrent use.
type Store struct {
	backend Backend
	log     logging.Logger

	mu          sync.Mutex
	initialized bool
	phase       Phase
	token       string
	user        *models.Profile
	// gen changes on every token change; a profile result is applied only if
	// gen still matches the value captured when the request started.
	gen      uint64
	onLogout []func()
}

// New returns an uninitialized store; call Initialize to restore a saved
// token. A nil log discards.
func New(backend Backend, log logging.Logger) *Store {
	if log == nil {
		log = logging.Discard()
	}
	return &Store{backend: backend, log: log.With("component", "session")}
}

// OnLogout registers fn to run after every Logout, outside the store lock.
func (s *Store) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = append(s.onLogout, fn)
}

// Initialize restores the persisted session. It may be called once.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return ErrAlreadyInitialized
	}
	s.initialized = true

	token, err := s.backend.LoadToken(ctx)
	if err != nil {
		s.log.Warn(ctx, "cannot read persisted token", "error", err)
		token = ""
	}
	if token == "" {
		s.phase = PhaseAnonymous
		s.mu.Unlock()
		return nil
	}

	gen := s.beginLocked(token)
	s.mu.Unlock()

	return s.resolve(ctx, gen, token)
}

// FetchProfile makes token current and resolves it against the backend.
func (s *Store) FetchProfile(ctx context.Context, token string) error {
	s.mu.Lock()
	gen := s.beginLocked(token)
	s.mu.Unlock()

	return s.resolve(ctx, gen, token)
}

// Login persists token and resolves it. Whatever user was signed in before
// is cleared immediately.
func (s *Store) Login(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("empty token")
	}

	s.mu.Lock()
	s.initialized = true
	gen := s.beginLocked(token)
	if err := s.backend.SaveToken(ctx, token); err != nil {
		s.log.Warn(ctx, "cannot persist token", "error", err)
	}
	s.mu.Unlock()

	return s.resolve(ctx, gen, token)
}

// LoginWithPassword signs in with credentials and then behaves like Login.
// A rejected sign-in leaves the current session untouched.
func (s *Store) LoginWithPassword(ctx context.Context, email, password string) error {
	token, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.Login(ctx, token)
}

// Logout clears the session and the persisted token. The in-memory state is
// always cleared, even when the persisted token cannot be removed.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.initialized = true
	s.gen++
	s.token = ""
	s.user = nil
	s.phase = PhaseAnonymous
	err := s.backend.ClearToken(ctx)
	hooks := append([]func(){}, s.onLogout...)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}

	if err != nil {
		s.log.Warn(ctx, "cannot clear persisted token", "error", err)
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Snapshot returns a consistent copy of the session.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{Phase: s.phase, Token: s.token}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	st.TokenExpiry = tokenExpiry(s.token)
	return st
}

// Token is the current bearer token, suitable as a client.TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsLoading reports whether the store is resolving a token.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase == PhaseResolving
}

func (s *Store) beginLocked(token string) uint64 {
	s.gen++
	s.token = token
	s.user = nil
	s.phase = PhaseResolving
	return s.gen
}

// resolve fetches the profile for token without holding the lock and applies
// the outcome only if the session has not moved on.
func (s *Store) resolve(ctx context.Context, gen uint64, token string) error {
	profile, err := s.backend.FetchProfile(ctx, token)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.log.Debug(ctx, "dropping stale profile result")
		return ErrStale
	}

	if err != nil {
		s.token = ""
		s.user = nil
		s.phase = PhaseAnonymous
		if cerr := s.backend.ClearToken(ctx); cerr != nil {
			s.log.Warn(ctx, "cannot clear persisted token", "error", cerr)
		}
		s.log.Info(ctx, "session downgraded to anonymous", "error", err)
		return err
	}

	s.user = profile
	s.phase = PhaseAuthenticated
	s.log.Info(ctx, "session authenticated", "email", profile.Email)
	return nil
}

func tokenExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
