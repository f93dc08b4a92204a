// Package forms holds the draft state behind the console's create and edit
// dialogs.
//
// A Modal owns one draft at a time. Submit validates locally first, so a
// draft with missing fields never reaches the backend, and only one
// submission may be in flight. A failed submission keeps the modal open with
// the error so the operator can fix the draft and retry.
package forms

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/eslconsole/internal/logging"
)

var (
	ErrNotOpen        = errors.New("form is not open")
	ErrSubmitInFlight = errors.New("form is already being submitted")
)

// Saver persists drafts. *listview.Controller[T] and *client.Collection[T]
// both satisfy it.
type Saver[T any] interface {
	Create(ctx context.Context, draft T) (T, error)
	Update(ctx context.Context, id string, draft T) (T, error)
}

// Spec is the per-entity part of a form.
type Spec[T any] struct {
	Noun     string
	Blank    func() T
	Validate func(T) error
	// BeforeCreate stamps a new entity right before it is sent. Optional.
	BeforeCreate func(draft T, now time.Time) T
}

type Mode int

const (
	ModeClosed Mode = iota
	ModeCreate
	ModeEdit
)

type settings struct {
	onSuccess func(ctx context.Context)
	now       func() time.Time
	log       logging.Logger
}

type Option func(*settings)

// WithOnSuccess registers fn to run after each successful submission, once
// the modal has closed.
func WithOnSuccess(fn func(ctx context.Context)) Option {
	return func(s *settings) { s.onSuccess = fn }
}

func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

func WithLogger(l logging.Logger) Option {
	return func(s *settings) { s.log = l }
}

type Modal[T any] struct {
	saver Saver[T]
	spec  Spec[T]
	set   settings

	mu         sync.Mutex
	mode       Mode
	id         string
	draft      T
	submitting bool
	lastErr    error
	// opened changes on every open and close; a submission only settles the
	// draft it was started from.
	opened uint64
}

func New[T any](saver Saver[T], spec Spec[T], opts ...Option) *Modal[T] {
	s := settings{now: time.Now}
	for _, o := range opts {
		o(&s)
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	s.log = s.log.With("form", spec.Noun)
	return &Modal[T]{saver: saver, spec: spec, set: s}
}

// OpenCreate starts a new draft from the blank defaults.
func (m *Modal[T]) OpenCreate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	var blank T
	if m.spec.Blank != nil {
		blank = m.spec.Blank()
	}
	m.mode = ModeCreate
	m.id = ""
	m.draft = blank
	m.lastErr = nil
	m.opened++
}

// OpenEdit starts a draft seeded from an existing entity.
func (m *Modal[T]) OpenEdit(id string, entity T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mode = ModeEdit
	m.id = id
	m.draft = entity
	m.lastErr = nil
	m.opened++
}

func (m *Modal[T]) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

func (m *Modal[T]) IsOpen() bool { return m.Mode() != ModeClosed }

// Edit applies fn to the draft.
func (m *Modal[T]) Edit(fn func(*T)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mode == ModeClosed {
		return ErrNotOpen
	}
	fn(&m.draft)
	return nil
}

func (m *Modal[T]) Draft() T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft
}

// LastError is the error of the most recent failed submission, if any.
func (m *Modal[T]) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

func (m *Modal[T]) IsSubmitting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submitting
}

// Close discards the draft.
func (m *Modal[T]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
}

func (m *Modal[T]) closeLocked() {
	var zero T
	m.mode = ModeClosed
	m.id = ""
	m.draft = zero
	m.lastErr = nil
	m.opened++
}

// Submit validates the draft and sends it. Validation failures return a
// *models.ValidationError without any backend call. If the modal is reopened
// or closed while the save is in flight, the result is still returned but the
// new draft is left untouched.
func (m *Modal[T]) Submit(ctx context.Context) error {
	m.mu.Lock()
	if m.mode == ModeClosed {
		m.mu.Unlock()
		return ErrNotOpen
	}
	if m.submitting {
		m.mu.Unlock()
		return ErrSubmitInFlight
	}

	draft, mode, id, opened := m.draft, m.mode, m.id, m.opened
	if m.spec.Validate != nil {
		if err := m.spec.Validate(draft); err != nil {
			m.lastErr = err
			m.mu.Unlock()
			return err
		}
	}
	if mode == ModeCreate && m.spec.BeforeCreate != nil {
		draft = m.spec.BeforeCreate(draft, m.set.now())
	}
	m.submitting = true
	m.mu.Unlock()

	var err error
	if mode == ModeCreate {
		_, err = m.saver.Create(ctx, draft)
	} else {
		_, err = m.saver.Update(ctx, id, draft)
	}

	m.mu.Lock()
	m.submitting = false
	current := m.opened == opened
	if err != nil {
		if current {
			m.lastErr = err
		}
		m.mu.Unlock()
		m.set.log.Warn(ctx, "submit failed", "id", id, "error", err)
		return err
	}
	if current {
		m.closeLocked()
	}
	m.mu.Unlock()

	m.set.log.Info(ctx, "submitted", "id", id)
	if m.set.onSuccess != nil {
		m.set.onSuccess(ctx)
	}
	return nil
}
