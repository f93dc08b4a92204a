package listview

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrSuperseded is returned by Load when a newer Load started before this
	// one finished; its result was dropped.
	ErrSuperseded  = errors.New("load superseded by a newer request")
	ErrClosed      = errors.New("controller closed")
	ErrUnknownSort = errors.New("unknown sort key")
)

// ErrUnknownFacet is returned by SetFilter for a facet the view does not have.
type ErrUnknownFacet struct {
	Name string
}

func (e *ErrUnknownFacet) Error() string {
	return fmt.Sprintf("unknown filter %q", e.Name)
}

// LoadError carries the operator-facing load message and the cause.
type LoadError struct {
	Message string
	Err     error
}

func (e *LoadError) Error() string { return e.Message + ": " + e.Err.Error() }

func (e *LoadError) Unwrap() error { return e.Err }

// MutationError is returned when a create, update or delete is rejected.
// Message is what the operator sees; Err keeps the cause for logs.
type MutationError struct {
	Op      string
	ID      string
	Message string
	Err     error
}

func (e *MutationError) Error() string {
	return e.Message + ": " + e.Err.Error()
}

func (e *MutationError) Unwrap() error { return e.Err }

// BulkResult reports a bulk delete per id.
type BulkResult struct {
	Succeeded []string
	Failed    map[string]error
}

// FailedIDs returns the failed ids in sorted order.
func (r BulkResult) FailedIDs() []string {
	ids := make([]string, 0, len(r.Failed))
	for id := range r.Failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// BulkError is returned by BulkRemove when at least one delete failed.
type BulkError struct {
	Message string
	Result  BulkResult
}

func (e *BulkError) Error() string {
	return fmt.Sprintf("%s (failed: %s)", e.Message, strings.Join(e.Result.FailedIDs(), ", "))
}

// Unwrap exposes the individual delete errors to errors.Is.
func (e *BulkError) Unwrap() []error {
	errs := make([]error, 0, len(e.Result.Failed))
	for _, id := range e.Result.FailedIDs() {
		errs = append(errs, e.Result.Failed[id])
	}
	return errs
}
