// Package models declares the entities managed by the console, the local
// validation rules applied before any of them is sent to the backend, and the
// sample records shown when a list cannot be loaded.
package models

import (
	"fmt"
	"strings"
)

// RequiredFieldsMessage is the operator-facing text for a draft that is
// missing required values.
const RequiredFieldsMessage = "Please fill in all required fields"

// ValidationError lists the draft fields that blocked submission.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(RequiredFieldsMessage)
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, " (missing: %s)", strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		fmt.Fprintf(&b, " (invalid: %s)", strings.Join(e.Invalid, ", "))
	}
	return b.String()
}

type checker struct {
	missing []string
	invalid []string
}

func (c *checker) require(field, value string) {
	if strings.TrimSpace(value) == "" {
		c.missing = append(c.missing, field)
	}
}

// requireChoice rejects empty values and form placeholders such as
// "loading" or "no-stores" that stand in for a not-yet-available list.
func (c *checker) requireChoice(field, value string) {
	v := strings.TrimSpace(value)
	if v == "" || isPlaceholder(v) {
		c.missing = append(c.missing, field)
	}
}

func (c *checker) requirePositive(field string, value float64) {
	if value <= 0 {
		c.missing = append(c.missing, field)
	}
}

func (c *checker) check(field string, ok bool) {
	if !ok {
		c.invalid = append(c.invalid, field)
	}
}

func (c *checker) err() error {
	if len(c.missing) == 0 && len(c.invalid) == 0 {
		return nil
	}
	return &ValidationError{Missing: c.missing, Invalid: c.invalid}
}

// Placeholder values offered by selection lists while reference data is
// loading or empty. They are never valid entity values.
const (
	PlaceholderLoading    = "loading"
	PlaceholderNoStores   = "no-stores"
	PlaceholderNoProducts = "no-products"
)

func isPlaceholder(v string) bool {
	switch v {
	case PlaceholderLoading, PlaceholderNoStores, PlaceholderNoProducts:
		return true
	}
	return false
}
