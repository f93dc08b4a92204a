package listview

import (
	"context"
	"strings"
)

// Resource is the backend collection a controller works against.
// *client.Collection[T] satisfies it.
type Resource[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, draft T) (T, error)
	Update(ctx context.Context, id string, draft T) (T, error)
	Delete(ctx context.Context, id string) error
}

// Descriptor configures a Controller for one entity type.
type Descriptor[T any] struct {
	// Noun is the plural used in operator messages ("stores").
	Noun string
	// Singular is used for single-item mutation messages ("store").
	Singular string

	ID           func(T) string
	SearchFields func(T) []string
	Facets       []Facet[T]

	// Sorts maps a sort key to a comparison. DefaultSort must be one of them,
	// or empty to keep backend order.
	Sorts       map[string]func(a, b T) int
	DefaultSort string

	// Fallback returns the sample set shown when the list cannot be loaded.
	Fallback func() []T
}

func (d Descriptor[T]) facet(name string) (Facet[T], bool) {
	for _, f := range d.Facets {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Facet[T]{}, false
}

func (d Descriptor[T]) singular() string {
	if d.Singular != "" {
		return d.Singular
	}
	return strings.TrimSuffix(d.Noun, "s")
}

// Facet is a single-valued filter. The All sentinel, or an empty value,
// matches every item.
type Facet[T any] struct {
	Name string
	All  string
	// Options lists the static values. Empty for facets fed from reference
	// data at runtime.
	Options []string
	Match   func(item T, value string) bool
}

func (f Facet[T]) matches(item T, value string) bool {
	if value == "" || value == f.All {
		return true
	}
	return f.Match(item, value)
}

// FieldEquals builds a Facet.Match that compares one field exactly.
func FieldEquals[T any](field func(T) string) func(T, string) bool {
	return func(item T, value string) bool {
		return field(item) == value
	}
}

func matchesSearch(fields []string, needle string) bool {
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
