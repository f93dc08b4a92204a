package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/eslconsole/internal/client/export"
	"github.com/dmitrijs2005/eslconsole/internal/client/forms"
	"github.com/dmitrijs2005/eslconsole/internal/client/listview"
)

var errReadOnly = errors.New("this view is read-only")

// viewer is the type-erased face of one entity screen: a list controller,
// its form and the way rows are drawn.
type viewer interface {
	Name() string
	Load(ctx context.Context) error
	Status() listview.State[struct{}]
	Table(page, size int) (string, int)
	Facets() []string
	Sorts() []string

	SetSearch(text string)
	SetFilter(facet, value string) error
	ClearFilters()
	SetSort(key string) error

	Select(id string, included bool) bool
	SelectAll(included bool)
	Selected() []string

	Add(ctx context.Context, f *form) error
	Edit(ctx context.Context, id string, f *form) error
	Remove(ctx context.Context, id string) error
	BulkRemove(ctx context.Context) (listview.BulkResult, error)

	Encode(format export.Format) ([]byte, int, error)
	Close()
}

type fillFunc[T any] func(ctx context.Context, f *form, draft *T, mode forms.Mode)

type entityView[T any] struct {
	name    string
	ctrl    *listview.Controller[T]
	modal   *forms.Modal[T]
	columns []string
	row     func(T) []string
	fill    fillFunc[T]
	// blur runs after the fields are filled, before submit.
	blur func(*forms.Modal[T]) (bool, error)
}

func (v *entityView[T]) Name() string { return v.name }

func (v *entityView[T]) Load(ctx context.Context) error { return v.ctrl.Load(ctx) }

// Status is the controller state without the items.
func (v *entityView[T]) Status() listview.State[struct{}] {
	s := v.ctrl.Snapshot()
	return listview.State[struct{}]{
		Loading:  s.Loading,
		Error:    s.Error,
		Source:   s.Source,
		Phase:    s.Phase,
		Selected: s.Selected,
		Search:   s.Search,
		Filters:  s.Filters,
		Sort:     s.Sort,
	}
}

func (v *entityView[T]) Table(page, size int) (string, int) {
	id := v.ctrl.Descriptor().ID
	items, pages := v.ctrl.Page(page, size)

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		mark := " "
		if v.ctrl.IsSelected(id(it)) {
			mark = "*"
		}
		rows = append(rows, append([]string{mark}, v.row(it)...))
	}
	return renderTable(append([]string{""}, v.columns...), rows), pages
}

func (v *entityView[T]) Facets() []string {
	facets := v.ctrl.Descriptor().Facets
	names := make([]string, 0, len(facets))
	for _, f := range facets {
		names = append(names, f.Name)
	}
	return names
}

func (v *entityView[T]) Sorts() []string {
	keys := make([]string, 0, len(v.ctrl.Descriptor().Sorts))
	for k := range v.ctrl.Descriptor().Sorts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (v *entityView[T]) SetSearch(text string) { v.ctrl.SetSearch(text) }

func (v *entityView[T]) SetFilter(facet, value string) error { return v.ctrl.SetFilter(facet, value) }

func (v *entityView[T]) ClearFilters() { v.ctrl.ClearFilters() }

func (v *entityView[T]) SetSort(key string) error { return v.ctrl.SetSort(key) }

// Select reports whether id is a loaded item. Unknown ids are ignored.
func (v *entityView[T]) Select(id string, included bool) bool {
	if _, ok := v.ctrl.Find(id); !ok {
		return false
	}
	v.ctrl.Select(id, included)
	return true
}

func (v *entityView[T]) SelectAll(included bool) { v.ctrl.SelectAll(included) }

func (v *entityView[T]) Selected() []string { return v.ctrl.Selected() }

func (v *entityView[T]) Add(ctx context.Context, f *form) error {
	if v.modal == nil {
		return errReadOnly
	}
	v.modal.OpenCreate()
	return v.submit(ctx, f)
}

func (v *entityView[T]) Edit(ctx context.Context, id string, f *form) error {
	if v.modal == nil {
		return errReadOnly
	}
	item, ok := v.ctrl.Find(id)
	if !ok {
		return fmt.Errorf("no %s with id %q", v.name, id)
	}
	v.modal.OpenEdit(id, item)
	return v.submit(ctx, f)
}

// submit prompts for the fields and sends the draft. When the submit fails
// the operator may correct the fields and try again; the draft is kept.
func (v *entityView[T]) submit(ctx context.Context, f *form) error {
	for {
		draft := v.modal.Draft()
		v.fill(ctx, f, &draft, v.modal.Mode())
		if f.err != nil {
			v.modal.Close()
			return f.err
		}
		if err := v.modal.Edit(func(d *T) { *d = draft }); err != nil {
			return err
		}
		if v.blur != nil {
			if changed, _ := v.blur(v.modal); changed {
				fmt.Fprintln(f.w, mutedStyle.Render("selling price recalculated from MRP and discount"))
			}
		}

		err := v.modal.Submit(ctx)
		if err == nil {
			return nil
		}
		fmt.Fprintln(f.w, errorStyle.Render(operatorMessage(err)))
		if !f.confirm("Try again?") {
			v.modal.Close()
			return err
		}
	}
}

func (v *entityView[T]) Remove(ctx context.Context, id string) error {
	if v.modal == nil {
		return errReadOnly
	}
	return v.ctrl.Remove(ctx, id)
}

func (v *entityView[T]) BulkRemove(ctx context.Context) (listview.BulkResult, error) {
	if v.modal == nil {
		return listview.BulkResult{}, errReadOnly
	}
	return v.ctrl.BulkRemove(ctx, v.ctrl.Selected())
}

// Encode renders the selected rows, or the whole filtered view when nothing
// is selected.
func (v *entityView[T]) Encode(format export.Format) ([]byte, int, error) {
	items := v.ctrl.Filtered()
	if sel := v.ctrl.Selected(); len(sel) > 0 {
		items = items[:0:0]
		for _, id := range sel {
			if it, ok := v.ctrl.Find(id); ok {
				items = append(items, it)
			}
		}
	}
	data, err := export.Encode(format, items)
	if err != nil {
		return nil, 0, err
	}
	return data, len(items), nil
}

func (v *entityView[T]) Close() {
	v.ctrl.Close()
	if v.modal != nil {
		v.modal.Close()
	}
}
