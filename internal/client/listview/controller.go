// Package listview implements the controller behind every entity table:
// load the collection, project it through search, facet filters and sort,
// keep a selection, and reload after each mutation.
//
// The controller never patches its list in place. Every successful create,
// update or delete is followed by a full reload, and a failed load replaces the
// list with the view's sample set so the table is never empty.
package listview

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/dmitrijs2005/eslconsole/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Source tells where the current items came from.
type Source int

const (
	SourceNone Source = iota
	SourceLive
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceLive:
		return "live"
	case SourceFallback:
		return "fallback"
	}
	return "none"
}

// Phase is where the controller is in its load cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	}
	return "idle"
}

// State is a copy of the controller state.
type State[T any] struct {
	Items    []T
	Loading  bool
	Error    string
	Source   Source
	Phase    Phase
	Selected []string
	Search   string
	Filters  map[string]string
	Sort     string
}

type config struct {
	log       logging.Logger
	bulkLimit int
	prune     bool
}

// Option configures a Controller.
type Option func(*config)

// WithLogger sets the logger for load and mutation failures. Defaults to a
// discarding logger.
func WithLogger(l logging.Logger) Option {
	return func(c *config) { c.log = l }
}

// WithBulkConcurrency caps the number of deletes BulkRemove runs at once.
// Zero or less means unlimited.
func WithBulkConcurrency(n int) Option {
	return func(c *config) { c.bulkLimit = n }
}

// WithSelectionPruning drops selected ids that are no longer visible whenever
// the search, a filter or the loaded items change.
func WithSelectionPruning() Option {
	return func(c *config) { c.prune = true }
}

// Controller owns the rows of one list view: loading, search, facet filters,
// sort, selection and mutations. It is safe for concurrent use.
type Controller[T any] struct {
	desc Descriptor[T]
	res  Resource[T]
	cfg  config

	mu       sync.Mutex
	items    []T
	loading  bool
	errMsg   string
	source   Source
	phase    Phase
	selected map[string]struct{}
	search   string
	filters  map[string]string
	sortKey  string
	// gen identifies the latest Load; older results are dropped.
	gen    uint64
	closed bool
}

// New returns an idle controller. Nothing is fetched until Load.
func New[T any](desc Descriptor[T], res Resource[T], opts ...Option) *Controller[T] {
	cfg := config{}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.log == nil {
		cfg.log = logging.Discard()
	}
	cfg.log = cfg.log.With("view", desc.Noun)

	return &Controller[T]{
		desc:     desc,
		res:      res,
		cfg:      cfg,
		selected: map[string]struct{}{},
		filters:  map[string]string{},
		sortKey:  desc.DefaultSort,
	}
}

// Descriptor returns the view's descriptor.
func (c *Controller[T]) Descriptor() Descriptor[T] { return c.desc }

// Load fetches the full collection. On failure the items are replaced by the
// view's fallback set and a *LoadError is returned.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.gen++
	gen := c.gen
	c.loading = true
	c.phase = PhaseLoading
	c.mu.Unlock()

	items, err := c.res.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if gen != c.gen {
		return ErrSuperseded
	}

	c.loading = false
	if err != nil {
		msg := fmt.Sprintf("Failed to load %s. Please try again.", c.desc.Noun)
		c.errMsg = msg
		c.items = nil
		if c.desc.Fallback != nil {
			c.items = c.desc.Fallback()
		}
		c.source = SourceFallback
		c.phase = PhaseError
		c.cfg.log.Error(ctx, "load failed, showing sample data", "error", err)
		return &LoadError{Message: msg, Err: err}
	}

	c.items = items
	c.errMsg = ""
	c.source = SourceLive
	c.phase = PhaseReady
	if c.cfg.prune {
		c.pruneLocked()
	}
	c.cfg.log.Debug(ctx, "list loaded", "count", len(items))
	return nil
}

// Filtered returns the visible items: search and every facet applied, then
// sorted. It does not change any state.
func (c *Controller[T]) Filtered() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filteredLocked()
}

func (c *Controller[T]) filteredLocked() []T {
	needle := strings.ToLower(strings.TrimSpace(c.search))

	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if needle != "" && (c.desc.SearchFields == nil || !matchesSearch(c.desc.SearchFields(item), needle)) {
			continue
		}
		if !c.facetsMatchLocked(item) {
			continue
		}
		out = append(out, item)
	}

	if cmp, ok := c.desc.Sorts[c.sortKey]; ok {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

func (c *Controller[T]) facetsMatchLocked(item T) bool {
	for _, f := range c.desc.Facets {
		if !f.matches(item, c.filters[f.Name]) {
			return false
		}
	}
	return true
}

// Page returns the n-th page (1-based) of the filtered items and the page
// count. Out-of-range pages are clamped.
func (c *Controller[T]) Page(n, size int) ([]T, int) {
	items := c.Filtered()
	if size <= 0 {
		return items, 1
	}
	pages := (len(items) + size - 1) / size
	if pages == 0 {
		return items, 1
	}
	n = max(1, min(n, pages))
	start := (n - 1) * size
	end := min(start+size, len(items))
	return items[start:end], pages
}

// Find looks an item up by id among the loaded items.
func (c *Controller[T]) Find(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if c.desc.ID(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Count returns how many loaded items satisfy pred, ignoring filters.
func (c *Controller[T]) Count(pred func(T) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, item := range c.items {
		if pred(item) {
			n++
		}
	}
	return n
}

// Select adds id to the selection or removes it. The id need not be loaded.
func (c *Controller[T]) Select(id string, included bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if included {
		c.selected[id] = struct{}{}
	} else {
		delete(c.selected, id)
	}
}

// SelectAll selects exactly the currently filtered items, or clears the
// selection.
func (c *Controller[T]) SelectAll(included bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = map[string]struct{}{}
	if !included {
		return
	}
	for _, item := range c.filteredLocked() {
		c.selected[c.desc.ID(item)] = struct{}{}
	}
}

// IsSelected reports whether id is in the selection.
func (c *Controller[T]) IsSelected(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.selected[id]
	return ok
}

// Selected returns the selected ids in sorted order. Ids of items that are
// filtered out or no longer loaded stay selected unless pruning is enabled.
func (c *Controller[T]) Selected() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedLocked()
}

func (c *Controller[T]) selectedLocked() []string {
	ids := make([]string, 0, len(c.selected))
	for id := range c.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SetSearch sets the case-insensitive search text. Empty matches everything.
func (c *Controller[T]) SetSearch(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search = text
	if c.cfg.prune {
		c.pruneLocked()
	}
}

// SetFilter sets one facet's value. An empty value or the facet's All label
// disables it; an unknown facet name is an *ErrUnknownFacet.
func (c *Controller[T]) SetFilter(facet, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.desc.facet(facet)
	if !ok {
		return &ErrUnknownFacet{Name: facet}
	}
	c.filters[f.Name] = value
	if c.cfg.prune {
		c.pruneLocked()
	}
	return nil
}

// ClearFilters resets the search text and every facet.
func (c *Controller[T]) ClearFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search = ""
	c.filters = map[string]string{}
}

// SetSort picks one of the descriptor's sort keys.
func (c *Controller[T]) SetSort(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.desc.Sorts[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSort, key)
	}
	c.sortKey = key
	return nil
}

func (c *Controller[T]) pruneLocked() {
	visible := map[string]struct{}{}
	for _, item := range c.filteredLocked() {
		visible[c.desc.ID(item)] = struct{}{}
	}
	for id := range c.selected {
		if _, ok := visible[id]; !ok {
			delete(c.selected, id)
		}
	}
}

// Snapshot returns a copy of the controller state.
func (c *Controller[T]) Snapshot() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	filters := make(map[string]string, len(c.filters))
	for k, v := range c.filters {
		filters[k] = v
	}
	return State[T]{
		Items:    slices.Clone(c.items),
		Loading:  c.loading,
		Error:    c.errMsg,
		Source:   c.source,
		Phase:    c.phase,
		Selected: c.selectedLocked(),
		Search:   c.search,
		Filters:  filters,
		Sort:     c.sortKey,
	}
}

// Create sends draft to the backend and reloads on success.
func (c *Controller[T]) Create(ctx context.Context, draft T) (T, error) {
	if err := c.checkOpen(); err != nil {
		var zero T
		return zero, err
	}
	created, err := c.res.Create(ctx, draft)
	if err != nil {
		return created, c.mutationError(ctx, "create", "", "save", err)
	}
	c.reload(ctx)
	return created, nil
}

// Update saves draft over id and reloads on success.
func (c *Controller[T]) Update(ctx context.Context, id string, draft T) (T, error) {
	if err := c.checkOpen(); err != nil {
		var zero T
		return zero, err
	}
	updated, err := c.res.Update(ctx, id, draft)
	if err != nil {
		return updated, c.mutationError(ctx, "update", id, "save", err)
	}
	c.reload(ctx)
	return updated, nil
}

// Remove deletes one item, drops it from the selection and reloads.
func (c *Controller[T]) Remove(ctx context.Context, id string) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	if err := c.res.Delete(ctx, id); err != nil {
		return c.mutationError(ctx, "delete", id, "delete", err)
	}
	c.Select(id, false)
	c.reload(ctx)
	return nil
}

// BulkRemove deletes ids concurrently and waits for every delete before a
// single reload. One failure does not cancel the others. Succeeded ids leave
// the selection; failed ids stay selected.
func (c *Controller[T]) BulkRemove(ctx context.Context, ids []string) (BulkResult, error) {
	res := BulkResult{Failed: map[string]error{}}
	if err := c.checkOpen(); err != nil {
		return res, err
	}

	ids = dedupe(ids)
	if len(ids) == 0 {
		return res, nil
	}

	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	if c.cfg.bulkLimit > 0 {
		g.SetLimit(c.cfg.bulkLimit)
	}
	for _, id := range ids {
		g.Go(func() error {
			err := c.res.Delete(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Failed[id] = err
				return nil
			}
			res.Succeeded = append(res.Succeeded, id)
			return nil
		})
	}
	_ = g.Wait()
	sort.Strings(res.Succeeded)

	c.mu.Lock()
	for _, id := range res.Succeeded {
		delete(c.selected, id)
	}
	c.mu.Unlock()

	c.reload(ctx)

	if len(res.Failed) > 0 {
		c.cfg.log.Error(ctx, "bulk delete partially failed",
			"succeeded", len(res.Succeeded), "failed", res.FailedIDs())
		return res, &BulkError{
			Message: fmt.Sprintf("Failed to delete %s. Please try again.", c.desc.Noun),
			Result:  res,
		}
	}
	c.cfg.log.Info(ctx, "bulk delete done", "count", len(res.Succeeded))
	return res, nil
}

// Close makes the controller drop every in-flight and future response.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Controller[T]) checkOpen() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return nil
}

func (c *Controller[T]) reload(ctx context.Context) {
	err := c.Load(ctx)
	if err != nil && !errors.Is(err, ErrSuperseded) && !errors.Is(err, ErrClosed) {
		c.cfg.log.Warn(ctx, "reload after mutation failed", "error", err)
	}
}

func (c *Controller[T]) mutationError(ctx context.Context, op, id, verb string, err error) error {
	msg := fmt.Sprintf("Failed to %s %s. Please try again.", verb, c.desc.singular())
	c.cfg.log.Error(ctx, op+" failed", "id", id, "error", err)
	return &MutationError{Op: op, ID: id, Message: msg, Err: err}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
