// Package refdata serves the option lists that forms and filters are built
// from: store names, product names and product categories. Lists are cached
// for a short time so switching views does not refetch them.
package refdata

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/eslconsole/internal/client/models"
	"github.com/dmitrijs2005/eslconsole/internal/logging"
	"github.com/patrickmn/go-cache"
)

const (
	DefaultTTL = 30 * time.Second

	AllCategories = "All Categories"

	keyStores     = "stores"
	keyProducts   = "products"
	keyCategories = "categories"
)

var ErrCategoryExists = errors.New("category already exists")

type StoreLister interface {
	List(ctx context.Context) ([]models.Store, error)
}

type ProductLister interface {
	List(ctx context.Context) ([]models.Product, error)
}

type CategoryClient interface {
	List(ctx context.Context, activeOnly bool) ([]models.Category, error)
	Create(ctx context.Context, cat models.Category) (models.Category, error)
}

type Options struct {
	stores     StoreLister
	products   ProductLister
	categories CategoryClient
	cache      *cache.Cache
	ttl        time.Duration
	log        logging.Logger

	mu sync.Mutex
	// local holds categories the backend refused to create; they stay
	// selectable for the rest of the run.
	local []string
}

func New(stores StoreLister, products ProductLister, categories CategoryClient, ttl time.Duration, log logging.Logger) *Options {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Options{
		stores:     stores,
		products:   products,
		categories: categories,
		cache:      cache.New(ttl, 2*ttl),
		ttl:        ttl,
		log:        log.With("component", "refdata"),
	}
}

func (o *Options) cached(ctx context.Context, key string, fetch func(context.Context) ([]string, error)) ([]string, error) {
	if v, found := o.cache.Get(key); found {
		return slices.Clone(v.([]string)), nil
	}
	names, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	o.cache.Set(key, names, o.ttl)
	return slices.Clone(names), nil
}

// StoreNames lists store names in backend order.
func (o *Options) StoreNames(ctx context.Context) ([]string, error) {
	return o.cached(ctx, keyStores, func(ctx context.Context) ([]string, error) {
		stores, err := o.stores.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list stores: %w", err)
		}
		names := make([]string, 0, len(stores))
		for _, s := range stores {
			names = append(names, s.Name)
		}
		return names, nil
	})
}

func (o *Options) ProductNames(ctx context.Context) ([]string, error) {
	return o.cached(ctx, keyProducts, func(ctx context.Context) ([]string, error) {
		products, err := o.products.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		names := make([]string, 0, len(products))
		for _, p := range products {
			names = append(names, p.Name)
		}
		return names, nil
	})
}

// Categories lists active category names. When the backend cannot be reached
// the default set is returned instead. Categories kept locally are appended.
func (o *Options) Categories(ctx context.Context) []string {
	names, err := o.cached(ctx, keyCategories, func(ctx context.Context) ([]string, error) {
		cats, err := o.categories.List(ctx, true)
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		names := make([]string, 0, len(cats))
		for _, c := range cats {
			names = append(names, c.Name)
		}
		return names, nil
	})
	if err != nil {
		o.log.Warn(ctx, "using default categories", "error", err)
		names = models.DefaultCategories()
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	for _, n := range o.local {
		if !containsFold(names, n) {
			names = append(names, n)
		}
	}
	return names
}

// CategoryFilterOptions prefixes the category list with the filter sentinel.
func (o *Options) CategoryFilterOptions(ctx context.Context) []string {
	return append([]string{AllCategories}, o.Categories(ctx)...)
}

// AddCategory creates a category. If the backend rejects or cannot be
// reached, the name is kept locally and persisted is false.
func (o *Options) AddCategory(ctx context.Context, name string) (cat models.Category, persisted bool, err error) {
	cat = models.NewCategory(name)
	if err := cat.Validate(); err != nil {
		return cat, false, err
	}
	if containsFold(o.Categories(ctx), cat.Name) {
		return cat, false, ErrCategoryExists
	}

	created, err := o.categories.Create(ctx, cat)
	if err != nil {
		o.log.Warn(ctx, "category kept locally only", "name", cat.Name, "error", err)
		o.mu.Lock()
		o.local = append(o.local, cat.Name)
		o.mu.Unlock()
		return cat, false, nil
	}

	o.cache.Delete(keyCategories)
	return created, true, nil
}

// Invalidate drops every cached list, typically after a mutation.
func (o *Options) Invalidate() {
	o.cache.Flush()
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
