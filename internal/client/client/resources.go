package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/eslconsole/internal/client/models"
)

// Collection is a REST collection mounted at path ("/stores") with the
// backend's conventions: list and create on "/path/", item operations on
// "/path/{id}".
type Collection[T any] struct {
	c    *HTTPClient
	path string
}

func NewCollection[T any](c *HTTPClient, path string) *Collection[T] {
	return &Collection[T]{c: c, path: path}
}

func (r *Collection[T]) Path() string { return r.path }

func (r *Collection[T]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

func (r *Collection[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.c.do(ctx, http.MethodGet, r.path+"/", nil, r.c.token(), nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (r *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var item T
	err := r.c.do(ctx, http.MethodGet, r.itemPath(id), nil, r.c.token(), nil, &item)
	return item, err
}

func (r *Collection[T]) Create(ctx context.Context, draft T) (T, error) {
	var created T
	err := r.c.do(ctx, http.MethodPost, r.path+"/", nil, r.c.token(), draft, &created)
	return created, err
}

func (r *Collection[T]) Update(ctx context.Context, id string, draft T) (T, error) {
	var updated T
	err := r.c.do(ctx, http.MethodPut, r.itemPath(id), nil, r.c.token(), draft, &updated)
	return updated, err
}

func (r *Collection[T]) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, r.itemPath(id), nil, r.c.token(), nil, nil)
}

func (c *HTTPClient) Stores() *Collection[models.Store] {
	return NewCollection[models.Store](c, "/stores")
}

func (c *HTTPClient) Products() *Collection[models.Product] {
	return NewCollection[models.Product](c, "/products")
}

func (c *HTTPClient) ESLs() *Collection[models.ESL] {
	return NewCollection[models.ESL](c, "/esls")
}

func (c *HTTPClient) Gateways() *Collection[models.Gateway] {
	return NewCollection[models.Gateway](c, "/gateways")
}

func (c *HTTPClient) Users() *Collection[models.User] {
	return NewCollection[models.User](c, "/users")
}

func (c *HTTPClient) SyncLogs() *Collection[models.SyncLog] {
	return NewCollection[models.SyncLog](c, "/sync-logs")
}

// Categories only supports listing and creation.
type Categories struct {
	c *HTTPClient
}

func (c *HTTPClient) Categories() *Categories {
	return &Categories{c: c}
}

func (r *Categories) List(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	q := url.Values{"active_only": []string{strconv.FormatBool(activeOnly)}}
	var items []models.Category
	if err := r.c.do(ctx, http.MethodGet, "/categories/", q, r.c.token(), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Categories) Create(ctx context.Context, cat models.Category) (models.Category, error) {
	var created models.Category
	err := r.c.do(ctx, http.MethodPost, "/categories/", nil, r.c.token(), cat, &created)
	return created, err
}
