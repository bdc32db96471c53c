package backend

import (
	"context"
	"fmt"
	"net/http"
	nurl "net/url"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
)

// Resource implements out.Repository over /{resource} paths.
type Resource[T any] struct {
	adapter  *BackendAdapter
	resource domain.Resource
}

func newResource[T any](adapter *BackendAdapter, resource domain.Resource) *Resource[T] {
	return &Resource[T]{adapter: adapter, resource: resource}
}

func (r *Resource[T]) Resource() domain.Resource {
	return r.resource
}

func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	return r.list(ctx, r.resource.Path())
}

func (r *Resource[T]) ListBy(ctx context.Context, scope domain.Scope, id string) ([]T, error) {
	return r.list(ctx, fmt.Sprintf("%s/%s/%s", r.resource.Path(), scope, nurl.PathEscape(id)))
}

func (r *Resource[T]) list(ctx context.Context, path string) ([]T, error) {
	var env out.Envelope[[]T]
	if err := r.adapter.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return []T{}, nil
	}
	return env.Data, nil
}

func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	var env out.Envelope[*T]
	if err := r.adapter.do(ctx, http.MethodGet, r.itemPath(id), nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, fmt.Errorf("%s %s: %w", r.resource, id, errNoData)
	}
	return env.Data, nil
}

func (r *Resource[T]) Create(ctx context.Context, body interface{}) (out.Result, error) {
	var result out.Result
	err := r.adapter.do(ctx, http.MethodPost, r.resource.Path(), body, &result)
	return result, err
}

func (r *Resource[T]) Update(ctx context.Context, id string, body interface{}) (out.Result, error) {
	var result out.Result
	err := r.adapter.do(ctx, http.MethodPut, r.itemPath(id), body, &result)
	return result, err
}

func (r *Resource[T]) Delete(ctx context.Context, id string) (out.Result, error) {
	var result out.Result
	err := r.adapter.do(ctx, http.MethodDelete, r.itemPath(id), nil, &result)
	return result, err
}

func (r *Resource[T]) Stats(ctx context.Context) (domain.ResourceStats, error) {
	return r.adapter.Stats(ctx, r.resource)
}

func (r *Resource[T]) itemPath(id string) string {
	return r.resource.Path() + "/" + nurl.PathEscape(id)
}
