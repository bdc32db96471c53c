package screens

import (
	"context"
	"slices"
	"time"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"github.com/estaraht/admin-dashboard/internal/core/services/listview"
	"github.com/estaraht/admin-dashboard/internal/core/services/mutation"
)

// Screen is one dashboard route with its own in-memory state. A screen
// lives until the session navigates to another one.
type Screen interface {
	Name() string
	// Resources lists the backend collections the screen shows.
	Resources() []domain.Resource
	Mount(ctx context.Context)
	// Refresh re-fetches whatever was invalidated since the last read.
	Refresh(ctx context.Context)
	Invalidate()
	Stale() bool
}

// Shows reports whether s displays resource.
func Shows(s Screen, resource domain.Resource) bool {
	return slices.Contains(s.Resources(), resource)
}

// ListView is the JSON shape of every list screen.
type ListView[R any, S any] struct {
	Rows    []R               `json:"rows"`
	Page    listview.PageInfo `json:"page"`
	Search  string            `json:"search"`
	Filters map[string]string `json:"filters,omitempty"`
	Stats   S                 `json:"stats"`
}

// listScreen is the shared body of the list screens: one controller over
// rows R and one dispatcher for mutations on T.
type listScreen[T, R any] struct {
	repo         out.Repository[T]
	name         string
	resources    []domain.Resource
	list         *listview.Controller[R]
	mutations    *mutation.Dispatcher[T, R]
	filterNames  []string
	deletePrompt string
}

func (s *listScreen[T, R]) Name() string {
	return s.name
}

func (s *listScreen[T, R]) Resources() []domain.Resource {
	return s.resources
}

func (s *listScreen[T, R]) Mount(ctx context.Context) {
	s.list.Mount(ctx)
}

func (s *listScreen[T, R]) Refresh(ctx context.Context) {
	s.list.Refresh(ctx)
}

func (s *listScreen[T, R]) Invalidate() {
	s.list.Invalidate()
}

func (s *listScreen[T, R]) Stale() bool {
	return s.list.Stale()
}

func (s *listScreen[T, R]) List() *listview.Controller[R] {
	return s.list
}

// apply moves the view state to q and returns the current page.
func (s *listScreen[T, R]) apply(ctx context.Context, q listview.Query) ([]R, listview.PageInfo, error) {
	s.list.Refresh(ctx)
	if err := s.list.Apply(q); err != nil {
		return nil, listview.PageInfo{}, err
	}
	rows, info := s.list.PageRows()
	return rows, info, nil
}

func (s *listScreen[T, R]) filters() map[string]string {
	if len(s.filterNames) == 0 {
		return nil
	}
	values := make(map[string]string, len(s.filterNames))
	for _, name := range s.filterNames {
		values[name] = s.list.Filter(name)
	}
	return values
}

func (s *listScreen[T, R]) create(ctx context.Context, operation string, body interface{}) error {
	_, err := s.mutations.Run(ctx, operation, func(ctx context.Context) (out.Result, error) {
		return s.repo.Create(ctx, body)
	})
	return err
}

func (s *listScreen[T, R]) delete(ctx context.Context, id string, confirm out.ConfirmPort) error {
	_, err := s.mutations.Delete(ctx, id, s.deletePrompt, confirm)
	return err
}

func viewOf[T, R, V, S any](s *listScreen[T, R], rows []V, info listview.PageInfo, stats S) *ListView[V, S] {
	return &ListView[V, S]{
		Rows:    rows,
		Page:    info,
		Search:  s.list.Search(),
		Filters: s.filters(),
		Stats:   stats,
	}
}

// Factory builds screens over one backend.
type Factory struct {
	backend out.BackendPort
	logger  out.LoggerPort
	now     func() time.Time
}

func NewFactory(backend out.BackendPort, logger out.LoggerPort) *Factory {
	return &Factory{
		backend: backend,
		logger:  logger.WithModule("Screens"),
		now:     time.Now,
	}
}

// WithClock replaces the time source used for date-derived states.
func (f *Factory) WithClock(now func() time.Time) *Factory {
	next := *f
	next.now = now
	return &next
}

func newListScreen[T, R any](f *Factory, repo out.Repository[T], opts listview.Options[R], prompt string, resources ...domain.Resource) *listScreen[T, R] {
	opts.Logger = f.logger
	list := listview.New(opts)

	filterNames := make([]string, 0, len(opts.Filters))
	for _, filter := range opts.Filters {
		filterNames = append(filterNames, filter.Name)
	}

	return &listScreen[T, R]{
		repo:         repo,
		name:         opts.Name,
		resources:    append([]domain.Resource{repo.Resource()}, resources...),
		list:         list,
		mutations:    mutation.New(repo, list, f.logger),
		filterNames:  filterNames,
		deletePrompt: prompt,
	}
}
