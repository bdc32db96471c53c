package listview

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
)

type FetchFunc[T any] func(ctx context.Context) ([]T, error)

type Options[T any] struct {
	// Name identifies the collection in logs.
	Name       string
	Fetch      FetchFunc[T]
	Searchable func(T) string
	Filters    []Filter[T]
	Paginated  bool
	PageSize   int
	Logger     out.LoggerPort
}

// Controller owns one in-memory collection and the view state over it:
// search term, categorical filters and the pagination window. Every read
// recomputes the visible rows from the collection.
type Controller[T any] struct {
	name       string
	fetch      FetchFunc[T]
	searchable func(T) string
	filters    []Filter[T]
	paginated  bool
	logger     out.LoggerPort

	mu       sync.RWMutex
	items    []T
	search   string
	values   map[string]string
	page     int
	pageSize int
	stale    bool
	loaded   bool

	// seq tags each fetch; only the latest one may replace items
	seq atomic.Uint64
}

func New[T any](opts Options[T]) *Controller[T] {
	size := opts.PageSize
	if !ValidPageSize(size) {
		size = DefaultPageSize
	}
	searchable := opts.Searchable
	if searchable == nil {
		searchable = func(T) string { return "" }
	}

	return &Controller[T]{
		name:       opts.Name,
		fetch:      opts.Fetch,
		searchable: searchable,
		filters:    opts.Filters,
		paginated:  opts.Paginated,
		logger:     opts.Logger.WithModule("ListView").WithFields(out.LogFields{"list": opts.Name}),
		items:      []T{},
		values:     make(map[string]string, len(opts.Filters)),
		page:       1,
		pageSize:   size,
	}
}

func (c *Controller[T]) Name() string {
	return c.name
}

// Load fetches the collection. A response that arrives after a newer
// Load has started is dropped.
func (c *Controller[T]) Load(ctx context.Context) error {
	token := c.seq.Add(1)

	items, err := c.fetch(ctx)
	if err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.seq.Load() {
		c.logger.Debug("listview.load.stale", out.LogFields{
			"token":  token,
			"latest": c.seq.Load(),
		})
		return nil
	}

	c.items = items
	c.stale = false
	c.loaded = true

	c.logger.Debug("listview.load.success", out.LogFields{
		"count": len(items),
	})
	return nil
}

// Mount is the first load of a screen. Failure is only logged and leaves
// the collection empty.
func (c *Controller[T]) Mount(ctx context.Context) {
	if err := c.Load(ctx); err != nil {
		c.logger.Error("listview.load.failed", out.LogFields{
			"error": err.Error(),
		})
		c.mu.Lock()
		c.loaded = true
		c.stale = false
		c.mu.Unlock()
	}
}

// Refresh loads when the collection was never loaded or was invalidated.
func (c *Controller[T]) Refresh(ctx context.Context) {
	c.mu.RLock()
	needed := !c.loaded || c.stale
	c.mu.RUnlock()

	if needed {
		c.Mount(ctx)
	}
}

func (c *Controller[T]) Invalidate() {
	c.mu.Lock()
	c.stale = true
	c.mu.Unlock()
}

func (c *Controller[T]) Stale() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stale
}

func (c *Controller[T]) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if term != c.search {
		c.search = term
		c.page = 1
	}
}

func (c *Controller[T]) Search() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.search
}

func (c *Controller[T]) SetFilter(name, value string) error {
	if !c.hasFilter(name) {
		return domain.NewValidationError(fmt.Sprintf("Unknown filter: %s", name))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if inactive(value) {
		value = All
	}
	if c.filterValue(name) != value {
		c.values[name] = value
		c.page = 1
	}
	return nil
}

func (c *Controller[T]) Filter(name string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filterValue(name)
}

func (c *Controller[T]) SetPageSize(size int) error {
	if !ValidPageSize(size) {
		return domain.NewValidationError(fmt.Sprintf("Page size must be one of %v", PageSizes))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if size != c.pageSize {
		c.pageSize = size
		c.page = 1
	}
	return nil
}

// SetPage clamps page to the current window.
func (c *Controller[T]) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pages := totalPages(len(c.visible()), c.pageSize)
	c.page = clampPage(page, pages)
}

func (c *Controller[T]) Page() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.page
}

// Items is the full loaded collection.
func (c *Controller[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// Visible is the collection after search and filters.
func (c *Controller[T]) Visible() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.visible()
}

// PageRows is the current page of the visible rows. Unpaginated lists
// return every visible row as a single page.
func (c *Controller[T]) PageRows() ([]T, PageInfo) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rows := c.visible()
	if !c.paginated {
		return rows, PageInfo{
			Page:       1,
			PageSize:   len(rows),
			TotalPages: 1,
			TotalRows:  len(rows),
			From:       min(1, len(rows)),
			To:         len(rows),
		}
	}
	return paginate(rows, c.page, c.pageSize)
}

// Find returns the first loaded item matching.
func (c *Controller[T]) Find(match func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Patch applies an in-place update to every matching item and reports
// whether one was found.
func (c *Controller[T]) Patch(match func(T) bool, apply func(*T)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	patched := false
	next := slices.Clone(c.items)
	for i := range next {
		if match(next[i]) {
			apply(&next[i])
			patched = true
		}
	}
	c.items = next
	return patched
}

func (c *Controller[T]) visible() []T {
	rows := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if !Matches(c.searchable(item), c.search) {
			continue
		}
		if !c.matchesFilters(item) {
			continue
		}
		rows = append(rows, item)
	}
	return rows
}

func (c *Controller[T]) matchesFilters(item T) bool {
	for _, f := range c.filters {
		value := c.filterValue(f.Name)
		if inactive(value) {
			continue
		}
		if !f.Match(item, value) {
			return false
		}
	}
	return true
}

func (c *Controller[T]) filterValue(name string) string {
	if v, ok := c.values[name]; ok {
		return v
	}
	return All
}

func (c *Controller[T]) hasFilter(name string) bool {
	for _, f := range c.filters {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Apply sets search, then filters, then page size, then page, so an
// explicit page survives the resets the earlier steps cause.
func (c *Controller[T]) Apply(q Query) error {
	if q.Search != nil {
		c.SetSearch(*q.Search)
	}
	for name, value := range q.Filters {
		if err := c.SetFilter(name, value); err != nil {
			return err
		}
	}
	if q.PageSize != 0 {
		if err := c.SetPageSize(q.PageSize); err != nil {
			return err
		}
	}
	if q.Page != 0 {
		c.SetPage(q.Page)
	}
	return nil
}
