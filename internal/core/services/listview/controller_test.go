package listview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/estaraht/admin-dashboard/internal/adapters/out/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID       int
	Name     string
	Status   string
	Currency string
}

func rows(n int) []row {
	statuses := []string{"success", "waiting", "failed"}
	currencies := []string{"usd", "MRU"}
	out := make([]row, n)
	for i := range out {
		out[i] = row{
			ID:       i + 1,
			Name:     fmt.Sprintf("Row %d", i+1),
			Status:   statuses[i%len(statuses)],
			Currency: currencies[i%len(currencies)],
		}
	}
	return out
}

func newController(items []row, paginated bool) *Controller[row] {
	return New(Options[row]{
		Name: "rows",
		Fetch: func(ctx context.Context) ([]row, error) {
			return items, nil
		},
		Searchable: func(r row) string { return r.Name },
		Filters: []Filter[row]{
			Equals("status", func(r row) string { return r.Status }),
			Equals("currency", func(r row) string { return r.Currency }),
		},
		Paginated: paginated,
		Logger:    logger.NewDiscardLogger(),
	})
}

func TestController_SearchIsSubsetAndCaseInsensitive(t *testing.T) {
	c := newController(rows(30), false)
	c.Mount(context.Background())

	for _, term := range []string{"", "row 1", "ROW 2", "7", "nothing"} {
		c.SetSearch(term)
		visible := c.Visible()

		assert.LessOrEqual(t, len(visible), len(c.Items()))
		for _, r := range visible {
			assert.Contains(t, c.Items(), r)
			assert.True(t, strings.Contains(strings.ToLower(r.Name), strings.ToLower(term)))
		}
		if term == "" {
			assert.Len(t, visible, 30)
		}
	}
}

func TestController_FiltersCombineWithSearch(t *testing.T) {
	c := newController(rows(30), false)
	c.Mount(context.Background())

	require.NoError(t, c.SetFilter("status", "waiting"))
	for _, r := range c.Visible() {
		assert.Equal(t, "waiting", r.Status)
	}
	assert.Len(t, c.Visible(), 10)

	require.NoError(t, c.SetFilter("currency", "USD"))
	for _, r := range c.Visible() {
		assert.Equal(t, "waiting", r.Status)
		assert.Equal(t, "usd", r.Currency)
	}

	require.NoError(t, c.SetFilter("status", All))
	require.NoError(t, c.SetFilter("currency", ""))
	assert.Len(t, c.Visible(), 30)
}

func TestController_UnknownFilter(t *testing.T) {
	c := newController(rows(3), false)
	assert.Error(t, c.SetFilter("gender", "male"))
}

func TestController_InputChangesResetPage(t *testing.T) {
	c := newController(rows(100), true)
	c.Mount(context.Background())

	c.SetPage(4)
	require.Equal(t, 4, c.Page())
	c.SetSearch("row")
	assert.Equal(t, 1, c.Page())

	c.SetPage(3)
	require.NoError(t, c.SetFilter("status", "failed"))
	assert.Equal(t, 1, c.Page())

	c.SetPage(2)
	require.NoError(t, c.SetPageSize(25))
	assert.Equal(t, 1, c.Page())
}

func TestController_SameValueKeepsPage(t *testing.T) {
	c := newController(rows(100), true)
	c.Mount(context.Background())

	c.SetSearch("row")
	c.SetPage(3)
	c.SetSearch("row")
	assert.Equal(t, 3, c.Page())
}

func TestController_PageSizes(t *testing.T) {
	c := newController(rows(3), true)
	for _, size := range PageSizes {
		assert.NoError(t, c.SetPageSize(size))
	}
	for _, size := range []int{0, 5, 20, 1000} {
		assert.Error(t, c.SetPageSize(size))
	}
}

func TestController_PageRowsAndClamping(t *testing.T) {
	c := newController(rows(23), true)
	c.Mount(context.Background())

	page, info := c.PageRows()
	assert.Len(t, page, 10)
	assert.Equal(t, PageInfo{Page: 1, PageSize: 10, TotalPages: 3, TotalRows: 23, From: 1, To: 10}, info)

	c.SetPage(99)
	page, info = c.PageRows()
	assert.Len(t, page, 3)
	assert.Equal(t, 3, info.Page)
	assert.Equal(t, 21, info.From)
	assert.Equal(t, 23, info.To)

	c.SetPage(-1)
	assert.Equal(t, 1, c.Page())
}

func TestController_EmptyCollectionHasOnePage(t *testing.T) {
	c := newController(nil, true)
	c.Mount(context.Background())

	page, info := c.PageRows()
	assert.Empty(t, page)
	assert.Equal(t, 1, info.TotalPages)
	assert.Equal(t, 0, info.From)
}

func TestController_MountFailureLeavesEmpty(t *testing.T) {
	c := New(Options[row]{
		Name: "broken",
		Fetch: func(ctx context.Context) ([]row, error) {
			return nil, errors.New("boom")
		},
		Logger: logger.NewDiscardLogger(),
	})

	c.Mount(context.Background())
	assert.Empty(t, c.Items())
	assert.NotNil(t, c.Items())
}

func TestController_StaleResponseIsDiscarded(t *testing.T) {
	slow := make(chan struct{})
	var calls int
	var mu sync.Mutex

	c := New(Options[row]{
		Name: "race",
		Fetch: func(ctx context.Context) ([]row, error) {
			mu.Lock()
			calls++
			n := calls
			mu.Unlock()

			if n == 1 {
				<-slow
				return []row{{ID: 1, Name: "old"}}, nil
			}
			return []row{{ID: 2, Name: "new"}}, nil
		},
		Logger: logger.NewDiscardLogger(),
	})

	done := make(chan error)
	go func() { done <- c.Load(context.Background()) }()

	// wait until the first fetch is in flight
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 1
	}, timeout, tick)

	require.NoError(t, c.Load(context.Background()))
	close(slow)
	require.NoError(t, <-done)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "new", items[0].Name)
}

func TestController_PatchAndInvalidate(t *testing.T) {
	c := newController(rows(5), false)
	c.Mount(context.Background())

	ok := c.Patch(func(r row) bool { return r.ID == 2 }, func(r *row) { r.Status = "failed" })
	assert.True(t, ok)

	found, exists := c.Find(func(r row) bool { return r.ID == 2 })
	require.True(t, exists)
	assert.Equal(t, "failed", found.Status)

	assert.False(t, c.Patch(func(r row) bool { return r.ID == 99 }, func(r *row) {}))

	assert.False(t, c.Stale())
	c.Invalidate()
	assert.True(t, c.Stale())
	c.Refresh(context.Background())
	assert.False(t, c.Stale())
}

func TestController_ApplyQuery(t *testing.T) {
	c := newController(rows(100), true)
	c.Mount(context.Background())

	search := "row"
	q := Query{Search: &search, Page: 2, PageSize: 25}.WithFilter("status", "success")
	require.NoError(t, c.Apply(q))

	assert.Equal(t, "row", c.Search())
	assert.Equal(t, "success", c.Filter("status"))
	assert.Equal(t, 2, c.Page())

	_, info := c.PageRows()
	assert.Equal(t, 25, info.PageSize)

	assert.Error(t, c.Apply(Query{PageSize: 7}))
}
