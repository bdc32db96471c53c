package http

import (
	"strconv"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/services/listview"
	"github.com/estaraht/admin-dashboard/internal/core/services/screens"
	"github.com/gin-gonic/gin"
)

var queryFilters = []string{screens.FilterStatus, screens.FilterCurrency}

// parseQuery reads search, status, currency, page and size. Parameters
// that are absent leave the screen's current state alone.
func parseQuery(ctx *gin.Context) (listview.Query, error) {
	var q listview.Query

	if search, ok := ctx.GetQuery("search"); ok {
		q.Search = &search
	}
	for _, name := range queryFilters {
		if value, ok := ctx.GetQuery(name); ok {
			q = q.WithFilter(name, value)
		}
	}

	var err error
	if q.Page, err = intParam(ctx, "page"); err != nil {
		return q, err
	}
	if q.PageSize, err = intParam(ctx, "size"); err != nil {
		return q, err
	}
	return q, nil
}

func intParam(ctx *gin.Context, name string) (int, error) {
	raw, ok := ctx.GetQuery(name)
	if !ok || raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, domain.NewValidationError("Invalid " + name + ": " + raw)
	}
	return value, nil
}
