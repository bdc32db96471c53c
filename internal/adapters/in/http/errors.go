package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"github.com/gin-gonic/gin"
)

// statusOf maps an error onto the response status. Backend 4xx pass
// through; any other backend failure is a bad gateway.
func statusOf(err error) int {
	var e *domain.Error
	switch {
	case errors.Is(err, domain.ErrNotConfirmed):
		return http.StatusPreconditionRequired
	case errors.Is(err, domain.ErrNotDeletable):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout
	case errors.As(err, &e):
		switch e.Kind {
		case domain.ErrorKindValidation:
			return http.StatusBadRequest
		case domain.ErrorKindNetwork:
			return http.StatusServiceUnavailable
		case domain.ErrorKindHTTP:
			if e.Status >= http.StatusBadRequest && e.Status < http.StatusInternalServerError {
				return e.Status
			}
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// fail renders err as {"alert": message}, or {"confirm": prompt} when a
// delete was not confirmed.
func fail(ctx *gin.Context, logger out.LoggerPort, err error, confirm *requestConfirmer) {
	status := statusOf(err)

	fields := out.LogFields{
		"method": ctx.Request.Method,
		"path":   ctx.Request.URL.Path,
		"status": status,
		"error":  err.Error(),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("http.request.failed", fields)
	} else {
		logger.Debug("http.request.rejected", fields)
	}

	if status == http.StatusPreconditionRequired {
		ctx.AbortWithStatusJSON(status, gin.H{"confirm": confirm.Prompt()})
		return
	}
	ctx.AbortWithStatusJSON(status, gin.H{"alert": err.Error()})
}

func badRequest(ctx *gin.Context, logger out.LoggerPort, err error) {
	fail(ctx, logger, domain.NewValidationError(err.Error()), nil)
}
