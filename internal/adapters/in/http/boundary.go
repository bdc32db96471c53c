package http

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

const (
	notFoundTitle   = "404 - Page Not Found"
	notFoundDetails = "The requested page could not be found."
	crashTitle      = "Oops!"
	crashDetails    = "An unexpected error occurred."
)

// Recovery is the top-level error boundary. Panics are reported to Sentry
// when a client is configured; the stack is shown only when exposeStack.
func Recovery(logger out.LoggerPort, exposeStack bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			stack := debug.Stack()
			logger.Error("http.panic", out.LogFields{
				"method": ctx.Request.Method,
				"path":   ctx.Request.URL.Path,
				"panic":  fmt.Sprint(rec),
			})

			if hub := sentry.CurrentHub(); hub.Client() != nil {
				hub.Clone().RecoverWithContext(ctx.Request.Context(), rec)
			}

			body := gin.H{
				"title":   crashTitle,
				"details": crashDetails,
			}
			if exposeStack {
				body["details"] = fmt.Sprint(rec)
				body["stack"] = string(stack)
			}
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, body)
		}()
		ctx.Next()
	}
}

func notFound(ctx *gin.Context) {
	ctx.JSON(http.StatusNotFound, gin.H{
		"title":   notFoundTitle,
		"details": notFoundDetails,
	})
}
