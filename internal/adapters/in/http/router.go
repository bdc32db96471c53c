package http

import (
	"net/http"

	"github.com/estaraht/admin-dashboard/internal/config"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Auth      *AuthController
	Dashboard *DashboardController
	Screens   *ScreensController
}

// NewRouter wires the error boundary, the session cookie, public routes
// and the guarded API.
func NewRouter(cfg *config.Config, cookie *SessionCookie, controllers Controllers, logger out.LoggerPort) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), Recovery(logger, !cfg.IsProduction()))
	router.NoRoute(notFound)

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": cfg.App.Version,
		})
	})

	public := router.Group("/", cookie.Middleware())
	protected := router.Group("/", cookie.Middleware(), controllers.Auth.RequireSession())

	controllers.Auth.RegisterRoutes(public, protected)

	api := protected.Group("/api")
	controllers.Dashboard.RegisterRoutes(api)
	controllers.Screens.RegisterRoutes(api)

	return router
}
