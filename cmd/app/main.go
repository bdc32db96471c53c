package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/estaraht/admin-dashboard/internal/adapters/in/http"
	"github.com/estaraht/admin-dashboard/internal/adapters/in/rabbitmq"
	"github.com/estaraht/admin-dashboard/internal/adapters/out/backend"
	"github.com/estaraht/admin-dashboard/internal/adapters/out/logger"
	"github.com/estaraht/admin-dashboard/internal/adapters/out/session"
	"github.com/estaraht/admin-dashboard/internal/config"
	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"github.com/estaraht/admin-dashboard/internal/core/services/dashboard"
	"github.com/estaraht/admin-dashboard/internal/core/services/screens"
	sessionservice "github.com/estaraht/admin-dashboard/internal/core/services/session"
	"github.com/estaraht/admin-dashboard/internal/core/services/workspace"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is fine; the environment may already be set
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone, out.ParseLogLevel(cfg.App.LogLevel))
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := mainLogger.WithModule("Main")

	logger.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"backendUrl":      cfg.Backend.URL,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
		"sentryEnabled":   cfg.Sentry.DSN != "",
	})

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: string(cfg.App.Env),
			Release:     cfg.App.Version,
		}); err != nil {
			logger.Error("app.sentry.init_failed", out.LogFields{
				"error": err.Error(),
			})
		}
		defer sentry.Flush(2 * time.Second)
	}

	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	backendAdapter := backend.NewBackendAdapter(cfg, logger.WithModule("BackendAdapter"))

	sessionStore, err := session.NewLRUSessionStore(cfg, logger.WithModule("SessionStore"))
	if err != nil {
		logger.Error("app.session_store.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	registry, err := workspace.NewRegistry(cfg, logger)
	if err != nil {
		logger.Error("app.workspace.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	sessionService := sessionservice.NewService(backendAdapter, sessionStore, domain.ParseLocale(cfg.App.DefaultLocale), logger)
	dashboardService := dashboard.NewService(backendAdapter, logger)
	screenFactory := screens.NewFactory(backendAdapter, logger)

	httpLogger := logger.WithModule("HttpController")
	router := httpadapter.NewRouter(cfg, httpadapter.NewSessionCookie(cfg, httpLogger), httpadapter.Controllers{
		Auth:      httpadapter.NewAuthController(sessionService, registry, httpLogger),
		Dashboard: httpadapter.NewDashboardController(dashboardService),
		Screens:   httpadapter.NewScreensController(screenFactory, registry, httpLogger),
	}, httpLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.RabbitMQ.Enabled {
		listener, err := rabbitmq.NewChangeListener(registry, cfg, logger.WithModule("RabbitMQListener"))
		if err != nil {
			logger.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		if err := listener.Start(ctx); err != nil {
			logger.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				logger.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	server := &http.Server{
		Addr:    cfg.HTTP.Host + ":" + cfg.HTTP.Port,
		Handler: router,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	logger.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("app.http.shutdown_failed", out.LogFields{
			"error": err.Error(),
		})
	}

	logger.Info("app.shutdown.completed", nil)
}
