package config

import (
	"errors"
	"strings"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

// DefaultBackendURL is used when API_URL is unset or holds a placeholder.
const DefaultBackendURL = "https://backend.estaraht.com/api"

type Config struct {
	App struct {
		Version       string      `env:"APP_VERSION" envDefault:"local"`
		Env           Environment `env:"APP_ENV" envDefault:"local"`
		Timezone      string      `env:"APP_TIMEZONE" envDefault:"Africa/Nouakchott"`
		DefaultLocale string      `env:"APP_DEFAULT_LOCALE" envDefault:"en"`
		LogLevel      string      `env:"APP_LOG_LEVEL" envDefault:"DEBUG"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Backend struct {
		URL string `env:"API_URL"`
	}

	Session struct {
		Secret       string `env:"SESSION_SECRET"`
		CookieName   string `env:"SESSION_COOKIE_NAME" envDefault:"estaraht_session"`
		Capacity     int    `env:"SESSION_CAPACITY" envDefault:"10000"`
		SecureCookie bool   `env:"SESSION_SECURE_COOKIE"`
	}

	Workspace struct {
		Capacity int `env:"WORKSPACE_CAPACITY" envDefault:"1000"`
	}

	RabbitMQ struct {
		Enabled  bool   `env:"RABBITMQ_ENABLED"`
		URL      string `env:"RABBITMQ_URL"`
		Exchange string `env:"RABBITMQ_EXCHANGE" envDefault:"backend.events"`
		Queue    string `env:"RABBITMQ_QUEUE" envDefault:"admin-dashboard.refresh"`
		Bind     string `env:"RABBITMQ_BIND" envDefault:"*.admin-dashboard.#"`
	}

	Sentry struct {
		DSN string `env:"SENTRY_DSN"`
	}
}

const localSessionSecret = "local-session-secret"

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))
	cfg.Backend.URL = ResolveBackendURL(cfg.Backend.URL)

	if cfg.Session.Secret == "" {
		if cfg.IsNotLocal() {
			return nil, errors.New("SESSION_SECRET is required outside local environment")
		}
		cfg.Session.Secret = localSessionSecret
	}

	// RabbitMQ without an address cannot be started
	if cfg.RabbitMQ.URL == "" {
		cfg.RabbitMQ.Enabled = false
	}

	return cfg, nil
}

// ResolveBackendURL picks the environment override when it carries a real value.
func ResolveBackendURL(raw string) string {
	url := strings.TrimSpace(raw)
	if url == "" || url == "undefined" {
		url = DefaultBackendURL
	}
	return strings.TrimRight(url, "/")
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}

func (c *Config) IsProduction() bool {
	return c.App.Env == EnvProduction
}
