package app

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"30s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	XanoBaseURL string        `envconfig:"XANO_BASE_URL" required:"true"`
	XanoTimeout time.Duration `envconfig:"XANO_TIMEOUT" default:"20s"`

	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	SessionSecret string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"168h"`

	CSRFSecret string `envconfig:"CSRF_SECRET" required:"true"`

	GotenbergURL string `envconfig:"GOTENBERG_URL" default:"http://127.0.0.1:3000"`

	OverviewCacheTTL      time.Duration `envconfig:"OVERVIEW_CACHE_TTL" default:"2m"`
	BannerRefreshInterval time.Duration `envconfig:"BANNER_REFRESH_INTERVAL" default:"60s"`
	OverviewWarmInterval  time.Duration `envconfig:"OVERVIEW_WARM_INTERVAL" default:"5m"`
	ServiceToken          string        `envconfig:"XANO_SERVICE_TOKEN"`
	WorkerMetricsAddr     string        `envconfig:"WORKER_METRICS_ADDR" default:":9091"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.SessionSecret) == "" {
		return errors.New("session secret must be provided")
	}
	if strings.TrimSpace(c.CSRFSecret) == "" {
		return errors.New("csrf secret must be provided")
	}
	u, err := url.Parse(c.XanoBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("XANO_BASE_URL must be an absolute URL")
	}
	if c.BannerRefreshInterval < time.Second {
		return errors.New("BANNER_REFRESH_INTERVAL must be at least 1s")
	}
	return nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
