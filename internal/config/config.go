package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// serviço público de empresas usado por padrão
const DefaultAPIURL = "https://crbd-backend.vercel.app/api/companies"

type Config struct {
	Addr              string        `envconfig:"ADDR" default:":8080"`
	APIURL            string        `envconfig:"API_URL" default:"https://crbd-backend.vercel.app/api/companies"`
	APITimeout        time.Duration `envconfig:"API_TIMEOUT" default:"10s"`
	LogLevel          string        `envconfig:"LOG_LEVEL" default:"info"`
	ToastDelay        time.Duration `envconfig:"TOAST_DELAY" default:"3s"`
	SessionTTL        time.Duration `envconfig:"SESSION_TTL" default:"30m"`
	ReadHeaderTimeout time.Duration `envconfig:"READ_HEADER_TIMEOUT" default:"5s"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	SubmitRateLimit   int           `envconfig:"SUBMIT_RATE_LIMIT" default:"10"` // POST /companies por minuto por IP

	// Rabbit é opcional: URL vazia desliga o fan-out de "publicado".
	RabbitURI      string `envconfig:"RABBITMQ_URL"`
	RabbitQueue    string `envconfig:"RABBITMQ_QUEUE" default:"board_posted"`
	RabbitPrefetch int    `envconfig:"RABBITMQ_PREFETCH" default:"50"`
}

// Load lê as variáveis de ambiente (.env já exportado pelo compose).
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_URL must be an absolute url, got %q", c.APIURL)
	}
	if c.ToastDelay <= 0 {
		return errors.New("TOAST_DELAY must be > 0")
	}
	if c.SubmitRateLimit <= 0 {
		return errors.New("SUBMIT_RATE_LIMIT must be > 0")
	}
	return nil
}

func (c *Config) RabbitEnabled() bool {
	return strings.TrimSpace(c.RabbitURI) != ""
}

func (c *Config) Level() slog.Level {
	return ParseLevel(c.LogLevel)
}
