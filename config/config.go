package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultHTTPPort    = "8080"
	defaultGRPCPort    = "9090"
	defaultMetricsPort = "9000"

	defaultPGHost    = "localhost"
	defaultPGPort    = "5432"
	defaultPGDB      = "library"
	defaultPGUser    = "postgres"
	defaultPGMaxConn = 10

	defaultAccessTTLMS  = 5 * 60 * 1000
	defaultRefreshTTLMS = 24 * 60 * 60 * 1000
	defaultBcryptCost   = 10

	defaultOutboxWorkers      = 2
	defaultOutboxBatchSize    = 100
	defaultOutboxPollMS       = 1000
	defaultOutboxStaleAfterMS = 10000
	defaultOutboxMaxAttempts  = 5
)

type Config struct {
	HTTP struct {
		Port string
	}

	GRPC struct {
		Port string
	}

	PG struct {
		// URL is the pgxpool connection string, DSN the plain one for database/sql.
		URL      string
		DSN      string
		Host     string
		Port     string
		DB       string
		User     string
		Password string
		MaxConn  int
	}

	Outbox struct {
		Enabled      bool
		Workers      int
		BatchSize    int
		PollInterval time.Duration
		StaleAfter   time.Duration
		MaxAttempts  int
		// Webhook URLs per event kind; an empty URL drops that kind.
		AuthorWebhook string
		BookWebhook   string
		BorrowWebhook string
	}

	Auth struct {
		AccessTokenTTL  time.Duration
		RefreshTokenTTL time.Duration
		BcryptCost      int
	}

	Log struct {
		File       string
		Controller bool
		Transactor bool
		UseCase    bool
		Repository bool
		Outbox     bool
	}

	Observability struct {
		MetricsPort string
		JaegerURL   string
	}
}

// NewConfig reads the configuration from environment variables.
func NewConfig() (*Config, error) {
	return newConfig(viper.New())
}

func newConfig(v *viper.Viper) (*Config, error) {
	env := &envReader{v: v}
	cfg := &Config{}

	cfg.HTTP.Port = env.String("HTTP_PORT", defaultHTTPPort)
	cfg.GRPC.Port = env.String("GRPC_PORT", defaultGRPCPort)
	cfg.Observability.MetricsPort = env.String("METRICS_PORT", defaultMetricsPort)
	cfg.Observability.JaegerURL = env.String("JAEGER_URL", "")

	cfg.PG.Host = env.String("POSTGRES_HOST", defaultPGHost)
	cfg.PG.Port = env.String("POSTGRES_PORT", defaultPGPort)
	cfg.PG.DB = env.String("POSTGRES_DB", defaultPGDB)
	cfg.PG.User = env.String("POSTGRES_USER", defaultPGUser)
	cfg.PG.Password = env.String("POSTGRES_PASSWORD", "")
	cfg.PG.MaxConn = env.Int("POSTGRES_MAX_CONN", defaultPGMaxConn)

	cfg.Outbox.Enabled = env.Bool("OUTBOX_ENABLED", false)
	cfg.Outbox.Workers = env.Int("OUTBOX_WORKERS", defaultOutboxWorkers)
	cfg.Outbox.BatchSize = env.Int("OUTBOX_BATCH_SIZE", defaultOutboxBatchSize)
	cfg.Outbox.PollInterval = env.Millis("OUTBOX_POLL_INTERVAL_MS", defaultOutboxPollMS)
	cfg.Outbox.StaleAfter = env.Millis("OUTBOX_STALE_AFTER_MS", defaultOutboxStaleAfterMS)
	cfg.Outbox.MaxAttempts = env.Int("OUTBOX_ATTEMPTS_RETRY", defaultOutboxMaxAttempts)
	cfg.Outbox.AuthorWebhook = env.String("OUTBOX_AUTHOR_WEBHOOK_URL", "")
	cfg.Outbox.BookWebhook = env.String("OUTBOX_BOOK_WEBHOOK_URL", "")
	cfg.Outbox.BorrowWebhook = env.String("OUTBOX_BORROW_WEBHOOK_URL", "")

	cfg.Auth.AccessTokenTTL = env.Millis("ACCESS_TOKEN_TTL_MS", defaultAccessTTLMS)
	cfg.Auth.RefreshTokenTTL = env.Millis("REFRESH_TOKEN_TTL_MS", defaultRefreshTTLMS)
	cfg.Auth.BcryptCost = env.Int("BCRYPT_COST", defaultBcryptCost)

	cfg.Log.File = env.String("LOG_FILE", "")
	cfg.Log.Controller = env.Bool("LOG_CONTROLLER_ENABLED", true)
	cfg.Log.Transactor = env.Bool("LOG_TRANSACTOR_ENABLED", true)
	cfg.Log.UseCase = env.Bool("LOG_USECASE_ENABLED", true)
	cfg.Log.Repository = env.Bool("LOG_DB_REPO_ENABLED", true)
	cfg.Log.Outbox = env.Bool("LOG_OUTBOX_WORKER_ENABLED", true)

	if env.err != nil {
		return nil, env.err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.PG.User, cfg.PG.Password),
		Host:     net.JoinHostPort(cfg.PG.Host, cfg.PG.Port),
		Path:     "/" + cfg.PG.DB,
		RawQuery: "sslmode=disable",
	}
	cfg.PG.DSN = dsn.String()
	cfg.PG.URL = fmt.Sprintf("%s&pool_max_conns=%d", cfg.PG.DSN, cfg.PG.MaxConn)

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.AccessTokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive: access %s, refresh %s",
			c.Auth.AccessTokenTTL, c.Auth.RefreshTokenTTL)
	}
	if c.PG.MaxConn <= 0 {
		return fmt.Errorf("POSTGRES_MAX_CONN must be positive, got %d", c.PG.MaxConn)
	}
	if !c.Outbox.Enabled {
		return nil
	}
	if c.Outbox.Workers <= 0 || c.Outbox.BatchSize <= 0 || c.Outbox.MaxAttempts <= 0 {
		return fmt.Errorf("outbox workers, batch size and attempts must be positive")
	}
	if c.Outbox.PollInterval <= 0 || c.Outbox.StaleAfter <= 0 {
		return fmt.Errorf("outbox poll interval and stale timeout must be positive")
	}
	return nil
}

// envReader binds each variable to viper under its lower-cased name and keeps
// the first binding error.
type envReader struct {
	v   *viper.Viper
	err error
}

func (e *envReader) bind(envVar string, defaultValue any) string {
	key := strings.ToLower(envVar)
	if err := e.v.BindEnv(key, envVar); err != nil && e.err == nil {
		e.err = fmt.Errorf("bind %s: %w", envVar, err)
	}
	e.v.SetDefault(key, defaultValue)
	return key
}

func (e *envReader) String(envVar, defaultValue string) string {
	return e.v.GetString(e.bind(envVar, defaultValue))
}

func (e *envReader) Int(envVar string, defaultValue int) int {
	return e.v.GetInt(e.bind(envVar, defaultValue))
}

func (e *envReader) Bool(envVar string, defaultValue bool) bool {
	return e.v.GetBool(e.bind(envVar, defaultValue))
}

// Millis reads an integer number of milliseconds.
func (e *envReader) Millis(envVar string, defaultValue int) time.Duration {
	return time.Duration(e.Int(envVar, defaultValue)) * time.Millisecond
}
