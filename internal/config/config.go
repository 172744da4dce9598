package config

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration for the trivia API.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"trivia-api"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`
	ReadHeaderTimeout       time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`

	// Postgres is nil when the in-memory store is selected.
	Postgres *Postgres
	Redis    Redis
	CORS     CORS
	Trivia   Trivia
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host     string `env:"PG_HOST,notEmpty"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER,notEmpty"`
	Password string `env:"PG_PASSWORD,notEmpty"`
	Database string `env:"PG_DATABASE,notEmpty"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxConns int32  `env:"PG_MAX_CONNS" envDefault:"10"`
}

// ConnString renders a postgres:// URL for pgx and database/sql.
func (p Postgres) ConnString() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(p.User, p.Password),
		Host:   net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:   "/" + p.Database,
	}
	q := u.Query()
	q.Set("sslmode", p.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Redis configures the optional change-notification publisher. An empty
// Addr disables it.
type Redis struct {
	Addr     string `env:"REDIS_ADDR" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
	Channel  string `env:"REDIS_EVENTS_CHANNEL" envDefault:"trivia:questions"`
}

// Enabled reports whether a Redis address was configured.
func (r Redis) Enabled() bool {
	return r.Addr != ""
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`
	MaxAge           int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Question store backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Trivia groups question-handling behavior.
type Trivia struct {
	StrictValidation bool   `env:"STRICT_QUESTION_VALIDATION" envDefault:"false"`
	Store            string `env:"TRIVIA_STORE" envDefault:"postgres"`
}

// InMemory reports whether questions live in process memory instead of Postgres.
func (t Trivia) InMemory() bool {
	return t.Store == StoreMemory
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	switch cfg.Trivia.Store {
	case StoreMemory:
		return cfg, nil
	case StorePostgres:
	default:
		return nil, fmt.Errorf("parse config: unknown TRIVIA_STORE %q", cfg.Trivia.Store)
	}

	pg, err := LoadPostgres()
	if err != nil {
		return nil, err
	}
	cfg.Postgres = &pg
	return cfg, nil
}

// LoadPostgres parses only the Postgres section, for tools that need nothing else.
func LoadPostgres() (Postgres, error) {
	var cfg Postgres
	if err := env.ParseWithOptions(&cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return Postgres{}, fmt.Errorf("parse postgres config: %w", err)
	}
	return cfg, nil
}
