package configuration

import (
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/VishnuMohan31/Worky-sub000/pkg/logging"
)

const Production = "production"

var singleton = sync.OnceValue(func() *Configuration {
	c, err := Load([]string{".env", ".env.local"})
	if err != nil {
		panic(err)
	}
	return c
})

// Use returns the process-wide configuration, loading it on first use.
func Use() *Configuration {
	return singleton()
}

type DatabaseOptions struct {
	Name     string `env:"DB_NAME" envDefault:"worky"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	SSLMode  string `env:"DB_SSL_MODE" envDefault:"disable"`
}

// DSN renders the pgx connection string.
func (d DatabaseOptions) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// UpstreamAPIOptions configures the Worky REST API datasource used when
// TRACKER_DATASOURCE=api.
type UpstreamAPIOptions struct {
	BaseURL        string `env:"WORKY_API_URL" envDefault:"http://localhost:8081"`
	TimeoutSeconds int    `env:"WORKY_API_TIMEOUT" envDefault:"15"`
}

type RateLimitOptions struct {
	Enabled bool   `env:"RATE_LIMIT_ENABLED" envDefault:"false"`
	Rate    string `env:"RATE_LIMIT_RATE" envDefault:"100-M"`
}

type Configuration struct {
	Database    DatabaseOptions
	UpstreamAPI UpstreamAPIOptions
	RateLimit   RateLimitOptions

	// DataSource selects the repository backing the engine: "postgres" or
	// "api".
	DataSource string `env:"TRACKER_DATASOURCE" envDefault:"postgres"`

	Address     string `env:"SERVER_ADDRESS" envDefault:":3200"`
	Environment string `env:"GO_APP_ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	logger *logrus.Logger
}

// Load reads the given dotenv files (missing ones are skipped) and then the
// process environment.
func Load(envFiles []string) (*Configuration, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return nil, fmt.Errorf("configuration: load env files: %w", err)
		}
	}

	c := &Configuration{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("configuration: parse environment: %w", err)
	}
	c.logger = logging.NewLogger(c.LogLevel, c.Environment == Production)
	return c, nil
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}
