package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Postgres  PostgresConfig  `koanf:"postgres"`
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Operator  OperatorConfig  `koanf:"operator"`
	Scheduler SchedulerConfig `koanf:"scheduler"`
	Ledger    LedgerConfig    `koanf:"ledger"`
	Storage   StorageConfig   `koanf:"storage"`
}

type PostgresConfig struct {
	Address  string `koanf:"address"`
	Port     string `koanf:"port"`
	DB       string `koanf:"db"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
}

// URL is the lib/pq connection string.
func (p PostgresConfig) URL() string {
	return "postgres://" + p.Username + ":" + p.Password + "@" +
		p.Address + ":" + p.Port + "/" + p.DB + "?sslmode=disable"
}

type ServerConfig struct {
	Port string `koanf:"port"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

type OperatorConfig struct {
	Workers   int `koanf:"workers"`
	QueueSize int `koanf:"queue_size"`
}

type SchedulerConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval"`
	Timezone string        `koanf:"timezone"`
}

// Location resolves Timezone; Validate guarantees it loads.
func (s SchedulerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type LedgerConfig struct {
	DayOverflow string `koanf:"day_overflow"`
}

// Policy parses DayOverflow; Validate guarantees it parses.
func (l LedgerConfig) Policy() ledger.DayOverflowPolicy {
	p, err := ledger.ParseDayOverflowPolicy(l.DayOverflow)
	if err != nil {
		return ledger.DayOverflowSkip
	}
	return p
}

type StorageConfig struct {
	Driver string `koanf:"driver"`
}

// In all cases the default behavior should be for the docker compose setup
var defaults = map[string]any{
	"postgres.address":    "localhost",
	"postgres.port":       "5433",
	"postgres.db":         "postgres",
	"postgres.username":   "postgres",
	"postgres.password":   "testpassword",
	"server.port":         "9446",
	"log.level":           "info",
	"operator.workers":    4,
	"operator.queue_size": 1000,
	"scheduler.enabled":   true,
	"scheduler.interval":  "24h",
	"scheduler.timezone":  "UTC",
	"ledger.day_overflow": string(ledger.DayOverflowSkip),
	"storage.driver":      DriverPostgres,
}

var sections = []string{"postgres", "server", "log", "operator", "scheduler", "ledger", "storage"}

// envKey maps POSTGRES_ADDRESS to postgres.address and OPERATOR_QUEUE_SIZE to
// operator.queue_size. Variables outside the known sections are ignored.
func envKey(s string) string {
	s = strings.ToLower(s)
	for _, section := range sections {
		if strings.HasPrefix(s, section+"_") {
			return section + "." + strings.TrimPrefix(s, section+"_")
		}
	}
	return ""
}

// Load reads defaults, then the optional YAML file at path, then the environment.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func ProcessEnvironmentVariables() (*Config, error) {
	return Load("")
}

func (c *Config) Validate() error {
	var errs []error
	if c.Storage.Driver != DriverPostgres && c.Storage.Driver != DriverMemory {
		errs = append(errs, fmt.Errorf("storage.driver: unknown driver %q", c.Storage.Driver))
	}
	if _, err := ledger.ParseDayOverflowPolicy(c.Ledger.DayOverflow); err != nil {
		errs = append(errs, fmt.Errorf("ledger.day_overflow: %w", err))
	}
	if c.Operator.Workers < 1 {
		errs = append(errs, errors.New("operator.workers: must be at least 1"))
	}
	if c.Operator.QueueSize < 1 {
		errs = append(errs, errors.New("operator.queue_size: must be at least 1"))
	}
	if c.Scheduler.Enabled && c.Scheduler.Interval <= 0 {
		errs = append(errs, errors.New("scheduler.interval: must be positive"))
	}
	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("scheduler.timezone: %w", err))
	}
	return errors.Join(errs...)
}
