package config

import (
	"fmt"
	"os"

	"github.com/Nydauron/champstandings/standings"
	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultOutputFormat = "yaml"
	DefaultServerAddr   = ":8080"
	DefaultStoreDriver  = "sqlite"
	DefaultStoreDSN     = "file:champstandings.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
)

// Config is the full configuration file. Command line flags override it.
type Config struct {
	// Title is the season title printed at the top of the report.
	Title string `yaml:"title"`

	// DropWeeks is the number of worst-scoring weeks excluded from each total.
	DropWeeks int `yaml:"drop_weeks"`

	// Points lists the points for 1st, 2nd, ... place.
	Points []int `yaml:"points"`

	// OutputFormat is one of: yaml | json | text.
	OutputFormat string `yaml:"output_format"`

	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
}

// ServerConfig configures the read-only standings API.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// StoreConfig configures the report archive.
type StoreConfig struct {
	// Driver is one of: sqlite | postgres.
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Scoring returns the engine configuration.
func (c *Config) Scoring() standings.Config {
	return standings.Config{
		Points:    standings.NewPointsTable(c.Points...),
		DropWeeks: c.DropWeeks,
	}
}

// Load reads and parses the YAML config file at path. An empty path returns
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Default returns a Config pre-populated with default values.
func Default() *Config {
	return &Config{
		DropWeeks:    standings.DefaultDropWeeks,
		Points:       standings.DefaultPointsTable().Values(),
		OutputFormat: DefaultOutputFormat,
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
		Store: StoreConfig{
			Driver: DefaultStoreDriver,
			DSN:    DefaultStoreDSN,
		},
	}
}

// Validate checks the scoring values and enums.
func (c *Config) Validate() error {
	if err := c.Scoring().Validate(); err != nil {
		return err
	}
	switch c.OutputFormat {
	case "yaml", "json", "text":
	default:
		return fmt.Errorf("unknown output_format %q", c.OutputFormat)
	}
	switch c.Store.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("store: unknown driver %q", c.Store.Driver)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}
