package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "eurodist/internal/platform/errors"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"

	DefaultDBPath         = "data/european_cities.db"
	DefaultConnectionName = "european_cities"
	DefaultCity           = "Rome"
	DefaultLogLevel       = "info"
)

// Environment variable names read by Load.
const (
	EnvDriver      = "EURODIST_DRIVER"
	EnvDBPath      = "EURODIST_DB"
	EnvConnection  = "EURODIST_CONNECTION"
	EnvDefaultCity = "EURODIST_DEFAULT_CITY"
	EnvLogLevel    = "EURODIST_LOG_LEVEL"
	EnvLogFile     = "EURODIST_LOG_FILE"
)

type Config struct {
	Driver         string `yaml:"driver"`
	DBPath         string `yaml:"db"`
	ConnectionName string `yaml:"connection"`
	DefaultCity    string `yaml:"default_city"`
	LogLevel       string `yaml:"log_level"`
	LogFile        string `yaml:"log_file"`
}

// Overrides carries values set explicitly on the command line. Empty fields
// leave the loaded value untouched.
type Overrides struct {
	Driver         string
	DBPath         string
	ConnectionName string
	DefaultCity    string
	LogLevel       string
	LogFile        string
}

func Default() Config {
	return Config{
		Driver:         DriverSQLite,
		DBPath:         DefaultDBPath,
		ConnectionName: DefaultConnectionName,
		DefaultCity:    DefaultCity,
		LogLevel:       DefaultLogLevel,
	}
}

// New builds a sqlite config for dbPath with defaults for everything else.
func New(dbPath string) (Config, error) {
	cfg := Default()
	cfg.DBPath = dbPath
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load resolves configuration from defaults, the optional YAML file at path,
// the environment (after loading .env if present) and finally overrides.
func Load(path string, overrides Overrides) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	_ = godotenv.Load()
	cfg.mergeEnv(os.Getenv)
	cfg.merge(overrides)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Driver {
	case DriverSQLite, DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("%w: %q", apperrors.ErrUnsupportedDriver, c.Driver)
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("%w: database path is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(c.ConnectionName) == "" {
		return fmt.Errorf("%w: connection name is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(c.DefaultCity) == "" {
		return fmt.Errorf("%w: default city is required", apperrors.ErrInvalidInput)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error", "disabled":
	default:
		return fmt.Errorf("%w: unknown log level %q", apperrors.ErrInvalidInput, c.LogLevel)
	}
	return nil
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fromFile Config
	decoder := yaml.NewDecoder(bytes.NewReader(b))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fromFile); err != nil {
		return fmt.Errorf("decode config file: %w", err)
	}
	c.merge(Overrides(fromFile))
	return nil
}

func (c *Config) mergeEnv(getenv func(string) string) {
	c.merge(Overrides{
		Driver:         getenv(EnvDriver),
		DBPath:         getenv(EnvDBPath),
		ConnectionName: getenv(EnvConnection),
		DefaultCity:    getenv(EnvDefaultCity),
		LogLevel:       getenv(EnvLogLevel),
		LogFile:        getenv(EnvLogFile),
	})
}

func (c *Config) merge(o Overrides) {
	if v := strings.TrimSpace(o.Driver); v != "" {
		c.Driver = strings.ToLower(v)
	}
	if v := strings.TrimSpace(o.DBPath); v != "" {
		c.DBPath = v
	}
	if v := strings.TrimSpace(o.ConnectionName); v != "" {
		c.ConnectionName = v
	}
	if v := strings.TrimSpace(o.DefaultCity); v != "" {
		c.DefaultCity = v
	}
	if v := strings.TrimSpace(o.LogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(o.LogFile); v != "" {
		c.LogFile = v
	}
}
