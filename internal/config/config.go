package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"tradier/pkg/tradier"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the tradier tools.
type Config struct {
	Tradier Tradier       `yaml:"tradier"`
	Logging Logging       `yaml:"logging"`
	Trading TradingConfig `yaml:"trading"`
}

// Tradier holds credentials and connection settings for the Tradier API.
// Environment variables use the TRADIER_ prefix, e.g. TRADIER_ACCOUNT_ID.
type Tradier struct {
	Token     string        `yaml:"token"`
	Endpoint  string        `yaml:"endpoint"`
	AccountID string        `yaml:"account_id" split_words:"true"`
	Timeout   time.Duration `yaml:"timeout"`
	Debug     bool          `yaml:"debug"`
}

// Logging configures the application logger. Environment variables use the
// LOG_ prefix.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TradingConfig defines pre-trade risk limits. Zero disables a limit.
// Environment variables use the TRADING_ prefix, e.g. TRADING_MAX_POSITION_PCT.
type TradingConfig struct {
	MaxPositionPct  float64 `yaml:"max_position_pct" split_words:"true"`
	MaxDailyLossPct float64 `yaml:"max_daily_loss_pct" split_words:"true"`
}

// Defaults applied before the file is read.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the YAML configuration file at the given path, parses it into a
// Config struct on top of the defaults, and then applies environment variable
// overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Tradier: Tradier{
			Endpoint: tradier.DefaultEndpoint,
			Timeout:  DefaultTimeout,
		},
		Logging: Logging{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// applyEnvOverrides overrides fields whose environment variable is set
// (TRADIER_TOKEN, TRADIER_ENDPOINT, TRADIER_ACCOUNT_ID, TRADIER_TIMEOUT,
// TRADIER_DEBUG, LOG_LEVEL, LOG_FORMAT, TRADING_MAX_POSITION_PCT,
// TRADING_MAX_DAILY_LOSS_PCT). Unset variables leave the file value.
func applyEnvOverrides(cfg *Config) error {
	if err := envconfig.Process("tradier", &cfg.Tradier); err != nil {
		return fmt.Errorf("reading TRADIER_ environment: %w", err)
	}
	if err := envconfig.Process("log", &cfg.Logging); err != nil {
		return fmt.Errorf("reading LOG_ environment: %w", err)
	}
	if err := envconfig.Process("trading", &cfg.Trading); err != nil {
		return fmt.Errorf("reading TRADING_ environment: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

// Validate checks that the configuration can be used to reach the API.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Tradier.Token) == "" {
		return errors.New("tradier.token is required (or set TRADIER_TOKEN)")
	}
	u, err := url.Parse(c.Tradier.Endpoint)
	if err != nil {
		return fmt.Errorf("tradier.endpoint %q: %w", c.Tradier.Endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("tradier.endpoint %q must be an http(s) URL", c.Tradier.Endpoint)
	}
	if p := c.Trading.MaxPositionPct; p < 0 || p > 1 {
		return fmt.Errorf("trading.max_position_pct must be between 0 and 1, got %v", p)
	}
	if p := c.Trading.MaxDailyLossPct; p < 0 || p > 1 {
		return fmt.Errorf("trading.max_daily_loss_pct must be between 0 and 1, got %v", p)
	}
	if c.Tradier.Timeout < 0 {
		return fmt.Errorf("tradier.timeout must not be negative, got %s", c.Tradier.Timeout)
	}
	return nil
}

// ClientConfig returns the SDK configuration for these settings.
func (t Tradier) ClientConfig() tradier.Config {
	return tradier.Config{Token: t.Token, Endpoint: t.Endpoint}
}
