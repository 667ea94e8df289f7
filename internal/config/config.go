// Package config loads bizhealth configuration from file and environment and
// initialises the global logger.
package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/bizhealth/internal/model"
)

// EnvPrefix is the prefix for environment overrides, e.g. BIZHEALTH_STORE_DRIVER.
const EnvPrefix = "BIZHEALTH"

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig              `yaml:"store" mapstructure:"store"`
	Log        LogConfig                `yaml:"log" mapstructure:"log"`
	Server     ServerConfig             `yaml:"server" mapstructure:"server"`
	History    HistoryConfig            `yaml:"history" mapstructure:"history"`
	Batch      BatchConfig              `yaml:"batch" mapstructure:"batch"`
	Monitoring MonitoringConfig         `yaml:"monitoring" mapstructure:"monitoring"`
	Benchmarks model.BenchmarkOverrides `yaml:"benchmarks" mapstructure:"benchmarks"`
	Report     ReportConfig             `yaml:"report" mapstructure:"report"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateLimitBurst int      `yaml:"rate_limit_burst" mapstructure:"rate_limit_burst"`
	CORSOrigins    []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// HistoryConfig configures analysis history retention.
type HistoryConfig struct {
	Limit int `yaml:"limit" mapstructure:"limit"`
}

// BatchConfig configures the batch command.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// MonitoringConfig configures history health alerts.
type MonitoringConfig struct {
	CheckIntervalSecs      int     `yaml:"check_interval_secs" mapstructure:"check_interval_secs"`
	LookbackWindowHours    int     `yaml:"lookback_window_hours" mapstructure:"lookback_window_hours"`
	CriticalShareThreshold float64 `yaml:"critical_share_threshold" mapstructure:"critical_share_threshold"`
	MinAvgPercentage       float64 `yaml:"min_avg_percentage" mapstructure:"min_avg_percentage"`
	MinSample              int     `yaml:"min_sample" mapstructure:"min_sample"`
	WebhookURL             string  `yaml:"webhook_url" mapstructure:"webhook_url"`
}

// ReportConfig sets display defaults. Empty values fall back to the stored
// user settings.
type ReportConfig struct {
	Currency string `yaml:"currency" mapstructure:"currency"`
	Language string `yaml:"language" mapstructure:"language"`
}

// Load reads configuration from ./config.yaml (optional) and environment.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile reads configuration from path, or from ./config.yaml when path is
// empty. A missing default file is not an error; a missing explicit file is.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	// Config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Environment
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "bizhealth.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit_rps", 10.0)
	v.SetDefault("server.rate_limit_burst", 20)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("history.limit", 50)
	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("monitoring.check_interval_secs", 300)
	v.SetDefault("monitoring.lookback_window_hours", 24)
	v.SetDefault("monitoring.critical_share_threshold", 0.5)
	v.SetDefault("monitoring.min_avg_percentage", 50.0)
	v.SetDefault("monitoring.min_sample", 5)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the configuration for the given mode ("cli" or "serve").
// All problems are reported together.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch c.Store.Driver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Sprintf("store.driver must be sqlite or postgres, got %q", c.Store.Driver))
	}
	if c.Store.DatabaseURL == "" {
		errs = append(errs, "store.database_url is required")
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Sprintf("log.level %q is invalid", c.Log.Level))
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		errs = append(errs, "log.format must be json or console")
	}

	if c.History.Limit < 1 || c.History.Limit > 1000 {
		errs = append(errs, "history.limit must be between 1 and 1000")
	}
	if c.Batch.Concurrency < 1 || c.Batch.Concurrency > 64 {
		errs = append(errs, "batch.concurrency must be between 1 and 64")
	}

	if c.Report.Currency != "" {
		switch model.Currency(c.Report.Currency) {
		case model.CurrencyUSD, model.CurrencyEUR, model.CurrencyGBP, model.CurrencyCHF:
		default:
			errs = append(errs, "report.currency must be one of USD, EUR, GBP, CHF")
		}
	}
	if c.Report.Language != "" && c.Report.Language != string(model.LanguageDE) && c.Report.Language != string(model.LanguageEN) {
		errs = append(errs, "report.language must be de or en")
	}

	switch mode {
	case "cli":
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, "server.port must be > 0 and <= 65535")
		}
		if c.Server.RateLimitRPS < 0 {
			errs = append(errs, "server.rate_limit_rps must be >= 0")
		}
		if c.Server.RateLimitRPS > 0 && c.Server.RateLimitBurst < 1 {
			errs = append(errs, "server.rate_limit_burst must be >= 1 when rate limiting is on")
		}
		if t := c.Monitoring.CriticalShareThreshold; t < 0 || t > 1 {
			errs = append(errs, "monitoring.critical_share_threshold must be between 0 and 1")
		}
		if p := c.Monitoring.MinAvgPercentage; p < 0 || p > 100 {
			errs = append(errs, "monitoring.min_avg_percentage must be between 0 and 100")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown mode %q", mode))
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
