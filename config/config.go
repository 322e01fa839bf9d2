// Package config loads the service configuration from defaults, an optional
// config file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/seo-optimizer/contentquality/analyzer"
)

// AppName names the data directory and the config file
const AppName = "contentquality"

// EnvPrefix prefixes every environment override, e.g. CONTENTQUALITY_PORT
const EnvPrefix = "CONTENTQUALITY"

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the service configuration
type Config struct {
	Port       string              `mapstructure:"port"`
	GinMode    string              `mapstructure:"ginMode"`
	DevMode    bool                `mapstructure:"devMode"`
	LogLevel   string              `mapstructure:"logLevel"`
	DataDir    string              `mapstructure:"dataDir"`
	Format     string              `mapstructure:"format"`
	Stats      StatsConfig         `mapstructure:"stats"`
	RateLimit  RateLimitConfig     `mapstructure:"rateLimit"`
	Cache      CacheConfig         `mapstructure:"cache"`
	Thresholds analyzer.Thresholds `mapstructure:"thresholds"`
}

// RateLimitConfig configures the per-client token bucket
type RateLimitConfig struct {
	Rate  float64 `mapstructure:"rate"`
	Burst float64 `mapstructure:"burst"`
}

// CacheConfig configures the report cache
type CacheConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	MaxEntries      int           `mapstructure:"maxEntries"`
	CleanupInterval time.Duration `mapstructure:"cleanupInterval"`
}

// StatsConfig configures the monthly usage counters
type StatsConfig struct {
	RetainMonths int `mapstructure:"retainMonths"`
}

// Formats lists the report formats the audit command can render
var Formats = []string{"console", "markdown", "json", "yaml"}

var configFiles = []string{".contentquality.yaml", ".contentquality.yml", ".contentquality.json"}

// DefaultDataDir is where statistics are stored unless configured otherwise
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// LoadEnv reads .env.development, falling back to .env. Missing files are fine.
func LoadEnv() {
	if err := godotenv.Load(".env.development"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Debug().Msg("No .env file found, using environment variables")
		}
	}
}

// Load builds the configuration. An explicit path must exist; without one the
// first config file found in the working directory is used, if any.
func Load(path string) (*Config, error) {
	viper.SetDefault("port", "8082")
	viper.SetDefault("ginMode", gin.ReleaseMode)
	viper.SetDefault("devMode", false)
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("dataDir", DefaultDataDir())
	viper.SetDefault("format", "console")
	viper.SetDefault("rateLimit.rate", 2)
	viper.SetDefault("rateLimit.burst", 5)
	viper.SetDefault("cache.ttl", 30*time.Minute)
	viper.SetDefault("cache.maxEntries", 1000)
	viper.SetDefault("cache.cleanupInterval", 5*time.Minute)
	viper.SetDefault("stats.retainMonths", 12)

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	} else {
		for _, candidate := range configFiles {
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			viper.SetConfigFile(candidate)
			if err := viper.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file %s: %w", candidate, err)
			}
			break
		}
	}

	// Environment variables
	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()
	_ = viper.BindEnv("port", EnvPrefix+"_PORT", "PORT")
	_ = viper.BindEnv("ginMode", EnvPrefix+"_GIN_MODE", "GIN_MODE")
	_ = viper.BindEnv("devMode", EnvPrefix+"_DEV_MODE", "DEV_MODE")
	_ = viper.BindEnv("logLevel", EnvPrefix+"_LOG_LEVEL")
	_ = viper.BindEnv("dataDir", EnvPrefix+"_DATA_DIR")

	config := Config{Thresholds: analyzer.DefaultThresholds()}
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the configuration for values the service cannot run with
func Validate(config *Config) error {
	port, err := strconv.Atoi(config.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: port must be a number between 1 and 65535, got %q", ErrInvalidConfig, config.Port)
	}

	switch config.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("%w: gin mode must be 'debug', 'release' or 'test', got %q", ErrInvalidConfig, config.GinMode)
	}

	if _, err := zerolog.ParseLevel(config.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q: %v", ErrInvalidConfig, config.LogLevel, err)
	}

	if !slices.Contains(Formats, config.Format) {
		return fmt.Errorf("%w: invalid format %q, must be one of %v", ErrInvalidConfig, config.Format, Formats)
	}

	if config.DataDir == "" {
		return fmt.Errorf("%w: data directory must not be empty", ErrInvalidConfig)
	}

	if config.RateLimit.Rate <= 0 || config.RateLimit.Burst < 1 {
		return fmt.Errorf("%w: rate limit needs a positive rate and a burst of at least 1", ErrInvalidConfig)
	}

	if config.Cache.TTL <= 0 || config.Cache.MaxEntries < 1 || config.Cache.CleanupInterval <= 0 {
		return fmt.Errorf("%w: cache ttl, max entries and cleanup interval must be positive", ErrInvalidConfig)
	}

	if config.Stats.RetainMonths < 1 {
		return fmt.Errorf("%w: stats must retain at least one month", ErrInvalidConfig)
	}

	return validateThresholds(config.Thresholds)
}

func validateThresholds(t analyzer.Thresholds) error {
	if t.ContentLength.Min < 1 || t.ContentLength.Best <= t.ContentLength.Min {
		return fmt.Errorf("%w: content length needs 0 < min < best", ErrInvalidConfig)
	}

	r := t.Readability
	if !(r.VeryHard < r.Hard && r.Hard < r.FairlyHard && r.FairlyHard < r.IdealMin && r.IdealMin < r.IdealMax) {
		return fmt.Errorf("%w: readability bands must be ascending", ErrInvalidConfig)
	}

	k := t.Keywords
	if k.DensityMin <= 0 || k.DensityMax <= k.DensityMin {
		return fmt.Errorf("%w: keyword density needs 0 < min < max", ErrInvalidConfig)
	}

	i := t.ImageRatio
	if !(0 < i.Few && i.Few < i.Min && i.Min < i.Max && i.Max < i.Many) {
		return fmt.Errorf("%w: image ratio bands must be ascending", ErrInvalidConfig)
	}

	if r.MinTextLength < 0 || k.MinTextLength < 0 || i.MinTextLength < 1 || k.MinTotalWords < 0 {
		return fmt.Errorf("%w: minimum text lengths must not be negative", ErrInvalidConfig)
	}
	return nil
}

// AnalyzerOptions maps the cache and threshold settings onto the analyzer
func (c *Config) AnalyzerOptions() analyzer.Options {
	return analyzer.Options{
		CacheTTL:        c.Cache.TTL,
		MaxCacheSize:    c.Cache.MaxEntries,
		CleanupInterval: c.Cache.CleanupInterval,
		RetainMonths:    c.Stats.RetainMonths,
		Thresholds:      c.Thresholds,
	}
}
