package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from an optional config file and environment
// variables. Environment variables (prefixed PHRASELAB_, with dots
// replaced by underscores, e.g. PHRASELAB_LOG_LEVEL) take precedence
// over values from config files, which take precedence over defaults.
// Returns a populated Config struct or an error if loading or
// validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults mirror the algorithm's built-in parameters
	v.SetDefault("log.level", "info")
	v.SetDefault("srs.min_ease_factor", 1.3)
	v.SetDefault("srs.max_ease_factor", 2.5)
	v.SetDefault("srs.relearn_interval_days", 1)
	v.SetDefault("srs.early_review_interval_days", 6)
	v.SetDefault("srs.beginner_daily_target", 15)
	v.SetDefault("srs.intermediate_daily_target", 25)
	v.SetDefault("srs.advanced_daily_target", 35)

	// Config file is optional; environment-only deployments are fine
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("PHRASELAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
