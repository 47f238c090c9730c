package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Log LogConfig `mapstructure:"log" validate:"required"`
	SRS SRSConfig `mapstructure:"srs" validate:"required"`
}

// LogConfig contains all logging-related configuration settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// SRSConfig contains the tunable scheduling parameters. These map onto
// the srs package's ParamsConfig; anything not listed here keeps the
// algorithm's built-in default.
type SRSConfig struct {
	MinEaseFactor           float64 `mapstructure:"min_ease_factor"            validate:"required,gt=1"`
	MaxEaseFactor           float64 `mapstructure:"max_ease_factor"            validate:"required,gtfield=MinEaseFactor"`
	RelearnIntervalDays     int     `mapstructure:"relearn_interval_days"      validate:"required,min=1"`
	EarlyReviewIntervalDays int     `mapstructure:"early_review_interval_days" validate:"required,min=1"`
	BeginnerDailyTarget     int     `mapstructure:"beginner_daily_target"      validate:"required,min=1"`
	IntermediateDailyTarget int     `mapstructure:"intermediate_daily_target"  validate:"required,min=1"`
	AdvancedDailyTarget     int     `mapstructure:"advanced_daily_target"      validate:"required,min=1"`
}
