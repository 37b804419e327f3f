package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Sources  SourcesConfig  `mapstructure:"sources"`
	Review   ReviewConfig   `mapstructure:"review"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Database DatabaseConfig `mapstructure:"database"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// SourcesConfig locates the exported source tables on disk
type SourcesConfig struct {
	Root string `mapstructure:"root"`
}

// ReviewConfig holds the document review parameters
type ReviewConfig struct {
	WindowDays  int      `mapstructure:"window_days"`
	OCSentinels []string `mapstructure:"oc_sentinels"`
}

// LedgerConfig holds the output locations of the consolidated ledger
type LedgerConfig struct {
	HistoryPath string `mapstructure:"history_path"`
	ExtractDir  string `mapstructure:"extract_dir"`
}

// DatabaseConfig holds the run-history database configuration
type DatabaseConfig struct {
	Path          string `mapstructure:"path"`
	MigrationsDir string `mapstructure:"migrations_dir"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("review.window_days", 8)
	viper.SetDefault("review.oc_sentinels", []string{"2022", "2"})

	viper.SetDefault("ledger.history_path", "salida/control_facturas_historico.csv")
	viper.SetDefault("ledger.extract_dir", "salida")

	viper.SetDefault("database.path", "data/control_facturas.db")
	viper.SetDefault("database.migrations_dir", "migrations")

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "json")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars() {
	viper.BindEnv("sources.root", "CONTROL_FACTURAS_SOURCES_ROOT")
	viper.BindEnv("ledger.history_path", "CONTROL_FACTURAS_HISTORY_PATH")
	viper.BindEnv("ledger.extract_dir", "CONTROL_FACTURAS_EXTRACT_DIR")
	viper.BindEnv("database.path", "CONTROL_FACTURAS_DB_PATH")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Sources.Root == "" {
		return fmt.Errorf("sources.root is required")
	}
	if c.Review.WindowDays <= 0 {
		return fmt.Errorf("review.window_days must be positive")
	}
	if len(c.Review.OCSentinels) == 0 {
		return fmt.Errorf("review.oc_sentinels must not be empty")
	}
	if c.Ledger.HistoryPath == "" {
		return fmt.Errorf("ledger.history_path is required")
	}
	if c.Ledger.ExtractDir == "" {
		return fmt.Errorf("ledger.extract_dir is required")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	return nil
}
