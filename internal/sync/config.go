package sync

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config is the configuration for the trade sync service.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig contains PostgreSQL database configuration.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// AccountConfig is one set of API credentials to sync.
type AccountConfig struct {
	Label     string `mapstructure:"label"`
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
	Enabled   bool   `mapstructure:"enabled"`
}

// SyncConfig controls what is synced and how often.
type SyncConfig struct {
	IntervalSeconds int             `mapstructure:"interval_seconds"`
	Limit           int64           `mapstructure:"limit"`
	Pairs           []string        `mapstructure:"pairs"`
	Accounts        []AccountConfig `mapstructure:"accounts"`
	APIBaseURL      string          `mapstructure:"api_base_url"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Output string `mapstructure:"output"`
}

// Load loads the sync service configuration from file and environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v)

	v.SetEnvPrefix("SYNC")
	v.AutomaticEnv()
	bindEnvVars(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("sync_config")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "luno_trading")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("sync.interval_seconds", 60)
	v.SetDefault("sync.limit", 100)
	v.SetDefault("sync.pairs", []string{"XBTZAR"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "console")
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("database.host", "SYNC_DB_HOST", "DB_HOST", "POSTGRES_HOST")
	v.BindEnv("database.port", "SYNC_DB_PORT", "DB_PORT", "POSTGRES_PORT")
	v.BindEnv("database.user", "SYNC_DB_USER", "DB_USER", "POSTGRES_USER")
	v.BindEnv("database.password", "SYNC_DB_PASSWORD", "DB_PASSWORD", "POSTGRES_PASSWORD")
	v.BindEnv("database.dbname", "SYNC_DB_NAME", "DB_NAME", "POSTGRES_DB")
	v.BindEnv("database.sslmode", "SYNC_DB_SSLMODE", "DB_SSLMODE")

	v.BindEnv("sync.interval_seconds", "SYNC_INTERVAL_SECONDS")
	v.BindEnv("sync.limit", "SYNC_LIMIT")

	v.BindEnv("log.level", "SYNC_LOG_LEVEL", "LOG_LEVEL")
	v.BindEnv("log.output", "SYNC_LOG_OUTPUT", "LOG_OUTPUT")
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return fmt.Errorf("database.dbname is required")
	}
	if cfg.Sync.IntervalSeconds <= 0 {
		return fmt.Errorf("sync.interval_seconds must be greater than 0")
	}
	if len(cfg.Sync.Pairs) == 0 {
		return fmt.Errorf("sync.pairs cannot be empty")
	}

	if len(cfg.Sync.Accounts) == 0 {
		// Without configured accounts the service falls back to the
		// LUNO_API_KEY/LUNO_API_SECRET environment variables.
		if os.Getenv("LUNO_API_KEY") == "" {
			return fmt.Errorf("either sync.accounts must be configured or LUNO_API_KEY environment variable must be set")
		}
	} else {
		for i, acc := range cfg.Sync.Accounts {
			if acc.Label == "" {
				return fmt.Errorf("sync.accounts[%d].label is required", i)
			}
			if acc.APIKey == "" {
				return fmt.Errorf("sync.accounts[%d].api_key is required", i)
			}
			if acc.APISecret == "" {
				return fmt.Errorf("sync.accounts[%d].api_secret is required", i)
			}
		}
	}

	return nil
}
