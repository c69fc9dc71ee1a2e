package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config is the configuration for the CLI tools.
type Config struct {
	Luno LunoConfig `mapstructure:"luno"`
	Log  LogConfig  `mapstructure:"log"`
}

// LunoConfig contains API credentials and endpoint configuration.
type LunoConfig struct {
	APIKey     string `mapstructure:"api_key"`
	APISecret  string `mapstructure:"api_secret"`
	APIBaseURL string `mapstructure:"api_base_url"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Output string `mapstructure:"output"` // console, file, both
}

// Load loads configuration from file and environment variables. If
// configPath is empty the default locations (./configs, .) are searched;
// a missing config file is fine as long as the credentials come from the
// environment.
func Load(configPath ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v)

	v.SetEnvPrefix("LUNO")
	v.AutomaticEnv()
	bindEnvVars(v)

	if len(configPath) > 0 && configPath[0] != "" {
		v.SetConfigFile(configPath[0])
	} else {
		v.SetConfigName("config")
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

	// Environment variables always win over config file values.
	if key := os.Getenv("LUNO_API_KEY"); key != "" {
		cfg.Luno.APIKey = key
	}
	if secret := os.Getenv("LUNO_API_SECRET"); secret != "" {
		cfg.Luno.APISecret = secret
	}
	if base := os.Getenv("LUNO_API_BASE_URL"); base != "" {
		cfg.Luno.APIBaseURL = base
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "console")
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("luno.api_key", "LUNO_API_KEY")
	v.BindEnv("luno.api_secret", "LUNO_API_SECRET")
	v.BindEnv("luno.api_base_url", "LUNO_API_BASE_URL")
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.output", "LOG_OUTPUT")
}

func validate(cfg *Config) error {
	if cfg.Luno.APIKey == "" {
		return fmt.Errorf("LUNO_API_KEY is required (set via environment variable or config file)")
	}
	if cfg.Luno.APISecret == "" {
		return fmt.Errorf("LUNO_API_SECRET is required (set via environment variable or config file)")
	}
	return nil
}
