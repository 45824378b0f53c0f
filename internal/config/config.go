package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type RunnerConfig struct {
	URL          string        `mapstructure:"url"`
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type Config struct {
	Mode          string        `mapstructure:"mode"`
	Port          int           `mapstructure:"port"`
	AllowedOrigin string        `mapstructure:"allowed_origin"`
	ReadLimit     int64         `mapstructure:"read_limit"`
	PingPeriod    time.Duration `mapstructure:"ping_period"`
	Runner        RunnerConfig  `mapstructure:"runner"`
}

// Load reads config/config.<CONFIG_ENV>.yaml, falling back to defaults
// when the file is absent. Runner credentials may also come from the
// SYNCPAD_RUNNER_CLIENT_ID / SYNCPAD_RUNNER_CLIENT_SECRET environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path == "" {
		env := os.Getenv("CONFIG_ENV")
		if env == "" {
			env = "dev"
		}
		path = fmt.Sprintf("config/config.%s.yaml", env)
	}
	v.SetConfigFile(path)

	v.SetDefault("mode", "release")
	v.SetDefault("port", 5000)
	v.SetDefault("allowed_origin", "")
	v.SetDefault("read_limit", 1<<20)
	v.SetDefault("ping_period", "30s")
	v.SetDefault("runner.url", "https://api.jdoodle.com/v1/execute")
	v.SetDefault("runner.timeout", "15s")

	v.SetEnvPrefix("SYNCPAD")
	_ = v.BindEnv("runner.client_id", "SYNCPAD_RUNNER_CLIENT_ID")
	_ = v.BindEnv("runner.client_secret", "SYNCPAD_RUNNER_CLIENT_SECRET")

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", path).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", path).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
