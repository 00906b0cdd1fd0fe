package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the runtime configuration of the dashboard.
type Config struct {
	// Addr is the listen address of the dashboard server.
	Addr string `mapstructure:"addr"`
	// APIBase is the base URL of the upstream reports service.
	APIBase string `mapstructure:"api_base"`
	// ClientTimeout bounds each upstream request.
	ClientTimeout time.Duration `mapstructure:"client_timeout"`
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Load reads configuration from an optional file plus DASH_* environment
// overrides. All settings have development defaults, including a local
// address for the upstream API.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("addr", ":8090")
	v.SetDefault("api_base", "http://127.0.0.1:8000")
	v.SetDefault("client_timeout", "15s")
	v.SetDefault("shutdown_timeout", "10s")

	v.SetEnvPrefix("DASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
