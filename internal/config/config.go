package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/seckatie/launchwatch/internal/core"
	"github.com/seckatie/launchwatch/internal/core/dashboard"
)

// EnvPrefix is prepended to every environment override,
// e.g. LAUNCHWATCH_API_BASE_URL.
const EnvPrefix = "LAUNCHWATCH"

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type SessionConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Server  ServerConfig  `mapstructure:"server"`
	Session SessionConfig `mapstructure:"session"`
}

// Addr returns host:port for the web server.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// flagKeys maps command line flags to config keys. Flags that are not
// defined on a command are skipped.
var flagKeys = map[string]string{
	"api-base":    "api.base_url",
	"api-timeout": "api.timeout",
	"host":        "server.host",
	"port":        "server.port",
	"session-ttl": "session.ttl",
}

// New returns a viper instance with defaults and env overrides set.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("api.base_url", core.DefaultAPIBaseURL)
	v.SetDefault("api.timeout", core.DefaultAPITimeout)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("session.ttl", dashboard.DefaultSessionTTL)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load resolves the configuration. Precedence is flags, then environment,
// then the config file at path (if not empty), then defaults.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := New()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("failed to bind flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config to struct: %w", err)
	}
	if cfg.API.BaseURL == "" {
		return Config{}, fmt.Errorf("api.base_url must not be empty")
	}
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return Config{}, fmt.Errorf("server.port %d out of range", cfg.Server.Port)
	}
	return cfg, nil
}
