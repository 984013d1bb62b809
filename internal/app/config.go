package app

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment variables, e.g. SEARCHDOWN_LOG_LEVEL.
const EnvPrefix = "SEARCHDOWN"

// Config holds the CLI configuration resolved from flags, environment
// variables and .env files, in that order of precedence.
type Config struct {
	EnvFile string

	// Logging
	LogLevel  string
	LogFormat string
	LogOutput string

	// Remote configuration documents
	AllowHTTP bool
	Timeout   time.Duration
}

// DefaultConfig returns the configuration used before flags are parsed.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "auto",
		LogOutput: "stderr",
		Timeout:   10 * time.Second,
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("log-level", defaults.LogLevel)
	v.SetDefault("log-format", defaults.LogFormat)
	v.SetDefault("log-output", defaults.LogOutput)
	v.SetDefault("allow-http", defaults.AllowHTTP)
	v.SetDefault("timeout", defaults.Timeout)
	return v
}

// LoadConfig reads the configuration from v. Flags must already be bound.
func LoadConfig(v *viper.Viper) (*Config, error) {
	if v == nil {
		return nil, errors.New("app: viper instance is nil")
	}
	cfg := &Config{
		EnvFile:   v.GetString("env-file"),
		LogLevel:  v.GetString("log-level"),
		LogFormat: v.GetString("log-format"),
		LogOutput: v.GetString("log-output"),
		AllowHTTP: v.GetBool("allow-http"),
		Timeout:   v.GetDuration("timeout"),
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return cfg, nil
}

// loadEnvFiles loads .env and .env.local when present, then the explicit
// file, which must exist. Variables already set in the environment win.
func loadEnvFiles(explicit string) error {
	for _, name := range []string{".env", ".env.local"} {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("app: load %s: %w", name, err)
		}
	}
	if explicit == "" {
		return nil
	}
	if err := godotenv.Load(explicit); err != nil {
		return fmt.Errorf("app: load env file %s: %w", explicit, err)
	}
	return nil
}
