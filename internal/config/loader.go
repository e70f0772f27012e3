package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/hpn/studyhub/internal/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultConfigName = "config"
	defaultConfigType = "yaml"
	envPrefix         = "STUDYHUB"

	// EnvPrimaryKey is the environment variable of the primary credential slot.
	EnvPrimaryKey = "GEMINI_API_KEY"

	// EnvAlternateKey is the environment variable of the alternate credential slot.
	EnvAlternateKey = "ALT_KEY"
)

// Options controls where Load looks for configuration.
type Options struct {
	// ConfigPath is an explicit config file; empty searches the default paths.
	ConfigPath string

	// EnvFiles are dotenv files loaded before reading the environment.
	// Existing environment variables are never overwritten.
	EnvFiles []string
}

// Load reads the configuration.
// Priority order (highest to lowest):
// 1. Process environment (GEMINI_API_KEY, ALT_KEY, STUDYHUB_*)
// 2. .env files
// 3. config.yaml
// 4. Default values
func Load(opts Options) (*Configuration, error) {
	if err := loadEnvFiles(opts.EnvFiles); err != nil {
		return nil, &ConfigError{Op: "dotenv", Err: err}
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName(defaultConfigName)
	v.SetConfigType(defaultConfigType)

	if opts.ConfigPath != "" {
		v.SetConfigFile(opts.ConfigPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.studyhub")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// The credential slots keep their historical, unprefixed names.
	if err := v.BindEnv("credentials.primary", EnvPrimaryKey); err != nil {
		return nil, &ConfigError{Op: "bind_env", Err: err}
	}
	if err := v.BindEnv("credentials.alternate", EnvAlternateKey); err != nil {
		return nil, &ConfigError{Op: "bind_env", Err: err}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, &ConfigError{
				Op:  "read",
				Err: fmt.Errorf("failed to read config file: %w", err),
			}
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ConfigError{
			Op:  "unmarshal",
			Err: fmt.Errorf("failed to unmarshal config: %w", err),
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadEnvFiles loads dotenv files, skipping ones that do not exist.
func loadEnvFiles(files []string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("credentials.primary", "")
	v.SetDefault("credentials.alternate", "")

	// Generator defaults
	v.SetDefault("generator.backend", "sdk")
	v.SetDefault("generator.base_url", "")
	v.SetDefault("generator.models", domain.DefaultModels)

	// Retry defaults: 3 cycles, 2s/4s/8s cooldowns
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.base_delay_seconds", 2)

	// Study defaults
	v.SetDefault("study.context_chars", 5000)
	v.SetDefault("study.cache_ttl_seconds", 300)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("metrics.textfile_path", "")
}
