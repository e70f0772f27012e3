// Package config loads studyhub configuration from the environment, an
// optional .env file and an optional config.yaml using Viper.
package config

import (
	"fmt"
	"time"

	"github.com/hpn/studyhub/internal/adapter"
	"github.com/hpn/studyhub/internal/dispatch"
	"github.com/hpn/studyhub/internal/domain"
)

// MaxRetryAttempts bounds retry.max_attempts.
const MaxRetryAttempts = 10

// Configuration holds all application configuration values.
// It is built once at start-up and treated as read-only afterwards.
type Configuration struct {
	// Credentials holds the two credential slots.
	Credentials CredentialsConfig `json:"-" mapstructure:"credentials"`

	// Generator configures the text-generation backend.
	Generator GeneratorConfig `json:"generator" mapstructure:"generator"`

	// Retry configures the dispatcher's attempt budget.
	Retry RetryConfig `json:"retry" mapstructure:"retry"`

	// Study configures the study tools.
	Study StudyConfig `json:"study" mapstructure:"study"`

	// Logging configuration
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// Metrics configuration
	Metrics MetricsConfig `json:"metrics" mapstructure:"metrics"`
}

// CredentialsConfig holds the primary and alternate API keys.
type CredentialsConfig struct {
	// Primary is read from GEMINI_API_KEY.
	Primary string `mapstructure:"primary"`

	// Alternate is read from ALT_KEY.
	Alternate string `mapstructure:"alternate"`
}

// GeneratorConfig selects and configures the generation backend.
type GeneratorConfig struct {
	// Backend is "sdk" (google.golang.org/genai) or "rest".
	Backend adapter.Backend `json:"backend" mapstructure:"backend"`

	// BaseURL overrides the backend endpoint (empty for the default).
	BaseURL string `json:"base_url" mapstructure:"base_url"`

	// Models is the model roster, shuffled per dispatch call.
	Models []string `json:"models" mapstructure:"models"`
}

// RetryConfig holds the dispatcher's retry policy.
type RetryConfig struct {
	// MaxAttempts is the number of full credential x model cycles.
	MaxAttempts int `json:"max_attempts" mapstructure:"max_attempts"`

	// BaseDelaySeconds is the first cooldown; later cooldowns double.
	BaseDelaySeconds float64 `json:"base_delay_seconds" mapstructure:"base_delay_seconds"`
}

// StudyConfig configures the study tools.
type StudyConfig struct {
	// ContextChars caps how much of a document is sent in a prompt.
	ContextChars int `json:"context_chars" mapstructure:"context_chars"`

	// CacheTTLSeconds is how long successful results are reused (0 disables).
	CacheTTLSeconds int `json:"cache_ttl_seconds" mapstructure:"cache_ttl_seconds"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `json:"level" mapstructure:"level"`

	// Format is the log format (json, text).
	Format string `json:"format" mapstructure:"format"`
}

// MetricsConfig holds metrics export configuration.
type MetricsConfig struct {
	// TextfilePath, when set, receives a Prometheus text-format dump on exit.
	TextfilePath string `json:"textfile_path" mapstructure:"textfile_path"`
}

// Validate validates the configuration and returns an error if a field is invalid.
// An empty credential set is valid: the dispatcher degrades instead of failing.
func (c *Configuration) Validate() error {
	var validationErrors []string

	switch c.Generator.Backend {
	case adapter.BackendSDK, adapter.BackendREST:
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"generator.backend '%s' is invalid, must be one of: sdk, rest",
			c.Generator.Backend,
		))
	}

	if domain.NewModelRoster(c.Generator.Models).Len() == 0 {
		validationErrors = append(validationErrors, "generator.models cannot be empty, at least one model is required")
	}

	if c.Retry.MaxAttempts <= 0 {
		validationErrors = append(validationErrors, "retry.max_attempts must be at least 1")
	} else if c.Retry.MaxAttempts > MaxRetryAttempts {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"retry.max_attempts %d exceeds the maximum of %d", c.Retry.MaxAttempts, MaxRetryAttempts,
		))
	}

	if c.Retry.BaseDelaySeconds <= 0 {
		validationErrors = append(validationErrors, "retry.base_delay_seconds must be positive")
	}

	if c.Study.ContextChars <= 0 {
		validationErrors = append(validationErrors, "study.context_chars must be positive")
	}

	if c.Study.CacheTTLSeconds < 0 {
		validationErrors = append(validationErrors, "study.cache_ttl_seconds cannot be negative")
	}

	if c.Logging.Level != "" && !isValidLogLevel(c.Logging.Level) {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level '%s' is invalid, must be one of: debug, info, warn, error",
			c.Logging.Level,
		))
	}

	if c.Logging.Format != "" && c.Logging.Format != "json" && c.Logging.Format != "text" {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.format '%s' is invalid, must be one of: json, text",
			c.Logging.Format,
		))
	}

	if len(validationErrors) > 0 {
		return &ValidationError{Errors: validationErrors}
	}

	return nil
}

// isValidLogLevel checks if the log level is valid.
func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// CredentialPool builds the credential pool from the two slots, primary first.
func (c *Configuration) CredentialPool() *domain.CredentialPool {
	return domain.NewCredentialPool(
		domain.Credential{Name: domain.SlotName(0), Secret: c.Credentials.Primary},
		domain.Credential{Name: domain.SlotName(1), Secret: c.Credentials.Alternate},
	)
}

// ModelRoster builds the model roster.
func (c *Configuration) ModelRoster() *domain.ModelRoster {
	return domain.NewModelRoster(c.Generator.Models)
}

// DispatchSettings returns the dispatcher's retry policy.
func (c *Configuration) DispatchSettings() dispatch.Settings {
	return dispatch.Settings{
		MaxAttempts: c.Retry.MaxAttempts,
		BaseDelay:   time.Duration(c.Retry.BaseDelaySeconds * float64(time.Second)),
	}
}

// CacheTTL returns the study result cache TTL.
func (c *Configuration) CacheTTL() time.Duration {
	return time.Duration(c.Study.CacheTTLSeconds) * time.Second
}
