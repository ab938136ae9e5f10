// Package config implements configuration loading for skyherald.
//
// Process-level settings come from the environment (envconfig tags, with an
// optional .env file for local development). The campaign's region
// definitions — the seasonal weather tables and webhook destinations — live
// in a JSON file referenced by REGIONS_PATH and are loaded by LoadRegions.
package config

import (
	"fmt"
	"time"
)

// ConfigErrorType categorizes configuration loading failures.
type ConfigErrorType string

const (
	ErrTypeEnvParse   ConfigErrorType = "env_parse"
	ErrTypeValidation ConfigErrorType = "validation"
	ErrTypeRegionFile ConfigErrorType = "region_file"
)

// ConfigError is a diagnostic error type returned by the loaders to aid
// debugging. It wraps a ConfigErrorType and an underlying error.
type ConfigError struct {
	Type    ConfigErrorType
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Config is the root configuration for all skyherald binaries.
type Config struct {
	// System metadata
	Environment string `envconfig:"APP_ENV" default:"local" validate:"required,oneof=local dev staging prod"`
	Service     string `envconfig:"SERVICE_NAME" default:"skyherald"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	// Domain configurations
	Server   ServerConfig
	Regions  RegionsConfig
	Dispatch DispatchConfig
	Webhook  WebhookConfig
}

// ServerConfig holds HTTP server settings for cmd/api.
type ServerConfig struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s"`
}

// RegionsConfig points at the campaign region definition file.
type RegionsConfig struct {
	Path string `envconfig:"REGIONS_PATH" default:"regions.json" validate:"required"`
}

// DispatchConfig controls the herald's posting schedule. All times are UTC;
// the engine performs no timezone adjustment.
type DispatchConfig struct {
	PostHourUTC int    `envconfig:"DISPATCH_HOUR_UTC" default:"6" validate:"min=0,max=23"`
	OutlookDay  string `envconfig:"DISPATCH_OUTLOOK_DAY" default:"Monday" validate:"oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
}

// WebhookConfig tunes the delivery channel.
type WebhookConfig struct {
	Timeout       time.Duration `envconfig:"WEBHOOK_TIMEOUT" default:"10s"`
	MaxRetries    int           `envconfig:"WEBHOOK_MAX_RETRIES" default:"3" validate:"min=0,max=10"`
	SigningSecret string        `envconfig:"WEBHOOK_SIGNING_SECRET"`
	UserAgent     string        `envconfig:"WEBHOOK_USER_AGENT" default:"skyherald/1.0"`
}

// OutlookWeekday converts the configured outlook day name to a time.Weekday.
func (d DispatchConfig) OutlookWeekday() time.Weekday {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if wd.String() == d.OutlookDay {
			return wd
		}
	}
	return time.Monday
}
