package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Environment)
	assert.Equal(t, "skyherald", cfg.Service)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "regions.json", cfg.Regions.Path)
	assert.Equal(t, 6, cfg.Dispatch.PostHourUTC)
	assert.Equal(t, "Monday", cfg.Dispatch.OutlookDay)
	assert.Equal(t, 10*time.Second, cfg.Webhook.Timeout)
	assert.Equal(t, 3, cfg.Webhook.MaxRetries)
}

func TestLoadConfigForcesUTC(t *testing.T) {
	_, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, time.Local)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PORT", "9000")
	t.Setenv("DISPATCH_HOUR_UTC", "18")
	t.Setenv("DISPATCH_OUTLOOK_DAY", "Friday")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Environment)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 18, cfg.Dispatch.PostHourUTC)
	assert.Equal(t, time.Friday, cfg.Dispatch.OutlookWeekday())
}

func TestLoadConfigRejectsInvalidEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := LoadConfig()
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ErrTypeValidation, cfgErr.Type)
}

func TestLoadConfigRejectsOutOfRangeHour(t *testing.T) {
	t.Setenv("DISPATCH_HOUR_UTC", "24")

	_, err := LoadConfig()
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ErrTypeValidation, cfgErr.Type)
}

func TestOutlookWeekdayFallsBackToMonday(t *testing.T) {
	d := DispatchConfig{OutlookDay: "someday"}
	assert.Equal(t, time.Monday, d.OutlookWeekday())
}
