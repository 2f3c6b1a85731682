package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SATIM_USERNAME", "merchant")
	t.Setenv("SATIM_PASSWORD", "s3cret")
	t.Setenv("SATIM_TERMINAL_ID", "TEST123")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://test2.satim.dz/payment/rest", cfg.APIURL)
	assert.Equal(t, "fr", cfg.Language)
	assert.Equal(t, "012", cfg.Currency)
	assert.False(t, cfg.VerifySSL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SATIM_API_URL", "https://satim.dz/payment/rest")
	t.Setenv("SATIM_LANGUAGE", "ar")
	t.Setenv("SATIM_HTTP_VERIFY_SSL", "true")
	t.Setenv("SATIM_HTTP_TIMEOUT", "45s")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://satim.dz/payment/rest", cfg.APIURL)
	assert.Equal(t, "ar", cfg.Language)
	assert.True(t, cfg.VerifySSL)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
}

func TestLoad_MissingCredentials(t *testing.T) {
	t.Setenv("SATIM_USERNAME", "")
	t.Setenv("SATIM_PASSWORD", "")
	t.Setenv("SATIM_TERMINAL_ID", "")

	_, err := Load()

	assert.Error(t, err)
}
