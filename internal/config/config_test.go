// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/pdiddy/scix/internal/secrets"
	"github.com/pdiddy/scix/pkg/types"
)

func clearTokenEnv(t *testing.T) {
	t.Setenv("SCIX_API_TOKEN", "")
	t.Setenv("ADS_API_TOKEN", "")
	t.Setenv("SCIX_TOKEN", "")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scix.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func load(t *testing.T, configFile string, opts Options) types.ClientConfig {
	t.Helper()
	v := viper.New()
	require.NoError(t, NewViper(v, configFile))
	if opts.SecretsDir == "" {
		opts.SecretsDir = t.TempDir()
	}
	cfg, err := Load(v, opts)
	require.NoError(t, err)
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	clearTokenEnv(t)
	keyring.MockInit()

	cfg := load(t, writeConfig(t, "{}\n"), Options{})
	assert.Equal(t, types.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, types.DefaultTimeout, cfg.Timeout)
	assert.Equal(t, types.DefaultRequestsPerSecond, cfg.RateLimit.PerSecond)
	assert.Empty(t, cfg.Token)
	assert.Empty(t, cfg.TokenSource)
}

func TestLoadConfigFile(t *testing.T) {
	clearTokenEnv(t)
	path := writeConfig(t, `
token: file-token
base_url: https://example.org/v1
timeout: 5s
user_agent: custom/1.0
rate_limit:
  per_second: 2
`)
	cfg := load(t, path, Options{SkipKeyring: true})
	assert.Equal(t, "file-token", cfg.Token)
	assert.Equal(t, SourceConfig, cfg.TokenSource)
	assert.Equal(t, "https://example.org/v1", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "custom/1.0", cfg.UserAgent)
	assert.Equal(t, 2, cfg.RateLimit.PerSecond)
}

func TestTokenPrecedence(t *testing.T) {
	path := writeConfig(t, "token: file-token\n")

	t.Run("flag wins", func(t *testing.T) {
		clearTokenEnv(t)
		t.Setenv("SCIX_API_TOKEN", "env-token")
		cfg := load(t, path, Options{Token: "flag-token", SkipKeyring: true})
		assert.Equal(t, "flag-token", cfg.Token)
		assert.Equal(t, SourceFlag, cfg.TokenSource)
	})

	t.Run("SCIX_API_TOKEN over config", func(t *testing.T) {
		clearTokenEnv(t)
		t.Setenv("SCIX_API_TOKEN", "env-token")
		cfg := load(t, path, Options{SkipKeyring: true})
		assert.Equal(t, "env-token", cfg.Token)
		assert.Equal(t, SourceEnv, cfg.TokenSource)
	})

	t.Run("ADS_API_TOKEN fallback", func(t *testing.T) {
		clearTokenEnv(t)
		t.Setenv("ADS_API_TOKEN", "ads-token")
		cfg := load(t, path, Options{SkipKeyring: true})
		assert.Equal(t, "ads-token", cfg.Token)
		assert.Equal(t, SourceEnv, cfg.TokenSource)
	})

	t.Run("secrets directory", func(t *testing.T) {
		clearTokenEnv(t)
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, secrets.TokenFile), []byte("secret-token\n"), 0o600))
		cfg := load(t, writeConfig(t, "{}\n"), Options{SecretsDir: dir, SkipKeyring: true})
		assert.Equal(t, "secret-token", cfg.Token)
		assert.Equal(t, SourceSecrets, cfg.TokenSource)
	})

	t.Run("keyring last", func(t *testing.T) {
		clearTokenEnv(t)
		keyring.MockInit()
		require.NoError(t, secrets.StoreToken("kr-token"))
		cfg := load(t, writeConfig(t, "{}\n"), Options{})
		assert.Equal(t, "kr-token", cfg.Token)
		assert.Equal(t, SourceKeyring, cfg.TokenSource)
	})
}

func TestEnvOverridesNestedKey(t *testing.T) {
	clearTokenEnv(t)
	t.Setenv("SCIX_RATE_LIMIT_PER_SECOND", "9")
	cfg := load(t, writeConfig(t, "{}\n"), Options{SkipKeyring: true})
	assert.Equal(t, 9, cfg.RateLimit.PerSecond)
}

func TestLoadRejectsBadRate(t *testing.T) {
	clearTokenEnv(t)
	v := viper.New()
	require.NoError(t, NewViper(v, writeConfig(t, "rate_limit:\n  per_second: 0\n")))
	_, err := Load(v, Options{SkipKeyring: true, SecretsDir: t.TempDir()})
	assert.Error(t, err)
}

func TestNewViperMissingExplicitFile(t *testing.T) {
	err := NewViper(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLogSettings(t *testing.T) {
	v := viper.New()
	require.NoError(t, NewViper(v, writeConfig(t, "log:\n  level: debug\n  format: json\n")))
	level, format := LogSettings(v)
	assert.Equal(t, "debug", level)
	assert.Equal(t, "json", format)
}
