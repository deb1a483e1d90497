// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config reads client settings from flags, environment, the
// scix.yaml config file, the .secrets directory and the OS keyring.
// Settings are read once at startup.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/scix/internal/secrets"
	"github.com/pdiddy/scix/pkg/types"
)

const (
	appName    = "scix"
	envPrefix  = "SCIX"
	configName = "scix"
)

// Token sources, in lookup order.
const (
	SourceFlag    = "flag"
	SourceEnv     = "env"
	SourceConfig  = "config"
	SourceSecrets = "secrets"
	SourceKeyring = "keyring"
)

// Dir returns the per-user config directory ($XDG_CONFIG_HOME/scix).
func Dir() string { return filepath.Join(xdg.ConfigHome, appName) }

// NewViper prepares v to read scix.yaml and SCIX_* variables. An explicit
// file that cannot be read is an error; a missing default file is not.
func NewViper(v *viper.Viper, configFile string) error {
	v.SetDefault("base_url", types.DefaultBaseURL)
	v.SetDefault("timeout", types.DefaultTimeout)
	v.SetDefault("rate_limit.per_second", types.DefaultRequestsPerSecond)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(Dir())
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("env_token", "SCIX_API_TOKEN", "ADS_API_TOKEN"); err != nil {
		return fmt.Errorf("binding token variables: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Options controls token lookup.
type Options struct {
	// Token is the --token flag value.
	Token string

	// SecretsDir holds key files; empty means secrets.DefaultDir.
	SecretsDir string

	// SkipKeyring disables the OS keyring lookup.
	SkipKeyring bool

	Log *zap.Logger
}

// Load builds a ClientConfig from v. The token is taken from the first
// source that has one: flag, SCIX_API_TOKEN/ADS_API_TOKEN, config file,
// secrets directory, keyring. Finding no token is not an error.
func Load(v *viper.Viper, opts Options) (types.ClientConfig, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	cfg := types.ClientConfig{
		BaseURL:   v.GetString("base_url"),
		Timeout:   v.GetDuration("timeout"),
		UserAgent: v.GetString("user_agent"),
		RateLimit: types.RateLimitConfig{PerSecond: v.GetInt("rate_limit.per_second")},
	}
	if cfg.RateLimit.PerSecond <= 0 {
		return cfg, fmt.Errorf("rate_limit.per_second must be positive, got %d", cfg.RateLimit.PerSecond)
	}
	if cfg.Timeout <= 0 {
		return cfg, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}

	token, source, err := resolveToken(v, opts, log)
	if err != nil {
		return cfg, err
	}
	cfg.Token, cfg.TokenSource = token, source
	if source != "" {
		log.Debug("using API token", zap.String("source", source))
	}
	return cfg, nil
}

func resolveToken(v *viper.Viper, opts Options, log *zap.Logger) (string, string, error) {
	if t := strings.TrimSpace(opts.Token); t != "" {
		return t, SourceFlag, nil
	}
	if t := strings.TrimSpace(v.GetString("env_token")); t != "" {
		return t, SourceEnv, nil
	}
	if t := strings.TrimSpace(v.GetString("token")); t != "" {
		return t, SourceConfig, nil
	}

	dir := opts.SecretsDir
	if dir == "" {
		dir = secrets.DefaultDir
	}
	t, err := secrets.FileToken(dir, log)
	if err != nil {
		return "", "", err
	}
	if t != "" {
		return t, SourceSecrets, nil
	}

	if opts.SkipKeyring {
		return "", "", nil
	}
	t, err = secrets.KeyringToken()
	if err != nil {
		// A broken keyring should not stop unauthenticated commands.
		log.Warn("keyring unavailable", zap.Error(err))
		return "", "", nil
	}
	if t != "" {
		return t, SourceKeyring, nil
	}
	return "", "", nil
}

// LogSettings returns the configured log level and format.
func LogSettings(v *viper.Viper) (level, format string) {
	return v.GetString("log.level"), v.GetString("log.format")
}
