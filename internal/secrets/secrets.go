// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets finds the SciX API token outside the config file: in a
// directory of plain-text key files (.secrets/scix-api-token) or in the OS
// keyring.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"
	"go.uber.org/zap"
)

const (
	// DefaultDir is the secrets directory relative to the working directory.
	DefaultDir = ".secrets"

	// TokenFile is the key file holding the API token.
	TokenFile = "scix-api-token"

	keyringService = "scix"
	keyringUser    = "api-token"
)

// Load reads every file in dir into a map of file name to trimmed contents.
// A missing directory yields an empty map. Dotfiles, subdirectories and
// empty files are skipped; unreadable files are logged and skipped.
func Load(dir string, log *zap.Logger) (map[string]string, error) {
	if log == nil {
		log = zap.NewNop()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	out := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("could not read secret", zap.String("name", name), zap.Error(err))
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			out[name] = value
		}
	}
	return out, nil
}

// FileToken returns the token stored in dir/scix-api-token, or "".
func FileToken(dir string, log *zap.Logger) (string, error) {
	all, err := Load(dir, log)
	if err != nil {
		return "", err
	}
	return all[TokenFile], nil
}

// KeyringToken returns the token stored in the OS keyring, or "" when none
// is stored.
func KeyringToken() (string, error) {
	token, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading token from keyring: %w", err)
	}
	return strings.TrimSpace(token), nil
}

// StoreToken saves token in the OS keyring, replacing any previous one.
func StoreToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}
	if err := keyring.Set(keyringService, keyringUser, token); err != nil {
		return fmt.Errorf("storing token in keyring: %w", err)
	}
	return nil
}

// DeleteToken removes the keyring token. Deleting a missing token is not an error.
func DeleteToken() error {
	err := keyring.Delete(keyringService, keyringUser)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("deleting token from keyring: %w", err)
	}
	return nil
}
