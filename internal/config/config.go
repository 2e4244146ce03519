// Package config resolves ambient configuration for the GoodData backend.
//
// Resolution order: environment variables first (GOODDATA_HOST,
// GOODDATA_TOKEN, GOODDATA_WORKSPACE), then an optional YAML file
// (./gooddata.yaml or ~/.config/gooddata/config.yaml). Load returns a
// plain value — memoization is the session's job, not a package global.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/stackless-dev/gooddata-cli/internal/gderr"
)

// Config holds the three settings the backend client needs. Workspace
// is the optional default used when a call names no workspace.
type Config struct {
	Host      string
	Token     string
	Workspace string
}

// Load reads configuration from the environment and the optional config
// file. It fails with *gderr.ConfigurationError when host or token is
// absent or empty.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("gooddata")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "gooddata"))
	}

	// Exact env var names are part of the external contract.
	_ = v.BindEnv("host", "GOODDATA_HOST")
	_ = v.BindEnv("token", "GOODDATA_TOKEN")
	_ = v.BindEnv("workspace", "GOODDATA_WORKSPACE")

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine — env vars alone are a complete config.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, &gderr.ConfigurationError{Err: fmt.Errorf("reading config file: %w", err)}
		}
	}

	cfg := Config{
		Host:      strings.TrimRight(strings.TrimSpace(v.GetString("host")), "/"),
		Token:     strings.TrimSpace(v.GetString("token")),
		Workspace: strings.TrimSpace(v.GetString("workspace")),
	}

	if cfg.Host == "" {
		return Config{}, &gderr.ConfigurationError{Missing: "GOODDATA_HOST"}
	}
	if cfg.Token == "" {
		return Config{}, &gderr.ConfigurationError{Missing: "GOODDATA_TOKEN"}
	}
	return cfg, nil
}
