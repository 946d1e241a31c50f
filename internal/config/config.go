// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for topology-query.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags (applied by the caller)
//  2. TOPOQUERY_* environment variables
//  3. Configuration file
//  4. Built-in defaults
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides, e.g. TOPOQUERY_HOST.
const EnvPrefix = "TOPOQUERY"

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .topoquery.yaml (current directory)
//   - ~/.config/topoquery/config.yaml
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		for _, path := range defaultPaths() {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultPaths() []string {
	paths := []string{".topoquery.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "topoquery", "config.yaml"))
	}
	return paths
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies TOPOQUERY_* variables to cfg.
func applyEnvOverrides(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	if env.Host != "" {
		cfg.Registry.Host = env.Host
	}
	if env.Timeout != "" {
		d, err := time.ParseDuration(env.Timeout)
		if err != nil {
			return fmt.Errorf("%s_TIMEOUT: %w", EnvPrefix, err)
		}
		cfg.Registry.Timeout = d
	}
	if env.Formatter != "" {
		cfg.Output.Formatter = env.Formatter
	}
	if env.StrictStatus != "" {
		cfg.Registry.StrictStatus = parseBool(env.StrictStatus)
	}
	return nil
}

// parseBool parses various boolean representations
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "yes" || s == "1" || s == "on"
}

// Validate checks the configuration for values the client cannot work with.
func (c *Config) Validate() error {
	if c.Registry.Host == "" {
		return fmt.Errorf("registry host cannot be empty")
	}
	u, err := url.Parse(c.Registry.Host)
	if err != nil {
		return fmt.Errorf("registry host %q: %w", c.Registry.Host, err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("registry host %q must use http or https", c.Registry.Host)
	}
	if u.Host == "" {
		return fmt.Errorf("registry host %q has no hostname", c.Registry.Host)
	}
	if c.Registry.Timeout <= 0 {
		return fmt.Errorf("registry timeout must be positive, got: %s", c.Registry.Timeout)
	}
	if c.Registry.MaxResponseBytes <= 0 {
		return fmt.Errorf("max response bytes must be positive, got: %d", c.Registry.MaxResponseBytes)
	}
	if c.Output.Formatter == "" {
		return fmt.Errorf("output formatter cannot be empty")
	}
	return nil
}
