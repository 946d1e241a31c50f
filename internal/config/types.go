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

// Package config types define the configuration structures used throughout
// topology-query. These types represent settings that can be loaded from
// YAML configuration files, environment variables, or command-line flags.
package config

import "time"

// Config represents the complete configuration for topology-query.
type Config struct {
	Registry RegistryConfig `yaml:"registry"`
	Output   OutputConfig   `yaml:"output"`
}

// RegistryConfig describes how to reach the registry. Host can point at a
// mirror or a test instance of the topology service.
type RegistryConfig struct {
	Host             string        `yaml:"host"`
	Timeout          time.Duration `yaml:"timeout"`
	StrictStatus     bool          `yaml:"strict_status"`
	MaxResponseBytes int64         `yaml:"max_response_bytes"`
}

// OutputConfig controls how the XML payload is pretty-printed.
// Formatter is an executable name looked up on PATH, or "builtin".
type OutputConfig struct {
	Formatter string `yaml:"formatter"`
}

// envOverrides are the TOPOQUERY_* variables. Empty values leave the
// loaded configuration untouched.
type envOverrides struct {
	Host         string `envconfig:"HOST"`
	Timeout      string `envconfig:"TIMEOUT"`
	Formatter    string `envconfig:"FORMATTER"`
	StrictStatus string `envconfig:"STRICT_STATUS"`
}

// DefaultConfig returns a Config pointing at the public registry.
func DefaultConfig() *Config {
	return &Config{
		Registry: RegistryConfig{
			Host:             "https://topology.opensciencegrid.org",
			Timeout:          60 * time.Second,
			StrictStatus:     false,
			MaxResponseBytes: 64 * 1024 * 1024,
		},
		Output: OutputConfig{
			Formatter: "xmllint",
		},
	}
}
