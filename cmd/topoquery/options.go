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

package main

import (
	"github.com/spf13/pflag"
)

// GlobalOptions are the flags shared by every report.
type GlobalOptions struct {
	Auth         bool
	CertPath     string
	KeyPath      string
	OutputFile   string
	Host         string
	ConfigPath   string
	StrictStatus bool
	Verbose      bool
}

// DefaultGlobalOptions returns the flag defaults.
func DefaultGlobalOptions() *GlobalOptions {
	return &GlobalOptions{}
}

// Bind registers the global flags on fs.
func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.BoolVar(&o.Auth, "auth", o.Auth, "Authenticate with an X.509 client certificate")
	fs.StringVar(&o.CertPath, "cert", o.CertPath, "Client certificate file (requires --key)")
	fs.StringVar(&o.KeyPath, "key", o.KeyPath, "Client key file (requires --cert)")
	fs.StringVar(&o.OutputFile, "out", o.OutputFile, "Output file path (default: stdout)")
	fs.StringVar(&o.Host, "host", o.Host, "Registry base URL (overrides config and TOPOQUERY_HOST)")
	fs.StringVar(&o.ConfigPath, "config", o.ConfigPath, "Configuration file (default: .topoquery.yaml or ~/.config/topoquery/config.yaml)")
	fs.BoolVar(&o.StrictStatus, "strict-status", o.StrictStatus, "Fail on non-2xx HTTP responses")
	fs.BoolVarP(&o.Verbose, "verbose", "v", o.Verbose, "Log request details to stderr")
}
