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
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirseerhq/topology-query/internal/config"
	"github.com/sirseerhq/topology-query/internal/credential"
	"github.com/sirseerhq/topology-query/internal/log"
	"github.com/sirseerhq/topology-query/internal/output"
	"github.com/sirseerhq/topology-query/internal/query"
	"github.com/sirseerhq/topology-query/internal/topology"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runner holds the process dependencies of a report run so tests can
// replace them.
type runner struct {
	stdout       io.Writer
	newClient    func(cfg config.RegistryConfig) topology.Client
	environment  func() (credential.Environment, error)
	newFormatter func(command string) output.Formatter
}

func newRunner() *runner {
	return &runner{
		stdout: os.Stdout,
		newClient: func(cfg config.RegistryConfig) topology.Client {
			return topology.NewHTTPClient(cfg)
		},
		environment:  credential.SystemEnvironment,
		newFormatter: output.NewFormatter,
	}
}

// run builds, fetches and prints one report.
func (r *runner) run(cmd *cobra.Command, g *GlobalOptions, opts query.Options) error {
	logger := log.InitLog(log.Level(g.Verbose))
	defer func() { _ = logger.Sync() }()
	undo := zap.ReplaceGlobals(logger)
	defer undo()

	cfg, err := r.loadConfig(cmd, g)
	if err != nil {
		return err
	}

	opts.Auth = g.Auth
	opts.CertPath = g.CertPath
	opts.KeyPath = g.KeyPath

	url, err := query.Build(opts, cfg.Registry.Host)
	if err != nil {
		return err
	}
	zap.S().Debugw("built report url", "report", opts.Report, "url", url)

	var cred *credential.Credential
	if opts.Auth {
		c, err := r.resolveCredential(opts)
		if err != nil {
			return err
		}
		cred = &c
	} else if opts.CertPath != "" || opts.KeyPath != "" {
		zap.S().Warn("--cert and --key are ignored without --auth")
	}

	// Create output writer
	var writer output.OutputWriter
	if g.OutputFile == "" {
		writer = output.NewWriter(r.stdout)
	} else {
		fileWriter, fErr := output.NewFileWriter(g.OutputFile)
		if fErr != nil {
			return fErr
		}
		writer = fileWriter
	}
	defer writer.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Registry.Timeout)
	defer cancel()

	body, err := r.newClient(cfg.Registry).Fetch(ctx, url, cred)
	if err != nil {
		return err
	}

	if err := output.FormatAndWrite(ctx, r.newFormatter(cfg.Output.Formatter), writer, body); err != nil {
		return err
	}

	return writer.Close()
}

// loadConfig applies flag overrides on top of the file and environment.
func (r *runner) loadConfig(cmd *cobra.Command, g *GlobalOptions) (*config.Config, error) {
	cfg, err := config.LoadConfig(g.ConfigPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("host") {
		cfg.Registry.Host = g.Host
	}
	if g.StrictStatus {
		cfg.Registry.StrictStatus = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (r *runner) resolveCredential(opts query.Options) (credential.Credential, error) {
	env, err := r.environment()
	if err != nil {
		return credential.Credential{}, fmt.Errorf("failed to read credential environment: %w", err)
	}

	cred, err := credential.NewResolver(env).Resolve(opts.CertPath, opts.KeyPath)
	if err != nil {
		return credential.Credential{}, err
	}
	zap.S().Debugw("resolved credential", "source", cred.Source, "cert", cred.CertPath, "key", cred.KeyPath)
	return cred, nil
}
