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

// Package credential locates the X.509 certificate and key used for
// authenticated registry requests.
//
// Lookup order, first match wins:
//  1. --cert and --key given together
//  2. $X509_USER_PROXY (combined cert+key file)
//  3. host credentials under /etc/grid-security when running as root
//  4. /tmp/x509up_u<uid> if it exists (combined cert+key file)
//  5. $X509_USER_CERT / $X509_USER_KEY, defaulting to ~/.globus/usercert.pem
//     and ~/.globus/userkey.pem
//
// The resolver never touches process state directly; it reads an
// Environment, which SystemEnvironment fills from the running process.
package credential

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kelseyhightower/envconfig"
	qerrors "github.com/sirseerhq/topology-query/internal/errors"
)

const (
	HostCertPath = "/etc/grid-security/hostcert.pem"
	HostKeyPath  = "/etc/grid-security/hostkey.pem"

	proxyDir = "/tmp"
)

// Source names where a credential came from, for logging.
type Source string

const (
	SourceFlags     Source = "flags"
	SourceEnvProxy  Source = "X509_USER_PROXY"
	SourceHost      Source = "host"
	SourceUserProxy Source = "user-proxy"
	SourceUserCert  Source = "user-cert"
)

// Credential is a certificate/key pair on disk. For proxies both paths
// name the same file.
type Credential struct {
	CertPath string
	KeyPath  string
	Source   Source
}

// Env holds the credential-related environment variables.
type Env struct {
	UserProxy string `envconfig:"X509_USER_PROXY"`
	UserCert  string `envconfig:"X509_USER_CERT"`
	UserKey   string `envconfig:"X509_USER_KEY"`
}

// LoadEnv reads Env from the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := envconfig.Process("", &e); err != nil {
		return Env{}, fmt.Errorf("failed to read credential environment: %w", err)
	}
	return e, nil
}

// Environment is everything the resolver consults.
type Environment struct {
	Env     Env
	EUID    int
	HomeDir string
	Exists  func(path string) bool
}

// SystemEnvironment builds an Environment from the running process.
func SystemEnvironment() (Environment, error) {
	env, err := LoadEnv()
	if err != nil {
		return Environment{}, err
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Only the dotfile fallback needs it
		home = ""
	}
	return Environment{
		Env:     env,
		EUID:    os.Geteuid(),
		HomeDir: home,
		Exists:  fileExists,
	}, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Resolver picks a credential according to the package lookup order.
type Resolver struct {
	env Environment
}

// NewResolver returns a Resolver reading env.
func NewResolver(env Environment) *Resolver {
	if env.Exists == nil {
		env.Exists = fileExists
	}
	return &Resolver{env: env}
}

// ProxyPath returns the per-user proxy location for uid.
func ProxyPath(uid int) string {
	return filepath.Join(proxyDir, "x509up_u"+strconv.Itoa(uid))
}

// Resolve returns the credential to present. Overrides must be given as a
// pair. The returned paths are checked for existence.
func (r *Resolver) Resolve(certOverride, keyOverride string) (Credential, error) {
	cred, err := r.locate(certOverride, keyOverride)
	if err != nil {
		return Credential{}, err
	}
	if !r.env.Exists(cred.CertPath) {
		return Credential{}, fmt.Errorf("certificate %s (from %s) does not exist: %w", cred.CertPath, cred.Source, qerrors.ErrCredentialNotFound)
	}
	if cred.KeyPath != cred.CertPath && !r.env.Exists(cred.KeyPath) {
		return Credential{}, fmt.Errorf("key %s (from %s) does not exist: %w", cred.KeyPath, cred.Source, qerrors.ErrCredentialNotFound)
	}
	return cred, nil
}

func (r *Resolver) locate(certOverride, keyOverride string) (Credential, error) {
	switch {
	case certOverride != "" && keyOverride != "":
		return Credential{CertPath: certOverride, KeyPath: keyOverride, Source: SourceFlags}, nil
	case certOverride != "":
		return Credential{}, fmt.Errorf("--cert given without --key: %w", qerrors.ErrInvalidOption)
	case keyOverride != "":
		return Credential{}, fmt.Errorf("--key given without --cert: %w", qerrors.ErrInvalidOption)
	}

	if proxy := r.env.Env.UserProxy; proxy != "" {
		return Credential{CertPath: proxy, KeyPath: proxy, Source: SourceEnvProxy}, nil
	}

	if r.env.EUID == 0 {
		return Credential{CertPath: HostCertPath, KeyPath: HostKeyPath, Source: SourceHost}, nil
	}

	if proxy := ProxyPath(r.env.EUID); r.env.Exists(proxy) {
		return Credential{CertPath: proxy, KeyPath: proxy, Source: SourceUserProxy}, nil
	}

	cert := r.env.Env.UserCert
	if cert == "" {
		cert = filepath.Join(r.env.HomeDir, ".globus", "usercert.pem")
	}
	key := r.env.Env.UserKey
	if key == "" {
		key = filepath.Join(r.env.HomeDir, ".globus", "userkey.pem")
	}
	return Credential{CertPath: cert, KeyPath: key, Source: SourceUserCert}, nil
}
