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
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirseerhq/topology-query/internal/config"
	"github.com/sirseerhq/topology-query/internal/credential"
	qerrors "github.com/sirseerhq/topology-query/internal/errors"
	"github.com/sirseerhq/topology-query/internal/output"
	"github.com/sirseerhq/topology-query/internal/topology"
)

const testHost = "https://registry.test"

// testRunner wires a runner to mock and to a fake credential environment in
// which only the per-user proxy exists.
func testRunner(t *testing.T, mock *topology.MockClient) (*runner, *bytes.Buffer) {
	t.Helper()

	for _, k := range []string{"TOPOQUERY_HOST", "TOPOQUERY_TIMEOUT", "TOPOQUERY_FORMATTER", "TOPOQUERY_STRICT_STATUS"} {
		t.Setenv(k, "")
	}

	stdout := &bytes.Buffer{}
	proxy := credential.ProxyPath(1000)
	r := &runner{
		stdout: stdout,
		newClient: func(cfg config.RegistryConfig) topology.Client {
			return mock
		},
		environment: func() (credential.Environment, error) {
			return credential.Environment{
				EUID:    1000,
				HomeDir: t.TempDir(),
				Exists:  func(p string) bool { return p == proxy },
			}, nil
		},
		newFormatter: output.NewFormatter,
	}
	return r, stdout
}

// execute runs the CLI with a config file selecting the test host and the
// builtin formatter.
func execute(t *testing.T, r *runner, args ...string) error {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := fmt.Sprintf("registry:\n  host: %s\noutput:\n  formatter: builtin\n", testHost)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	root := newRootCommand(r)
	root.SetArgs(append([]string{"--config", configPath}, args...))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}

func parseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("url.Parse(%q) error = %v", raw, err)
	}
	return u
}

func TestRun_RGSummary(t *testing.T) {
	mock := topology.NewMockClient()
	r, stdout := testRunner(t, mock)

	if err := execute(t, r, "rgsummary", "--facility", "10023", "--facility", "10024", "--show-itb", "only"); err != nil {
		t.Fatalf("execute() error = %v", err)
	}

	if mock.CallCount != 1 {
		t.Fatalf("Fetch called %d times, want 1", mock.CallCount)
	}
	if mock.LastCredential != nil {
		t.Errorf("credential presented without --auth: %+v", mock.LastCredential)
	}

	u := parseURL(t, mock.LastURL)
	if got, want := u.Scheme+"://"+u.Host+u.Path, testHost+"/rgsummary/xml"; got != want {
		t.Errorf("endpoint = %q, want %q", got, want)
	}
	q := u.Query()
	if got := q["facility_sel[]"]; len(got) != 2 || got[0] != "10023" || got[1] != "10024" {
		t.Errorf("facility_sel[] = %v, want [10023 10024]", got)
	}
	if q.Has("all_resources") {
		t.Error("all_resources kept alongside a facility filter")
	}
	if q.Get("gridtype") != "on" || q.Get("gridtype_2") != "on" || q.Has("gridtype_1") {
		t.Errorf("ITB params = %v", q)
	}

	out := stdout.String()
	if !strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`+"\n<ResourceSummary>\n\t<ResourceGroup>") {
		t.Errorf("output not indented:\n%s", out)
	}
}

func TestRun_VOSummary(t *testing.T) {
	mock := topology.NewMockClientWithOptions(topology.WithBody("<VOSummary><VO><Name>osg</Name></VO></VOSummary>"))
	r, stdout := testRunner(t, mock)

	if err := execute(t, r, "vosummary", "--show-inactive", "no"); err != nil {
		t.Fatalf("execute() error = %v", err)
	}

	q := parseURL(t, mock.LastURL).Query()
	if q.Get("all_vos") != "on" || q.Get("active") != "on" || q.Get("active_value") != "1" {
		t.Errorf("vosummary params = %v", q)
	}

	want := "<VOSummary>\n\t<VO>\n\t\t<Name>osg</Name>\n\t</VO>\n</VOSummary>\n"
	if got := stdout.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRun_RGDowntimePastDays(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "default", args: nil, want: "730"},
		{name: "explicit", args: []string{"--past-days", "30"}, want: "30"},
		{name: "all", args: []string{"--past-days", "all"}, want: "all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := topology.NewMockClient()
			r, _ := testRunner(t, mock)

			if err := execute(t, r, append([]string{"rgdowntime"}, tt.args...)...); err != nil {
				t.Fatalf("execute() error = %v", err)
			}
			if got := parseURL(t, mock.LastURL).Query().Get("downtime_attrs_showpast"); got != tt.want {
				t.Errorf("downtime_attrs_showpast = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRun_MiscUserRequiresAuth(t *testing.T) {
	mock := topology.NewMockClient()
	r, stdout := testRunner(t, mock)

	err := execute(t, r, "miscuser")
	if !errors.Is(err, qerrors.ErrAuthenticationRequired) {
		t.Fatalf("execute() error = %v, want ErrAuthenticationRequired", err)
	}
	if mock.CallCount != 0 {
		t.Errorf("Fetch called %d times, want 0", mock.CallCount)
	}
	if stdout.Len() != 0 {
		t.Errorf("unexpected output %q", stdout.String())
	}
	if code := mapErrorToExitCode(err); code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}

func TestRun_AuthPresentsCredential(t *testing.T) {
	mock := topology.NewMockClient()
	r, _ := testRunner(t, mock)

	if err := execute(t, r, "--auth", "miscuser"); err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if mock.LastURL != testHost+"/miscuser/xml" {
		t.Errorf("LastURL = %q", mock.LastURL)
	}
	if mock.LastCredential == nil {
		t.Fatal("no credential presented with --auth")
	}
	if want := credential.ProxyPath(1000); mock.LastCredential.CertPath != want || mock.LastCredential.KeyPath != want {
		t.Errorf("credential = %+v, want proxy %s", mock.LastCredential, want)
	}
}

func TestRun_AuthOverridePair(t *testing.T) {
	dir := t.TempDir()
	cert := filepath.Join(dir, "cert.pem")
	key := filepath.Join(dir, "key.pem")

	mock := topology.NewMockClient()
	r, _ := testRunner(t, mock)
	r.environment = func() (credential.Environment, error) {
		return credential.Environment{
			EUID:   1000,
			Exists: func(p string) bool { return p == cert || p == key },
		}, nil
	}

	if err := execute(t, r, "--auth", "--cert", cert, "--key", key, "miscproject"); err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if mock.LastCredential == nil || mock.LastCredential.CertPath != cert || mock.LastCredential.KeyPath != key {
		t.Errorf("credential = %+v, want %s/%s", mock.LastCredential, cert, key)
	}

	err := execute(t, r, "--auth", "--cert", cert, "miscproject")
	if !errors.Is(err, qerrors.ErrInvalidOption) {
		t.Errorf("partial override error = %v, want ErrInvalidOption", err)
	}
}

func TestRun_CredentialMissing(t *testing.T) {
	mock := topology.NewMockClient()
	r, _ := testRunner(t, mock)
	r.environment = func() (credential.Environment, error) {
		return credential.Environment{
			EUID:    1000,
			HomeDir: "/nonexistent",
			Exists:  func(string) bool { return false },
		}, nil
	}

	err := execute(t, r, "--auth", "rgsummary")
	if !errors.Is(err, qerrors.ErrCredentialNotFound) {
		t.Fatalf("execute() error = %v, want ErrCredentialNotFound", err)
	}
	if mock.CallCount != 0 {
		t.Errorf("Fetch called %d times, want 0", mock.CallCount)
	}
}

func TestRun_InvalidChoice(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "itb", args: []string{"rgsummary", "--show-itb", "maybe"}},
		{name: "disabled", args: []string{"rgsummary", "--show-disabled-resources", "YES"}},
		{name: "vo inactive", args: []string{"vosummary", "--show-inactive", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := topology.NewMockClient()
			r, _ := testRunner(t, mock)

			err := execute(t, r, tt.args...)
			if !errors.Is(err, qerrors.ErrInvalidOption) {
				t.Fatalf("execute() error = %v, want ErrInvalidOption", err)
			}
			if mock.CallCount != 0 {
				t.Errorf("Fetch called %d times, want 0", mock.CallCount)
			}
		})
	}
}

func TestRun_HostFlagOverridesConfig(t *testing.T) {
	mock := topology.NewMockClient()
	r, _ := testRunner(t, mock)

	if err := execute(t, r, "--host", "https://mirror.test/", "miscproject"); err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if !strings.HasPrefix(mock.LastURL, "https://mirror.test/miscproject/xml?") {
		t.Errorf("LastURL = %q", mock.LastURL)
	}

	err := execute(t, r, "--host", "ftp://mirror.test", "miscproject")
	if err == nil || mapErrorToExitCode(err) != 1 {
		t.Errorf("invalid host error = %v, want general error", err)
	}
}

func TestRun_OutputFile(t *testing.T) {
	mock := topology.NewMockClient()
	r, stdout := testRunner(t, mock)
	outPath := filepath.Join(t.TempDir(), "rgsummary.xml")

	if err := execute(t, r, "--out", outPath, "rgsummary"); err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout should be empty with --out, got %q", stdout.String())
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !strings.Contains(string(data), "\t\t<GroupName>UCHICAGO</GroupName>\n") {
		t.Errorf("output file not formatted:\n%s", data)
	}
}

func TestRun_Failures(t *testing.T) {
	tests := []struct {
		name     string
		mock     *topology.MockClient
		wantErr  error
		wantCode int
	}{
		{
			name:     "network failure",
			mock:     topology.NewMockClientWithOptions(topology.WithNetworkFailure()),
			wantErr:  qerrors.ErrNetworkFailure,
			wantCode: 3,
		},
		{
			name:     "http status",
			mock:     topology.NewMockClientWithOptions(topology.WithError(fmt.Errorf("GET returned 403: %w", qerrors.ErrHTTPStatus))),
			wantErr:  qerrors.ErrHTTPStatus,
			wantCode: 3,
		},
		{
			name:     "malformed body",
			mock:     topology.NewMockClientWithOptions(topology.WithBody("<ResourceSummary><ResourceGroup>")),
			wantErr:  qerrors.ErrFormat,
			wantCode: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := testRunner(t, tt.mock)

			err := execute(t, r, "miscproject")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("execute() error = %v, want %v", err, tt.wantErr)
			}
			if code := mapErrorToExitCode(err); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
		})
	}
}

func TestRun_BadListFilter(t *testing.T) {
	mock := topology.NewMockClient()
	r, _ := testRunner(t, mock)

	err := execute(t, r, "rgsummary", "--rg", "abc")
	if err == nil {
		t.Fatal("expected error for non-integer --rg")
	}
	if code := mapErrorToExitCode(err); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestMapErrorToExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "nil error",
			err:      nil,
			wantCode: 0,
		},
		{
			name:     "general error",
			err:      os.ErrClosed,
			wantCode: 1,
		},
		{
			name:     "invalid option",
			err:      fmt.Errorf("--show-itb: %w", qerrors.ErrInvalidOption),
			wantCode: 1,
		},
		{
			name:     "credential not found",
			err:      fmt.Errorf("cert: %w", qerrors.ErrCredentialNotFound),
			wantCode: 2,
		},
		{
			name:     "authentication required",
			err:      qerrors.ErrAuthenticationRequired,
			wantCode: 2,
		},
		{
			name:     "network failure",
			err:      fmt.Errorf("dial: %w", qerrors.ErrNetworkFailure),
			wantCode: 3,
		},
		{
			name:     "http status",
			err:      qerrors.ErrHTTPStatus,
			wantCode: 3,
		},
		{
			name:     "format",
			err:      fmt.Errorf("xmllint: %w", qerrors.ErrFormat),
			wantCode: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapErrorToExitCode(tt.err)
			if got != tt.wantCode {
				t.Errorf("mapErrorToExitCode(%v) = %d, want %d", tt.err, got, tt.wantCode)
			}
		})
	}
}
