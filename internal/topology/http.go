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

package topology

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirseerhq/topology-query/internal/config"
	"github.com/sirseerhq/topology-query/internal/credential"
	qerrors "github.com/sirseerhq/topology-query/internal/errors"
	"github.com/sirseerhq/topology-query/internal/neterror"
	"go.uber.org/zap"
)

// HTTPClient implements Client over net/http with optional mutual TLS.
type HTTPClient struct {
	timeout      time.Duration
	strictStatus bool
	maxBytes     int64
	rootCAs      *x509.CertPool
	inspector    neterror.Inspector
}

// Option customizes an HTTPClient.
type Option func(*HTTPClient)

// WithRootCAs replaces the system trust store, e.g. for a private registry
// or a test server.
func WithRootCAs(pool *x509.CertPool) Option {
	return func(c *HTTPClient) {
		c.rootCAs = pool
	}
}

// NewHTTPClient creates a client configured from cfg:
//   - a per-request timeout of cfg.Timeout
//   - a response size cap of cfg.MaxResponseBytes
//   - status code checking only when cfg.StrictStatus is set
func NewHTTPClient(cfg config.RegistryConfig, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		timeout:      cfg.Timeout,
		strictStatus: cfg.StrictStatus,
		maxBytes:     cfg.MaxResponseBytes,
		inspector:    neterror.NewInspector(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves url and returns the body as text. Without strict status
// checking the body is returned for any status code.
func (c *HTTPClient) Fetch(ctx context.Context, url string, cred *credential.Credential) (string, error) {
	httpClient, err := c.httpClient(cred)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for %s: %w", url, err)
	}

	start := time.Now()
	resp, body, err := c.do(httpClient, req)
	if err != nil {
		var tooLarge *responseTooLargeError
		if errors.As(err, &tooLarge) {
			return "", fmt.Errorf("reading %s: %w", url, err)
		}
		return "", c.mapError(err, url)
	}

	zap.S().Debugw("registry response",
		"url", url,
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if c.strictStatus {
			return "", fmt.Errorf("GET %s returned %s: %w", url, resp.Status, qerrors.ErrHTTPStatus)
		}
		zap.S().Warnf("registry returned %s, passing body through", resp.Status)
	}

	return string(body), nil
}

// do sends req and reads the whole body.
func (c *HTTPClient) do(httpClient *http.Client, req *http.Request) (*http.Response, []byte, error) {
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	return resp, body, nil
}

func (c *HTTPClient) httpClient(cred *credential.Credential) (*http.Client, error) {
	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
		RootCAs:    c.rootCAs,
	}

	if cred != nil {
		pair, err := tls.LoadX509KeyPair(cred.CertPath, cred.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load certificate %s and key %s: %v: %w",
				cred.CertPath, cred.KeyPath, err, qerrors.ErrCredentialNotFound)
		}
		tlsConfig.Certificates = []tls.Certificate{pair}
		zap.S().Debugw("presenting client certificate", "cert", cred.CertPath, "key", cred.KeyPath, "source", cred.Source)
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		TLSClientConfig:     tlsConfig,
		TLSHandshakeTimeout: 10 * time.Second,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &http.Client{
		Timeout: c.timeout,
		Transport: &userAgentTransport{
			base:     transport,
			maxBytes: c.maxBytes,
		},
	}, nil
}

// mapError classifies transport failures. Every error from the HTTP client
// is a transport failure; the inspector only picks the message.
func (c *HTTPClient) mapError(err error, url string) error {
	if c.inspector.IsTimeout(err) {
		return fmt.Errorf("request to %s timed out after %s: %v: %w", url, c.timeout, err, qerrors.ErrNetworkFailure)
	}

	if c.inspector.IsTLSError(err) {
		return fmt.Errorf("TLS handshake with %s failed: %v: %w", url, err, qerrors.ErrNetworkFailure)
	}

	if c.inspector.IsNetworkError(err) {
		return fmt.Errorf("network error connecting to %s. Please check your connection and try again: %v: %w", url, err, qerrors.ErrNetworkFailure)
	}

	return fmt.Errorf("GET %s failed: %v: %w", url, err, qerrors.ErrNetworkFailure)
}
