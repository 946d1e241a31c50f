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
	"fmt"

	"github.com/sirseerhq/topology-query/internal/credential"
	qerrors "github.com/sirseerhq/topology-query/internal/errors"
)

// SampleRGSummary is a small, unindented rgsummary payload.
const SampleRGSummary = `<?xml version="1.0" encoding="UTF-8"?><ResourceSummary><ResourceGroup><GroupName>UCHICAGO</GroupName><GroupID>291</GroupID><Facility><Name>University of Chicago</Name><ID>10023</ID></Facility><Resources><Resource><ID>1012</ID><Name>UC_CE</Name><Active>True</Active><Disable>False</Disable></Resource></Resources></ResourceGroup></ResourceSummary>`

// MockClient is a mock implementation of the Client interface for testing.
type MockClient struct {
	// Body to return
	Body string

	// Error to return
	Error error

	// Behavior flags
	ShouldFailNetwork bool

	// Track calls for verification
	CallCount      int
	LastURL        string
	LastCredential *credential.Credential
}

// NewMockClient creates a new mock client returning SampleRGSummary.
func NewMockClient() *MockClient {
	return &MockClient{
		Body: SampleRGSummary,
	}
}

// Fetch implements the Client interface
func (m *MockClient) Fetch(ctx context.Context, url string, cred *credential.Credential) (string, error) {
	m.CallCount++
	m.LastURL = url
	m.LastCredential = cred

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if m.ShouldFailNetwork {
		return "", fmt.Errorf("dial tcp: connection refused: %w", qerrors.ErrNetworkFailure)
	}

	if m.Error != nil {
		return "", m.Error
	}

	return m.Body, nil
}

// MockClientOption allows configuring the mock client
type MockClientOption func(*MockClient)

// WithBody sets the payload to return
func WithBody(body string) MockClientOption {
	return func(m *MockClient) {
		m.Body = body
	}
}

// WithError makes the client return a specific error
func WithError(err error) MockClientOption {
	return func(m *MockClient) {
		m.Error = err
	}
}

// WithNetworkFailure makes the client simulate a transport failure
func WithNetworkFailure() MockClientOption {
	return func(m *MockClient) {
		m.ShouldFailNetwork = true
	}
}

// NewMockClientWithOptions creates a mock client with options
func NewMockClientWithOptions(opts ...MockClientOption) *MockClient {
	mock := NewMockClient()
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}
