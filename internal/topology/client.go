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

	"github.com/sirseerhq/topology-query/internal/credential"
)

// Client defines the interface for retrieving registry reports.
// This interface allows for easy mocking in tests.
type Client interface {
	// Fetch performs a GET of url and returns the response body. When cred is
	// non-nil it is presented as the TLS client certificate; otherwise the
	// request is anonymous.
	Fetch(ctx context.Context, url string, cred *credential.Credential) (string, error)
}
