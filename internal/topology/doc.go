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

// Package topology retrieves reports from the grid topology registry.
//
// The package includes:
//   - A Client interface with a single Fetch operation
//   - HTTPClient, which speaks plain HTTPS or mutual TLS when given a credential
//   - MockClient for testing
//
// Basic usage:
//
//	client := topology.NewHTTPClient(cfg.Registry)
//	body, err := client.Fetch(ctx, "https://topology.opensciencegrid.org/vosummary/xml", nil)
//	if err != nil {
//	    // Handle error
//	}
//
// Responses are returned regardless of HTTP status unless the registry
// config enables strict_status.
package topology
