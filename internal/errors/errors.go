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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrCredentialNotFound indicates the resolved certificate or key file
	// does not exist or could not be loaded.
	// Maps to exit code 2.
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrAuthenticationRequired indicates an endpoint that only serves
	// authenticated clients was invoked without --auth.
	// Maps to exit code 2.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrInvalidOption indicates a flag value outside its allowed set.
	// Maps to exit code 1.
	ErrInvalidOption = errors.New("invalid option")

	// ErrNetworkFailure indicates a transport problem (DNS, TLS handshake, reset).
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrHTTPStatus indicates a non-2xx response while strict status checking is on.
	// Maps to exit code 3.
	ErrHTTPStatus = errors.New("unexpected http status")

	// ErrFormat indicates the XML pretty-printer failed.
	// Maps to exit code 4.
	ErrFormat = errors.New("format failed")
)
