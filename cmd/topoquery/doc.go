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

// Package main implements the topoquery command-line interface.
// This tool retrieves XML reports from the grid topology registry and
// pretty-prints them.
//
// The CLI supports:
//   - Five reports: miscuser, miscproject, rgdowntime, rgsummary, vosummary
//   - Anonymous HTTPS or X.509 client certificate authentication (--auth)
//   - Customizable output destinations (stdout or file)
//   - Configuration via YAML file and TOPOQUERY_* environment variables
//
// Usage:
//
//	topoquery [--auth] [--cert FILE --key FILE] [--out FILE] <report> [flags]
//
// Example:
//
//	topoquery --out rgs.xml rgsummary --facility 10023 --show-itb no
//	topoquery --auth miscuser
//
// Exit codes:
//   - 0: Success
//   - 1: General error or invalid option
//   - 2: Credential or authentication error
//   - 3: Network or HTTP status error
//   - 4: Formatting error
package main
