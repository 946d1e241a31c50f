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
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	qerrors "github.com/sirseerhq/topology-query/internal/errors"
	"github.com/sirseerhq/topology-query/internal/version"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := newRootCommand(newRunner())

	if err := rootCmd.Execute(); err != nil {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Fprintf(color.Error, "%s %v\n", red("Error:"), err)
		os.Exit(mapErrorToExitCode(err))
	}
}

func newRootCommand(r *runner) *cobra.Command {
	global := DefaultGlobalOptions()

	rootCmd := &cobra.Command{
		Use:   "topoquery",
		Short: "Query the OSG topology registry",
		Long: `topoquery builds report URLs for the OSG topology registry, fetches them
(optionally presenting an X.509 client certificate) and prints the XML
response pretty-printed on stdout or to a file.

Reports: miscuser, miscproject, rgdowntime, rgsummary, vosummary.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	global.Bind(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newMiscUserCommand(r, global),
		newMiscProjectCommand(r, global),
		newRGDowntimeCommand(r, global),
		newRGSummaryCommand(r, global),
		newVOSummaryCommand(r, global),
	)

	return rootCmd
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, qerrors.ErrCredentialNotFound) ||
		errors.Is(err, qerrors.ErrAuthenticationRequired) {
		return 2 // Credential/authentication errors
	}

	if errors.Is(err, qerrors.ErrNetworkFailure) ||
		errors.Is(err, qerrors.ErrHTTPStatus) {
		return 3 // Network errors
	}

	if errors.Is(err, qerrors.ErrFormat) {
		return 4
	}

	return 1 // General error, including invalid options
}
