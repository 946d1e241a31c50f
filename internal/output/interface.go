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

package output

import "context"

// OutputWriter defines the interface for writing a formatted report.
type OutputWriter interface {
	// Write writes the document to the output.
	Write(text string) error

	// Close closes the underlying writer and releases any resources.
	// This should be called when all writing is complete.
	Close() error
}

// Formatter pretty-prints an XML document.
type Formatter interface {
	// Format returns text re-indented. Failures wrap errors.ErrFormat.
	Format(ctx context.Context, text string) (string, error)

	// Name identifies the formatter in logs.
	Name() string
}
