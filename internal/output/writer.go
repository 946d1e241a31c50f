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

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Writer writes formatted documents to a file or io.Writer.
type Writer struct {
	mu        sync.Mutex
	output    io.Writer
	count     int
	closeFunc func() error
}

// NewWriter creates a new writer that writes to the specified output.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		output: w,
	}
}

// NewFileWriter creates a new writer that writes to a file.
// The caller must call Close() when done to ensure the file is properly closed.
func NewFileWriter(filename string) (*Writer, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &Writer{
		output:    file,
		closeFunc: file.Close,
	}, nil
}

// Write writes text, adding a trailing newline if it lacks one.
func (w *Writer) Write(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	n, err := io.WriteString(w.output, text)
	w.count += n
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Count returns the number of bytes written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close closes the underlying writer if it's a file. Later calls are no-ops.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closeFunc != nil {
		err := w.closeFunc()
		w.closeFunc = nil
		return err
	}
	return nil
}
