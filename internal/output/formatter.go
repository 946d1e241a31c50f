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
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	qerrors "github.com/sirseerhq/topology-query/internal/errors"
	"go.uber.org/zap"
)

// Builtin selects XMLFormatter regardless of what is on PATH.
const Builtin = "builtin"

// NewFormatter returns an ExecFormatter for command when it can be found on
// PATH, and XMLFormatter otherwise.
func NewFormatter(command string) Formatter {
	if command == "" || command == Builtin {
		return &XMLFormatter{Indent: "\t"}
	}
	path, err := exec.LookPath(command)
	if err != nil {
		zap.S().Debugf("%s not found on PATH, using builtin formatter", command)
		return &XMLFormatter{Indent: "\t"}
	}
	return NewExecFormatter(path)
}

// ExecFormatter pipes the document through an external program, xmllint by
// default.
type ExecFormatter struct {
	Path string
	Args []string
	Env  []string
}

// NewExecFormatter configures path as an xmllint-compatible formatter with
// tab indentation.
func NewExecFormatter(path string) *ExecFormatter {
	return &ExecFormatter{
		Path: path,
		Args: []string{"--format", "-"},
		Env:  []string{"XMLLINT_INDENT=\t"},
	}
}

// Name implements Formatter.
func (f *ExecFormatter) Name() string {
	return f.Path
}

// Format implements Formatter.
func (f *ExecFormatter) Format(ctx context.Context, text string) (string, error) {
	cmd := exec.CommandContext(ctx, f.Path, f.Args...) // #nosec G204 - formatter is user-configurable
	cmd.Stdin = strings.NewReader(text)
	cmd.Env = append(os.Environ(), f.Env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%s: %s: %w", f.Path, msg, qerrors.ErrFormat)
	}
	return stdout.String(), nil
}

// XMLFormatter re-indents a document with encoding/xml. Whitespace-only
// text between elements is dropped; all other content is kept.
type XMLFormatter struct {
	Indent string
}

// Name implements Formatter.
func (f *XMLFormatter) Name() string {
	return Builtin
}

// Format implements Formatter.
func (f *XMLFormatter) Format(_ context.Context, text string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	dec.Strict = true

	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", f.Indent)

	depth := 0
	first := true
	sawRoot := false
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("malformed XML: %v: %w", err, qerrors.ErrFormat)
		}

		switch t := tok.(type) {
		case xml.ProcInst:
			// The encoder puts the root on the same line as the declaration
			if first && t.Target == "xml" {
				fmt.Fprintf(&buf, "<?xml %s?>\n", t.Inst)
				first = false
				continue
			}
		case xml.CharData:
			if len(bytes.TrimSpace(t)) == 0 {
				first = false
				continue
			}
		case xml.StartElement:
			tok = flattenStart(t)
			depth++
			sawRoot = true
		case xml.EndElement:
			tok = xml.EndElement{Name: flattenName(t.Name)}
			depth--
		}
		first = false

		if err := enc.EncodeToken(tok); err != nil {
			return "", fmt.Errorf("re-encoding XML: %v: %w", err, qerrors.ErrFormat)
		}
	}

	if depth != 0 || !sawRoot {
		return "", fmt.Errorf("malformed XML: unexpected end of document: %w", qerrors.ErrFormat)
	}
	if err := enc.Flush(); err != nil {
		return "", fmt.Errorf("re-encoding XML: %v: %w", err, qerrors.ErrFormat)
	}
	buf.WriteByte('\n')
	return buf.String(), nil
}

// flattenName keeps a namespace prefix as part of the local name so the
// encoder writes it back verbatim instead of inventing xmlns attributes.
func flattenName(n xml.Name) xml.Name {
	if n.Space == "" {
		return n
	}
	return xml.Name{Local: n.Space + ":" + n.Local}
}

func flattenStart(s xml.StartElement) xml.StartElement {
	out := xml.StartElement{Name: flattenName(s.Name)}
	for _, a := range s.Attr {
		out.Attr = append(out.Attr, xml.Attr{Name: flattenName(a.Name), Value: a.Value})
	}
	return out
}

// FormatAndWrite pretty-prints text with f and writes it to w.
func FormatAndWrite(ctx context.Context, f Formatter, w OutputWriter, text string) error {
	formatted, err := f.Format(ctx, text)
	if err != nil {
		return err
	}
	zap.S().Debugw("formatted report", "formatter", f.Name(), "bytes", len(formatted))
	return w.Write(formatted)
}
