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

// Package output pretty-prints registry XML and writes it to its
// destination.
//
// Formatting is delegated to xmllint(1) with tab indentation when it is on
// PATH. Otherwise XMLFormatter re-indents the document with encoding/xml.
//
// Example usage:
//
//	w, err := output.NewFileWriter("rgsummary.xml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	if err := output.FormatAndWrite(ctx, output.NewFormatter("xmllint"), w, body); err != nil {
//	    log.Fatal(err)
//	}
package output
