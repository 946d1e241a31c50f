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

package query

import (
	"net/url"
	"strings"
)

type param struct {
	key   string
	value string
}

// Params is an ordered list of query parameters. Unlike url.Values it keeps
// insertion order, which the registry relies on for repeated selector keys.
type Params struct {
	entries []param
}

// Set replaces the value of the first entry with key, dropping any later
// duplicates. If key is absent the pair is appended.
func (p *Params) Set(key, value string) {
	for i := range p.entries {
		if p.entries[i].key == key {
			p.entries[i].value = value
			p.removeAfter(i, key)
			return
		}
	}
	p.Add(key, value)
}

// Add appends a key/value pair, keeping existing entries for the same key.
func (p *Params) Add(key, value string) {
	p.entries = append(p.entries, param{key: key, value: value})
}

// Del removes every entry with key.
func (p *Params) Del(key string) {
	kept := p.entries[:0]
	for _, e := range p.entries {
		if e.key != key {
			kept = append(kept, e)
		}
	}
	p.entries = kept
}

// Has reports whether any entry uses key.
func (p *Params) Has(key string) bool {
	for _, e := range p.entries {
		if e.key == key {
			return true
		}
	}
	return false
}

// Values returns every value stored under key, in order.
func (p *Params) Values(key string) []string {
	var out []string
	for _, e := range p.entries {
		if e.key == key {
			out = append(out, e.value)
		}
	}
	return out
}

// Len returns the number of entries.
func (p *Params) Len() int {
	return len(p.entries)
}

// Encode renders the parameters as a query string in insertion order.
// Repeated keys are emitted once per value.
func (p *Params) Encode() string {
	var b strings.Builder
	for i, e := range p.entries {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(e.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(e.value))
	}
	return b.String()
}

func (p *Params) removeAfter(i int, key string) {
	kept := p.entries[:i+1]
	for _, e := range p.entries[i+1:] {
		if e.key != key {
			kept = append(kept, e)
		}
	}
	p.entries = kept
}
