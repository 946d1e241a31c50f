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
	"fmt"
	"strings"

	qerrors "github.com/sirseerhq/topology-query/internal/errors"
	"github.com/thoas/go-funk"
)

// TriState controls whether a class of entries is included, excluded, or
// exclusively selected.
type TriState string

const (
	Yes  TriState = "yes"
	No   TriState = "no"
	Only TriState = "only"
)

// TriStateValues lists the accepted spellings in help-text order.
var TriStateValues = []string{string(Yes), string(No), string(Only)}

// ParseTriState validates s against the allowed set.
func ParseTriState(s string) (TriState, error) {
	if !funk.ContainsString(TriStateValues, s) {
		return "", fmt.Errorf("%q is not one of %s: %w", s, strings.Join(TriStateValues, ", "), qerrors.ErrInvalidOption)
	}
	return TriState(s), nil
}

// Report names one of the registry's XML reports.
type Report string

const (
	MiscUser    Report = "miscuser"
	MiscProject Report = "miscproject"
	RGDowntime  Report = "rgdowntime"
	RGSummary   Report = "rgsummary"
	VOSummary   Report = "vosummary"
)

// Reports lists every supported report.
var Reports = []Report{MiscUser, MiscProject, RGDowntime, RGSummary, VOSummary}

// DefaultPastDays is the downtime history window used when none is given.
const DefaultPastDays = "730"

// Options carries everything parsed from the command line for one request.
// Builders read it and never modify it.
type Options struct {
	Report Report

	Auth     bool
	CertPath string
	KeyPath  string

	Facilities     []int
	ResourceGroups []int
	Services       []int
	Sites          []int
	SupportCenters []int
	VOOwners       []int

	ShowInactiveResources TriState
	ShowITB               TriState
	ShowDisabledResources TriState
	ShowInactiveVOs       TriState

	WLCG     bool
	PastDays string
}

// DefaultOptions returns Options with every choice flag at its default.
func DefaultOptions(report Report) Options {
	return Options{
		Report:                report,
		ShowInactiveResources: Yes,
		ShowITB:               Yes,
		ShowDisabledResources: Yes,
		ShowInactiveVOs:       Yes,
		PastDays:              DefaultPastDays,
	}
}

// ChoiceFlag describes a flag restricted to a fixed set of values.
type ChoiceFlag struct {
	Name    string
	Default string
	Allowed []string
	Usage   string
}

// Validate checks value against the allowed set.
func (c ChoiceFlag) Validate(value string) error {
	if !funk.ContainsString(c.Allowed, value) {
		return fmt.Errorf("--%s must be one of %s, got %q: %w",
			c.Name, strings.Join(c.Allowed, ", "), value, qerrors.ErrInvalidOption)
	}
	return nil
}

// Choice flags per report. The dispatcher registers and validates these at
// the boundary; builders still reject unknown values on their own.
var (
	ShowInactiveResourcesFlag = ChoiceFlag{
		Name: "show-inactive-resources", Default: string(Yes), Allowed: TriStateValues,
		Usage: "Include inactive resources (yes, no, only)",
	}
	ShowITBFlag = ChoiceFlag{
		Name: "show-itb", Default: string(Yes), Allowed: TriStateValues,
		Usage: "Include ITB resources (yes, no, only)",
	}
	ShowDisabledResourcesFlag = ChoiceFlag{
		Name: "show-disabled-resources", Default: string(Yes), Allowed: TriStateValues,
		Usage: "Include disabled resources (yes, no, only)",
	}
	ShowInactiveVOsFlag = ChoiceFlag{
		Name: "show-inactive", Default: string(Yes), Allowed: TriStateValues,
		Usage: "Include inactive VOs (yes, no, only)",
	}
)

// TriStateFlags lists every choice flag, in registration order.
var TriStateFlags = []ChoiceFlag{
	ShowInactiveResourcesFlag,
	ShowITBFlag,
	ShowDisabledResourcesFlag,
	ShowInactiveVOsFlag,
}
