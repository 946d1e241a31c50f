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
	"strconv"
	"strings"

	qerrors "github.com/sirseerhq/topology-query/internal/errors"
)

const allResources = "all_resources"

// triStateParams names the parameters one tri-state filter controls.
type triStateParams struct {
	name       string
	enable     string
	noKey      string
	noValue    string
	onlyKey    string
	onlyValue  string
	valueFlags []string
}

var (
	inactiveResourcesParams = triStateParams{
		name: "show-inactive-resources", enable: "active",
		noKey: "active_value", noValue: "1",
		onlyKey: "active_value", onlyValue: "0",
		valueFlags: []string{"active_value"},
	}
	itbParams = triStateParams{
		name: "show-itb", enable: "gridtype",
		noKey: "gridtype_1", noValue: "on",
		onlyKey: "gridtype_2", onlyValue: "on",
		valueFlags: []string{"gridtype_1", "gridtype_2"},
	}
	disabledResourcesParams = triStateParams{
		name: "show-disabled-resources", enable: "disable",
		noKey: "disable_value", noValue: "0",
		onlyKey: "disable_value", onlyValue: "1",
		valueFlags: []string{"disable_value"},
	}
	inactiveVOParams = triStateParams{
		name: "show-inactive", enable: "active",
		noKey: "active_value", noValue: "1",
		onlyKey: "active_value", onlyValue: "0",
		valueFlags: []string{"active_value"},
	}
)

// listFilter is an identifier selector such as facility_sel[].
type listFilter struct {
	category        string
	popAllResources bool
}

func (f listFilter) selector() string {
	return f.category + "_sel[]"
}

var (
	facilityFilter = listFilter{category: "facility", popAllResources: true}
	rgFilter       = listFilter{category: "rg", popAllResources: true}
	serviceFilter  = listFilter{category: "service"}
	siteFilter     = listFilter{category: "site", popAllResources: true}
	scFilter       = listFilter{category: "sc", popAllResources: true}
	voownFilter    = listFilter{category: "voown"}
)

// resourceSummaryAttrs are requested on every resource-group report.
var resourceSummaryAttrs = []string{
	"summary_attrs_showhierarchy",
	"summary_attrs_showwlcg",
	"summary_attrs_showservice",
	"summary_attrs_showfqdn",
	"summary_attrs_showvoownership",
	"summary_attrs_showcontact",
	"gip_status_attrs_showtestresults",
	"gip_status_attrs_showfqdn",
}

var voSummaryAttrs = []string{
	"summary_attrs_showdesc",
	"summary_attrs_showmodified_date",
	"summary_attrs_showfield_of_science",
	"summary_attrs_showreporting_group",
	"summary_attrs_showparent_vo",
	"summary_attrs_showcontact",
	"summary_attrs_showoasis",
}

// applyTriState writes the parameters for one tri-state filter.
func applyTriState(p *Params, ts triStateParams, value TriState) error {
	for _, k := range ts.valueFlags {
		p.Del(k)
	}
	switch value {
	case Only:
		p.Set(ts.enable, "on")
		p.Set(ts.onlyKey, ts.onlyValue)
	case No:
		p.Set(ts.enable, "on")
		p.Set(ts.noKey, ts.noValue)
	case Yes:
		p.Del(ts.enable)
	default:
		return fmt.Errorf("--%s: unrecognized value %q: %w", ts.name, string(value), qerrors.ErrInvalidOption)
	}
	return nil
}

// applyListFilter enables a selector category and appends one entry per id.
func applyListFilter(p *Params, f listFilter, ids []int) {
	if len(ids) == 0 {
		return
	}
	p.Set(f.category, "on")
	for _, id := range ids {
		p.Add(f.selector(), strconv.Itoa(id))
	}
	if f.popAllResources {
		p.Del(allResources)
	}
}

func endpoint(base string, report Report) string {
	return strings.TrimRight(base, "/") + "/" + string(report) + "/xml"
}

func withQuery(u string, p *Params) string {
	if p.Len() == 0 {
		return u
	}
	return u + "?" + p.Encode()
}

func resourceBase() *Params {
	p := &Params{}
	for _, attr := range resourceSummaryAttrs {
		p.Set(attr, "on")
	}
	p.Set(allResources, "on")
	return p
}

// BuildMiscUser returns the URL of the user contact report. The registry
// only serves it to authenticated clients.
func BuildMiscUser(opts Options, base string) (string, error) {
	if !opts.Auth {
		return "", fmt.Errorf("%s report needs --auth: %w", MiscUser, qerrors.ErrAuthenticationRequired)
	}
	return endpoint(base, MiscUser), nil
}

// BuildMiscProject returns the URL of the project report.
func BuildMiscProject(_ Options, base string) (string, error) {
	p := &Params{}
	p.Set("count_active", "on")
	p.Set("count_enabled", "on")
	p.Set("count_sc_all", "on")
	return withQuery(endpoint(base, MiscProject), p), nil
}

// BuildRGDowntime returns the URL of the resource group downtime report.
// PastDays is passed through untouched; the registry accepts a day count,
// an empty string, or "all".
func BuildRGDowntime(opts Options, base string) (string, error) {
	p := resourceBase()
	p.Set("downtime_attrs_showpast", opts.PastDays)
	return withQuery(endpoint(base, RGDowntime), p), nil
}

// BuildRGSummary returns the URL of the resource group summary report.
func BuildRGSummary(opts Options, base string) (string, error) {
	p := resourceBase()

	applyListFilter(p, facilityFilter, opts.Facilities)
	applyListFilter(p, rgFilter, opts.ResourceGroups)
	applyListFilter(p, serviceFilter, opts.Services)
	applyListFilter(p, siteFilter, opts.Sites)
	applyListFilter(p, scFilter, opts.SupportCenters)
	applyListFilter(p, voownFilter, opts.VOOwners)

	if opts.WLCG {
		p.Set("has_wlcg", "on")
	}

	if err := applyTriState(p, inactiveResourcesParams, opts.ShowInactiveResources); err != nil {
		return "", err
	}
	if err := applyTriState(p, itbParams, opts.ShowITB); err != nil {
		return "", err
	}
	if err := applyTriState(p, disabledResourcesParams, opts.ShowDisabledResources); err != nil {
		return "", err
	}

	return withQuery(endpoint(base, RGSummary), p), nil
}

// BuildVOSummary returns the URL of the virtual organization summary report.
func BuildVOSummary(opts Options, base string) (string, error) {
	p := &Params{}
	for _, attr := range voSummaryAttrs {
		p.Set(attr, "on")
	}
	p.Set("all_vos", "on")

	if err := applyTriState(p, inactiveVOParams, opts.ShowInactiveVOs); err != nil {
		return "", err
	}
	return withQuery(endpoint(base, VOSummary), p), nil
}

// Builder turns Options into a report URL rooted at base.
type Builder func(opts Options, base string) (string, error)

var builders = map[Report]Builder{
	MiscUser:    BuildMiscUser,
	MiscProject: BuildMiscProject,
	RGDowntime:  BuildRGDowntime,
	RGSummary:   BuildRGSummary,
	VOSummary:   BuildVOSummary,
}

// Build selects the builder for opts.Report and runs it.
func Build(opts Options, base string) (string, error) {
	b, ok := builders[opts.Report]
	if !ok {
		return "", fmt.Errorf("unknown report %q: %w", string(opts.Report), qerrors.ErrInvalidOption)
	}
	return b(opts, base)
}
