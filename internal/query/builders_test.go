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
	"testing"

	qerrors "github.com/sirseerhq/topology-query/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBase = "https://topology.example.org"

func parseQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u.Query()
}

func rawQuery(t *testing.T, raw string) string {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u.RawQuery
}

func TestBuild_Endpoints(t *testing.T) {
	tests := []struct {
		report Report
		auth   bool
		path   string
	}{
		{MiscUser, true, "/miscuser/xml"},
		{MiscProject, false, "/miscproject/xml"},
		{RGDowntime, false, "/rgdowntime/xml"},
		{RGSummary, false, "/rgsummary/xml"},
		{VOSummary, false, "/vosummary/xml"},
	}

	for _, tt := range tests {
		t.Run(string(tt.report), func(t *testing.T) {
			opts := DefaultOptions(tt.report)
			opts.Auth = tt.auth

			got, err := Build(opts, testBase+"/")
			require.NoError(t, err)

			u, err := url.Parse(got)
			require.NoError(t, err)
			assert.Equal(t, "https", u.Scheme)
			assert.Equal(t, "topology.example.org", u.Host)
			assert.Equal(t, tt.path, u.Path)
		})
	}
}

func TestBuild_UnknownReport(t *testing.T) {
	_, err := Build(Options{Report: "rgstatus"}, testBase)
	assert.ErrorIs(t, err, qerrors.ErrInvalidOption)
}

func TestBuildMiscUser_RequiresAuth(t *testing.T) {
	got, err := BuildMiscUser(DefaultOptions(MiscUser), testBase)
	assert.ErrorIs(t, err, qerrors.ErrAuthenticationRequired)
	assert.Empty(t, got)

	opts := DefaultOptions(MiscUser)
	opts.Auth = true
	got, err = BuildMiscUser(opts, testBase)
	require.NoError(t, err)
	assert.Equal(t, testBase+"/miscuser/xml", got)
}

func TestBuildMiscProject_FixedFlags(t *testing.T) {
	got, err := BuildMiscProject(DefaultOptions(MiscProject), testBase)
	require.NoError(t, err)
	assert.Equal(t, testBase+"/miscproject/xml?count_active=on&count_enabled=on&count_sc_all=on", got)
}

func TestBuildRGDowntime_PastDaysVerbatim(t *testing.T) {
	for _, days := range []string{"730", "", "all", "14"} {
		t.Run("past="+days, func(t *testing.T) {
			opts := DefaultOptions(RGDowntime)
			opts.PastDays = days

			got, err := BuildRGDowntime(opts, testBase)
			require.NoError(t, err)

			q := parseQuery(t, got)
			require.Contains(t, q, "downtime_attrs_showpast")
			assert.Equal(t, []string{days}, q["downtime_attrs_showpast"])
			assert.Equal(t, "on", q.Get("all_resources"))
		})
	}
}

func TestBuildRGSummary_TriStates(t *testing.T) {
	tests := []struct {
		name   string
		set    func(o *Options, v TriState)
		params []string
		no     map[string]string
		only   map[string]string
	}{
		{
			name:   "inactive resources",
			set:    func(o *Options, v TriState) { o.ShowInactiveResources = v },
			params: []string{"active", "active_value"},
			no:     map[string]string{"active": "on", "active_value": "1"},
			only:   map[string]string{"active": "on", "active_value": "0"},
		},
		{
			name:   "itb",
			set:    func(o *Options, v TriState) { o.ShowITB = v },
			params: []string{"gridtype", "gridtype_1", "gridtype_2"},
			no:     map[string]string{"gridtype": "on", "gridtype_1": "on"},
			only:   map[string]string{"gridtype": "on", "gridtype_2": "on"},
		},
		{
			name:   "disabled resources",
			set:    func(o *Options, v TriState) { o.ShowDisabledResources = v },
			params: []string{"disable", "disable_value"},
			no:     map[string]string{"disable": "on", "disable_value": "0"},
			only:   map[string]string{"disable": "on", "disable_value": "1"},
		},
	}

	collect := func(t *testing.T, q url.Values, keys []string) map[string]string {
		got := map[string]string{}
		for _, k := range keys {
			if vs, ok := q[k]; ok {
				require.Len(t, vs, 1, "key %s", k)
				got[k] = vs[0]
			}
		}
		return got
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for value, want := range map[TriState]map[string]string{
				Yes:  {},
				No:   tt.no,
				Only: tt.only,
			} {
				opts := DefaultOptions(RGSummary)
				tt.set(&opts, value)

				got, err := BuildRGSummary(opts, testBase)
				require.NoError(t, err)
				assert.Equal(t, want, collect(t, parseQuery(t, got), tt.params), "value %s", value)
			}
		})
	}
}

func TestBuildRGSummary_InvalidTriState(t *testing.T) {
	opts := DefaultOptions(RGSummary)
	opts.ShowITB = "maybe"

	_, err := BuildRGSummary(opts, testBase)
	assert.ErrorIs(t, err, qerrors.ErrInvalidOption)

	opts = DefaultOptions(RGSummary)
	opts.ShowDisabledResources = ""
	_, err = BuildRGSummary(opts, testBase)
	assert.ErrorIs(t, err, qerrors.ErrInvalidOption)
}

func TestBuildRGSummary_ListFilters(t *testing.T) {
	tests := []struct {
		name     string
		set      func(o *Options, ids []int)
		category string
		popAll   bool
	}{
		{"facility", func(o *Options, ids []int) { o.Facilities = ids }, "facility", true},
		{"rg", func(o *Options, ids []int) { o.ResourceGroups = ids }, "rg", true},
		{"service", func(o *Options, ids []int) { o.Services = ids }, "service", false},
		{"site", func(o *Options, ids []int) { o.Sites = ids }, "site", true},
		{"sc", func(o *Options, ids []int) { o.SupportCenters = ids }, "sc", true},
		{"voown", func(o *Options, ids []int) { o.VOOwners = ids }, "voown", false},
	}

	for _, tt := range tests {
		for _, ids := range [][]int{nil, {3}, {5, 9, 11}} {
			t.Run(tt.name, func(t *testing.T) {
				opts := DefaultOptions(RGSummary)
				tt.set(&opts, ids)

				got, err := BuildRGSummary(opts, testBase)
				require.NoError(t, err)
				q := parseQuery(t, got)

				selector := tt.category + "_sel[]"
				assert.Len(t, q[selector], len(ids))
				if len(ids) == 0 {
					assert.NotContains(t, q, tt.category)
				} else {
					assert.Equal(t, "on", q.Get(tt.category))
				}

				removed := tt.popAll && len(ids) > 0
				_, hasAll := q["all_resources"]
				assert.Equal(t, !removed, hasAll)
			})
		}
	}
}

func TestBuildRGSummary_FacilityExample(t *testing.T) {
	opts := DefaultOptions(RGSummary)
	opts.Facilities = []int{42, 7}

	got, err := BuildRGSummary(opts, testBase)
	require.NoError(t, err)

	raw := "&" + rawQuery(t, got)
	assert.Contains(t, raw, "&facility=on&")
	assert.Contains(t, raw, "facility_sel%5B%5D=42&facility_sel%5B%5D=7")
	assert.Less(t, strings.Index(raw, "&facility=on"), strings.Index(raw, "facility_sel%5B%5D=42"))
	assert.NotContains(t, raw, "all_resources")
}

func TestBuildRGSummary_ITBOnlyExample(t *testing.T) {
	opts := DefaultOptions(RGSummary)
	opts.ShowITB = Only

	got, err := BuildRGSummary(opts, testBase)
	require.NoError(t, err)

	raw := rawQuery(t, got)
	assert.Contains(t, raw, "gridtype=on&gridtype_2=on")
	assert.NotContains(t, raw, "gridtype_1")
}

func TestBuildRGSummary_WLCG(t *testing.T) {
	opts := DefaultOptions(RGSummary)
	got, err := BuildRGSummary(opts, testBase)
	require.NoError(t, err)
	assert.NotContains(t, parseQuery(t, got), "has_wlcg")

	opts.WLCG = true
	got, err = BuildRGSummary(opts, testBase)
	require.NoError(t, err)
	q := parseQuery(t, got)
	assert.Equal(t, "on", q.Get("has_wlcg"))
	assert.Equal(t, "on", q.Get("all_resources"))
}

func TestBuildVOSummary_InactiveExample(t *testing.T) {
	opts := DefaultOptions(VOSummary)
	opts.ShowInactiveVOs = No

	got, err := BuildVOSummary(opts, testBase)
	require.NoError(t, err)
	assert.Contains(t, rawQuery(t, got), "active=on&active_value=1")

	opts.ShowInactiveVOs = Yes
	got, err = BuildVOSummary(opts, testBase)
	require.NoError(t, err)
	q := parseQuery(t, got)
	assert.NotContains(t, q, "active")
	assert.NotContains(t, q, "active_value")
	assert.Equal(t, "on", q.Get("all_vos"))

	opts.ShowInactiveVOs = "sometimes"
	_, err = BuildVOSummary(opts, testBase)
	assert.ErrorIs(t, err, qerrors.ErrInvalidOption)
}

func TestBuild_Deterministic(t *testing.T) {
	opts := DefaultOptions(RGSummary)
	opts.Facilities = []int{1, 2}
	opts.Services = []int{156}
	opts.VOOwners = []int{35}
	opts.ShowITB = No
	opts.ShowInactiveResources = Only
	opts.WLCG = true

	first, err := Build(opts, testBase)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Build(opts, testBase)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestBuild_DoesNotMutateOptions(t *testing.T) {
	ids := []int{4, 8}
	opts := DefaultOptions(RGSummary)
	opts.Sites = ids

	_, err := Build(opts, testBase)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 8}, opts.Sites)
	assert.Equal(t, Yes, opts.ShowITB)
}
