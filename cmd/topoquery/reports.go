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
	"github.com/sirseerhq/topology-query/internal/query"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// choiceValue binds a ChoiceFlag to a string target.
type choiceValue struct {
	flag  query.ChoiceFlag
	value string
}

func bindChoice(fs *pflag.FlagSet, flag query.ChoiceFlag) *choiceValue {
	c := &choiceValue{flag: flag, value: flag.Default}
	fs.StringVar(&c.value, flag.Name, flag.Default, flag.Usage)
	return c
}

// triState validates the parsed value and converts it.
func (c *choiceValue) triState() (query.TriState, error) {
	if err := c.flag.Validate(c.value); err != nil {
		return "", err
	}
	return query.TriState(c.value), nil
}

func newMiscUserCommand(r *runner, g *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "miscuser",
		Short: "Fetch user contact information (requires --auth)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, g, query.DefaultOptions(query.MiscUser))
		},
	}
}

func newMiscProjectCommand(r *runner, g *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "miscproject",
		Short: "Fetch project information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, g, query.DefaultOptions(query.MiscProject))
		},
	}
}

func newRGDowntimeCommand(r *runner, g *GlobalOptions) *cobra.Command {
	opts := query.DefaultOptions(query.RGDowntime)

	cmd := &cobra.Command{
		Use:   "rgdowntime",
		Short: "Fetch resource group downtimes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, g, opts)
		},
	}

	cmd.Flags().StringVar(&opts.PastDays, "past-days", query.DefaultPastDays,
		`Include downtimes that ended within this many days ("all" for every past downtime)`)

	return cmd
}

func newRGSummaryCommand(r *runner, g *GlobalOptions) *cobra.Command {
	opts := query.DefaultOptions(query.RGSummary)
	fs := pflag.NewFlagSet("rgsummary", pflag.ContinueOnError)

	inactive := bindChoice(fs, query.ShowInactiveResourcesFlag)
	itb := bindChoice(fs, query.ShowITBFlag)
	disabled := bindChoice(fs, query.ShowDisabledResourcesFlag)

	fs.IntSliceVar(&opts.Facilities, "facility", nil, "Only resources at this facility ID (repeatable)")
	fs.IntSliceVar(&opts.ResourceGroups, "rg", nil, "Only this resource group ID (repeatable)")
	fs.IntSliceVar(&opts.Services, "service", nil, "Only resources providing this service ID (repeatable)")
	fs.IntSliceVar(&opts.Sites, "site", nil, "Only resources at this site ID (repeatable)")
	fs.IntSliceVar(&opts.SupportCenters, "sc", nil, "Only resources supported by this support center ID (repeatable)")
	fs.IntSliceVar(&opts.VOOwners, "voown", nil, "Only resources owned by this VO ID (repeatable)")
	fs.BoolVar(&opts.WLCG, "wlcg", false, "Only WLCG resources")

	cmd := &cobra.Command{
		Use:   "rgsummary",
		Short: "Fetch the resource group summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if opts.ShowInactiveResources, err = inactive.triState(); err != nil {
				return err
			}
			if opts.ShowITB, err = itb.triState(); err != nil {
				return err
			}
			if opts.ShowDisabledResources, err = disabled.triState(); err != nil {
				return err
			}
			return r.run(cmd, g, opts)
		},
	}
	cmd.Flags().AddFlagSet(fs)

	return cmd
}

func newVOSummaryCommand(r *runner, g *GlobalOptions) *cobra.Command {
	opts := query.DefaultOptions(query.VOSummary)
	fs := pflag.NewFlagSet("vosummary", pflag.ContinueOnError)
	inactive := bindChoice(fs, query.ShowInactiveVOsFlag)

	cmd := &cobra.Command{
		Use:   "vosummary",
		Short: "Fetch the virtual organization summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if opts.ShowInactiveVOs, err = inactive.triState(); err != nil {
				return err
			}
			return r.run(cmd, g, opts)
		},
	}
	cmd.Flags().AddFlagSet(fs)

	return cmd
}
