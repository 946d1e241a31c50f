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

// Package query builds request URLs for the registry's XML reports.
//
// Each report has a builder that maps an Options value to a complete URL:
//
//	u, err := query.Build(query.Options{Report: query.RGSummary, ...}, "https://topology.opensciencegrid.org")
//
// Builders are pure. Parameters are emitted in insertion order, list filters
// repeat their selector key once per identifier (facility_sel[]=1&facility_sel[]=2),
// and tri-state filters (yes, no, only) toggle a filter flag plus a value flag.
package query
