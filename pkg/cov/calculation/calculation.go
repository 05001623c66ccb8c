/*
Copyright 2018 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package calculation summarizes per-file coverage into repo-wide totals.
package calculation

import (
	"sort"
)

// Metric holds the covered and total countable units of one metric kind.
type Metric struct {
	Covered int
	All     int
}

// Ratio returns the fraction of units covered. A metric with no countable
// units is considered fully covered.
func (m Metric) Ratio() float64 {
	if m.All == 0 {
		return 1
	}
	return float64(m.Covered) / float64(m.All)
}

func (m *Metric) add(o Metric) {
	m.Covered += o.Covered
	m.All += o.All
}

// Coverage is the measured coverage of one source file, keyed by its absolute path.
type Coverage struct {
	Path       string
	Statements Metric
	Branches   Metric
	Functions  Metric
}

// CoverageList is a collection of file Coverage objects
type CoverageList struct {
	Group []Coverage
}

// NewCoverageList builds a list ordered by path.
func NewCoverageList(group []Coverage) *CoverageList {
	g := make([]Coverage, len(group))
	copy(g, group)
	sort.SliceStable(g, func(i, j int) bool {
		return g[i].Path < g[j].Path
	})
	return &CoverageList{Group: g}
}

// Summarize sums covered and total units of each metric kind across all files.
func (g *CoverageList) Summarize() (statements, branches, functions Metric) {
	if g == nil {
		return
	}
	for _, c := range g.Group {
		statements.add(c.Statements)
		branches.add(c.Branches)
		functions.add(c.Functions)
	}
	return
}

// Map returns maps the file path to its coverage for faster retrieval
// & membership check
func (g *CoverageList) Map() map[string]Coverage {
	m := make(map[string]Coverage)
	if g == nil {
		return m
	}
	for _, c := range g.Group {
		m[c.Path] = c
	}
	return m
}

// Len returns the number of files in the list.
func (g *CoverageList) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Group)
}
