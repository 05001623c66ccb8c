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

// Package report renders coverage as the markdown tables posted by the coverage robot:
// one for the whole repository and one for the files changed in a pull request.
package report

import (
	"strings"

	"github.com/sirupsen/logrus"

	"k8s.io/covreport/pkg/cov/calculation"
)

const (
	// NoFiles is returned instead of a table when no files changed.
	NoFiles = "No files"
	// Excluded marks a changed file that has no entry in the coverage report.
	Excluded = "Excluded"
)

var (
	overallHeaders = []string{"statements", "branches", "functions"}
	changeHeaders  = []string{"file", "statements", "branches", "functions"}
)

// Reporter renders tables over a coverage list loaded once at startup.
// It is never mutated, so its methods may be called concurrently.
type Reporter struct {
	coverage *calculation.CoverageList
	byPath   map[string]calculation.Coverage
	root     string
}

// NewReporter returns a Reporter over covList. Changed files are resolved
// against root, normally the working directory the report was produced in.
func NewReporter(covList *calculation.CoverageList, root string) *Reporter {
	return &Reporter{
		coverage: covList,
		byPath:   covList.Map(),
		root:     root,
	}
}

// OverallCoverage renders the repository-wide coverage of each metric kind.
func (r *Reporter) OverallCoverage() string {
	statements, branches, functions := r.coverage.Summarize()
	return MarkdownTable(overallHeaders, [][]string{{
		CoveragePercentLabel(statements.Covered, statements.All),
		CoveragePercentLabel(branches.Covered, branches.All),
		CoveragePercentLabel(functions.Covered, functions.All),
	}})
}

// ChangeCoverage renders one row per changed file, in the order given.
// Paths are relative to the reporter's root.
func (r *Reporter) ChangeCoverage(changedFiles []string) string {
	if len(changedFiles) == 0 {
		return NoFiles
	}

	rows := make([][]string, 0, len(changedFiles))
	for _, filename := range changedFiles {
		entry, ok := r.byPath[r.root+"/"+filename]
		if !ok {
			logrus.WithField("file", filename).Debug("File has no coverage entry.")
			rows = append(rows, []string{filename, Excluded, Excluded, Excluded})
			continue
		}
		rows = append(rows, []string{
			filename,
			CoveragePercentLabel(entry.Statements.Covered, entry.Statements.All),
			CoveragePercentLabel(entry.Branches.Covered, entry.Branches.All),
			CoveragePercentLabel(entry.Functions.Covered, entry.Functions.All),
		})
	}
	return MarkdownTable(changeHeaders, rows)
}

// Comment constructs the message the coverage robot posts on a pull request.
func (r *Reporter) Comment(changedFiles []string) string {
	rows := []string{
		"The following is the code coverage report",
		"",
		"### Overall coverage",
		"",
		r.OverallCoverage(),
		"",
		"### Changed files",
		"",
		r.ChangeCoverage(changedFiles),
		"",
	}
	return strings.Join(rows, "\n")
}
