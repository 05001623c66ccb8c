/*
Copyright 2022 The Kubernetes Authors.

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

// Package istanbul reads Istanbul coverage-final.json reports and turns them
// into per-file statement, branch and function counts.
package istanbul

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"k8s.io/covreport/pkg/cov/calculation"
)

// DefaultPath is where Istanbul writes its report, relative to the project root.
const DefaultPath = "coverage/coverage-final.json"

// FileCoverage is the raw hit data Istanbul records for one source file.
// Only the hit counters are kept; the location maps are not needed to count units.
type FileCoverage struct {
	Path string `json:"path"`
	// S maps statement IDs to hit counts.
	S map[string]int `json:"s"`
	// F maps function IDs to hit counts.
	F map[string]int `json:"f"`
	// B maps branch IDs to the hit count of each arm.
	B map[string][]int `json:"b"`
}

// UnmarshalJSON accepts both the current record shape and the older nyc one,
// which nests the record under a "data" key.
func (fc *FileCoverage) UnmarshalJSON(b []byte) error {
	type plain FileCoverage
	var w struct {
		plain
		Data *plain `json:"data"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if w.Data != nil {
		*fc = FileCoverage(*w.Data)
		return nil
	}
	*fc = FileCoverage(w.plain)
	return nil
}

// RawDataset maps a file path to its raw coverage record.
type RawDataset map[string]FileCoverage

// Load reads and decodes the report at path.
func Load(path string) (RawDataset, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read coverage report %s", path)
	}
	raw := RawDataset{}
	if err := json.Unmarshal(buf, &raw); err != nil {
		return nil, errors.Wrapf(err, "failed to parse coverage report %s", path)
	}
	return raw, nil
}

// LoadOrEmpty is Load, except that a missing or malformed report yields an
// empty dataset instead of an error.
func LoadOrEmpty(path string) RawDataset {
	raw, err := Load(path)
	if err != nil {
		logrus.WithError(err).WithField("path", path).Warn("Using an empty coverage dataset.")
		return RawDataset{}
	}
	logrus.WithField("path", path).Debugf("Loaded coverage for %d files.", len(raw))
	return raw
}

// Normalize converts raw hit data into per-file coverage counts, ordered by path.
func Normalize(raw RawDataset) *calculation.CoverageList {
	group := make([]calculation.Coverage, 0, len(raw))
	for key, fc := range raw {
		path := fc.Path
		if path == "" {
			path = key
		}
		group = append(group, calculation.Coverage{
			Path:       path,
			Statements: countHits(fc.S),
			Branches:   countBranchHits(fc.B),
			Functions:  countHits(fc.F),
		})
	}
	return calculation.NewCoverageList(group)
}

func countHits(hits map[string]int) calculation.Metric {
	var m calculation.Metric
	for _, n := range hits {
		m.All++
		if n > 0 {
			m.Covered++
		}
	}
	return m
}

func countBranchHits(hits map[string][]int) calculation.Metric {
	var m calculation.Metric
	for _, arms := range hits {
		for _, n := range arms {
			m.All++
			if n > 0 {
				m.Covered++
			}
		}
	}
	return m
}
