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

package calculation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRatio(t *testing.T) {
	t.Run("regular", func(t *testing.T) {
		m := Metric{Covered: 105, All: 210}
		if m.Ratio() != .5 {
			t.Fatalf("incorrect coverage ratio: expected 0.5, got %f", m.Ratio())
		}
	})

	t.Run("no countable units", func(t *testing.T) {
		m := Metric{}
		if m.Ratio() != 1 {
			t.Fatalf("incorrect coverage ratio: expected 1, got %f", m.Ratio())
		}
	})
}

func TestCovList(t *testing.T) {
	covList := NewCoverageList([]Coverage{
		{
			Path:       "/repo/b.js",
			Statements: Metric{Covered: 59, All: 100},
			Branches:   Metric{Covered: 1, All: 4},
			Functions:  Metric{Covered: 2, All: 2},
		},
		{
			Path:       "/repo/a.js",
			Statements: Metric{Covered: 105, All: 2123},
			Branches:   Metric{Covered: 0, All: 0},
			Functions:  Metric{Covered: 3, All: 7},
		},
		{Path: "/repo/a/c.js"},
	})

	if covList.Len() != 3 {
		t.Fatalf("expected 3 files, got %d", covList.Len())
	}

	var paths []string
	for _, c := range covList.Group {
		paths = append(paths, c.Path)
	}
	if diff := cmp.Diff([]string{"/repo/a.js", "/repo/a/c.js", "/repo/b.js"}, paths); diff != "" {
		t.Errorf("unexpected ordering (-want +got):\n%s", diff)
	}

	statements, branches, functions := covList.Summarize()
	if diff := cmp.Diff(Metric{Covered: 164, All: 2223}, statements); diff != "" {
		t.Errorf("statements mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Metric{Covered: 1, All: 4}, branches); diff != "" {
		t.Errorf("branches mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Metric{Covered: 5, All: 9}, functions); diff != "" {
		t.Errorf("functions mismatch (-want +got):\n%s", diff)
	}

	m := covList.Map()
	if _, ok := m["/repo/a/c.js"]; !ok {
		t.Errorf("expected /repo/a/c.js in map, got %v", m)
	}
}

func TestEmptyCovList(t *testing.T) {
	for name, covList := range map[string]*CoverageList{
		"nil":   nil,
		"empty": NewCoverageList(nil),
	} {
		t.Run(name, func(t *testing.T) {
			statements, branches, functions := covList.Summarize()
			for _, m := range []Metric{statements, branches, functions} {
				if m != (Metric{}) {
					t.Errorf("expected zero sums, got %+v", m)
				}
				if m.Ratio() != 1 {
					t.Errorf("expected ratio 1 for zero sums, got %f", m.Ratio())
				}
			}
			if len(covList.Map()) != 0 {
				t.Errorf("expected empty map")
			}
		})
	}
}
