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

package report

import (
	"k8s.io/covreport/pkg/cov/istanbul"
)

// Load builds a Reporter from the Istanbul report at coverageFile. A missing
// or unreadable report gives a Reporter over an empty dataset.
func Load(coverageFile, root string) *Reporter {
	return NewReporter(istanbul.Normalize(istanbul.LoadOrEmpty(coverageFile)), root)
}
