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

package report

import (
	"fmt"
	"math"
	"strings"
)

const (
	emojiCritical    = "😱"
	emojiWarning     = "⚠️"
	emojiAcceptable  = "✅"
	emojiCelebratory = "🎉"
)

// severityEmoji picks the indicator for a percentage. The bounds apply to the
// unfloored value, so 60.5 is acceptable even though it is displayed as 60.
func severityEmoji(percent float64) string {
	switch {
	case percent < 1:
		return emojiCritical
	case percent <= 60:
		return emojiWarning
	case percent <= 90:
		return emojiAcceptable
	default:
		return emojiCelebratory
	}
}

func formatPercent(percent float64) string {
	return fmt.Sprintf("%s %d%%", severityEmoji(percent), int(math.Floor(percent)))
}

// PercentLabel converts a coverage ratio into the cell displayed by the coverage robot,
// e.g. "✅ 75%". Percentages are floored, never rounded up.
func PercentLabel(ratio float64) string {
	return formatPercent(ratio * 100)
}

// CoveragePercentLabel formats covered out of total units. No countable units
// means nothing is uncovered, which renders as 100%.
func CoveragePercentLabel(covered, total int) string {
	if total == 0 {
		return PercentLabel(1)
	}
	// Scale before dividing so exact boundaries such as 60/100 stay exact.
	return formatPercent(float64(covered) * 100 / float64(total))
}

// MarkdownTable renders headers and rows as a markdown table with every column
// right-aligned. Cells are not escaped and must not contain '|' or newlines.
func MarkdownTable(headers []string, body [][]string) string {
	separators := make([]string, len(headers))
	for i := range separators {
		separators[i] = " ---: "
	}
	tableHeaders := []string{
		strings.Join(headers, " | "),
		strings.Join(separators, " | "),
	}

	rows := make([]string, 0, len(body))
	for _, r := range body {
		rows = append(rows, strings.Join(r, " | "))
	}
	return strings.Join(tableHeaders, "\n") + "\n" + strings.Join(rows, "\n")
}
