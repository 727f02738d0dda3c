// Package validation runs lightweight quality checks over normalized
// dataset tables and reports anomalies without mutating the data.
package validation

import (
	"fmt"
	"strings"

	"github.com/kevinmastascusa/symbolic-math-ai/pkg/datasets"
)

// IssueKind classifies a quality problem found in a table.
type IssueKind string

const (
	// DuplicateID marks a record whose id already appeared earlier in
	// the table.
	DuplicateID IssueKind = "duplicate_id"

	// EmptyField marks a record with an empty question or answer.
	EmptyField IssueKind = "empty_field"

	// UnparseableAnswer marks a record in a numeric-answer family whose
	// answer yields no number.
	UnparseableAnswer IssueKind = "unparseable_answer"
)

// Issue is one (record, problem) pair found by the validator.
type Issue struct {
	RecordID string    `json:"record_id"`
	Kind     IssueKind `json:"kind"`
	Detail   string    `json:"detail,omitempty"`
}

// Report collects the issues found in one table. An empty Issues slice
// means the table passed every check.
type Report struct {
	Family datasets.Family `json:"family"`
	Split  datasets.Split  `json:"split"`
	Issues []Issue         `json:"issues"`
}

// Clean reports whether no issues were found.
func (r *Report) Clean() bool {
	return len(r.Issues) == 0
}

// CountByKind tallies issues per kind.
func (r *Report) CountByKind() map[IssueKind]int {
	counts := make(map[IssueKind]int)
	for _, issue := range r.Issues {
		counts[issue.Kind]++
	}
	return counts
}

// Summary renders a one-line human-readable digest of the report.
func (r *Report) Summary() string {
	if r.Clean() {
		return fmt.Sprintf("%s/%s: no issues", r.Family, r.Split)
	}
	counts := r.CountByKind()
	parts := make([]string, 0, len(counts))
	for _, kind := range []IssueKind{DuplicateID, EmptyField, UnparseableAnswer} {
		if n := counts[kind]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", kind, n))
		}
	}
	return fmt.Sprintf("%s/%s: %d issues (%s)", r.Family, r.Split, len(r.Issues), strings.Join(parts, ", "))
}
