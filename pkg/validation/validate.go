package validation

import (
	"fmt"
	"strings"

	"github.com/kevinmastascusa/symbolic-math-ai/pkg/datasets"
	"github.com/kevinmastascusa/symbolic-math-ai/pkg/errors"
)

// Validate scans a table and reports quality issues. It never mutates the
// table and never fails because issues were found; the only error is a
// structurally invalid input. Checks run in a fixed order so repeated runs
// over an unmodified table produce identical reports.
func Validate(t *datasets.Table) (*Report, error) {
	if t == nil {
		return nil, errors.New(errors.InvalidInput, "nil table")
	}

	report := &Report{
		Family: t.Family,
		Split:  t.Split,
	}

	// 1. id uniqueness: every occurrence after the first is reported.
	seen := make(map[string]bool, len(t.Problems))
	for _, p := range t.Problems {
		if seen[p.ID] {
			report.Issues = append(report.Issues, Issue{
				RecordID: p.ID,
				Kind:     DuplicateID,
				Detail:   "id already used by an earlier record",
			})
			continue
		}
		seen[p.ID] = true
	}

	// 2. non-empty question and answer.
	for _, p := range t.Problems {
		if strings.TrimSpace(p.Question) == "" {
			report.Issues = append(report.Issues, Issue{
				RecordID: p.ID,
				Kind:     EmptyField,
				Detail:   "question is empty",
			})
		}
		if strings.TrimSpace(p.Answer) == "" {
			report.Issues = append(report.Issues, Issue{
				RecordID: p.ID,
				Kind:     EmptyField,
				Detail:   "answer is empty",
			})
		}
	}

	// 3. answer parseability for numeric-answer families.
	if t.Family.NumericAnswers() {
		for _, p := range t.Problems {
			if strings.TrimSpace(p.Answer) == "" {
				continue // already reported as EmptyField
			}
			if _, ok := FinalNumber(p.Answer); !ok {
				report.Issues = append(report.Issues, Issue{
					RecordID: p.ID,
					Kind:     UnparseableAnswer,
					Detail:   fmt.Sprintf("no number found in answer %q", truncate(p.Answer, 60)),
				})
			}
		}
	}

	return report, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
