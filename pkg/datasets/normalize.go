package datasets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"golang.org/x/text/unicode/norm"

	"github.com/kevinmastascusa/symbolic-math-ai/pkg/errors"
)

// fieldMap describes where a family keeps the canonical fields in its raw
// records. Question and answer are gjson paths; id is an optional flat
// field holding a source-assigned identifier.
type fieldMap struct {
	id       string
	question string
	answer   string
}

var familyFields = map[Family]fieldMap{
	FamilyGSM8K:  {question: "question", answer: "answer"},
	FamilyMathQA: {question: "Problem", answer: "correct"},
	FamilyMAWPS:  {question: "sQuestion", answer: "lSolutions.0"},
	FamilyCustom: {id: "problem_id", question: "problem_text", answer: "final_answer"},
}

// Normalize maps one raw record onto the canonical Problem schema for its
// declared family. It is pure: no I/O, no mutation of the input. A missing
// required field is a SchemaMismatch error, which callers must propagate;
// the on-disk format has changed and continuing would corrupt canonical
// data.
func Normalize(raw RawRecord, family Family, split Split, index int) (Problem, error) {
	fm, ok := familyFields[family]
	if !ok {
		return Problem{}, errors.WithFields(
			errors.New(errors.InvalidInput, "unrecognized dataset family"),
			errors.Fields{"family": string(family)})
	}

	// Absence of a required field is a schema mismatch; an empty value is
	// not, and is left for the validator to report.
	question, ok := lookupField(raw, fm.question)
	if !ok {
		return Problem{}, schemaMismatch(raw, family, fm.question)
	}
	answer, ok := lookupField(raw, fm.answer)
	if !ok {
		return Problem{}, schemaMismatch(raw, family, fm.answer)
	}

	p := Problem{
		ID:       recordID(raw, fm, family, split, index),
		Question: normalizeText(question),
		Answer:   strings.TrimSpace(answer),
		Dataset:  family,
		Split:    split,
	}

	// Raw fields the canonical schema did not consume are kept as extras.
	// Only flat paths consume their field; the answer source for a nested
	// path like MAWPS lSolutions stays visible in Extras in full.
	consumed := map[string]bool{}
	for _, path := range []string{fm.id, fm.question, fm.answer} {
		if path != "" && !strings.Contains(path, ".") {
			consumed[path] = true
		}
	}
	for k, v := range raw.Fields {
		if !consumed[k] {
			if p.Extras == nil {
				p.Extras = make(map[string]interface{})
			}
			p.Extras[k] = v
		}
	}

	return p, nil
}

// NormalizeTable normalizes every raw record of one family and split into
// a Table. The reader's skip accounting carries over unchanged.
func NormalizeTable(rt *RawTable, family Family, split Split) (*Table, error) {
	if rt == nil {
		return nil, errors.New(errors.InvalidInput, "nil raw table")
	}

	table := &Table{
		Family:   family,
		Split:    split,
		Problems: make([]Problem, 0, len(rt.Records)),
		Skipped:  rt.Skipped,
	}

	for i, raw := range rt.Records {
		p, err := Normalize(raw, family, split, i)
		if err != nil {
			return nil, err
		}
		table.Problems = append(table.Problems, p)
	}

	return table, nil
}

func schemaMismatch(raw RawRecord, family Family, field string) error {
	return errors.WithFields(
		errors.New(errors.SchemaMismatch, "required raw field absent"),
		errors.Fields{"family": string(family), "field": field, "line": raw.Line})
}

// lookupField resolves a gjson path against the raw record, falling back
// to a flat map lookup for records without a source JSON document.
func lookupField(raw RawRecord, path string) (string, bool) {
	if raw.JSON != nil {
		result := gjson.GetBytes(raw.JSON, path)
		if !result.Exists() {
			return "", false
		}
		return stringifyResult(result), true
	}

	v, ok := raw.Fields[path]
	if !ok {
		return "", false
	}
	return stringifyValue(v), true
}

func stringifyResult(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.String()
	case gjson.Number:
		// Keep the source literal so "60" and 60 round-trip identically
		return r.Raw
	default:
		return r.String()
	}
}

func stringifyValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// normalizeText trims surrounding whitespace and applies Unicode NFC so
// visually identical question text compares equal across sources.
func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// recordID prefers the source-assigned id when the family has one, then
// falls back to a synthesized positional id. Custom records without a
// problem_id get a random id since positions in user-supplied files are
// not stable.
func recordID(raw RawRecord, fm fieldMap, family Family, split Split, index int) string {
	if fm.id != "" {
		if id, ok := lookupField(raw, fm.id); ok && strings.TrimSpace(id) != "" {
			return strings.TrimSpace(id)
		}
		return uuid.NewString()
	}
	return fmt.Sprintf("%s_%s_%d", family, split, index)
}
