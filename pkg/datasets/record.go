// Package datasets loads mathematical word-problem datasets (GSM8K, MathQA,
// MAWPS and user-supplied custom data) from their heterogeneous on-disk
// formats and normalizes them onto one canonical record schema.
package datasets

import "fmt"

// Family identifies one named dataset source with its own on-disk schema.
type Family string

const (
	FamilyGSM8K  Family = "gsm8k"
	FamilyMathQA Family = "mathqa"
	FamilyMAWPS  Family = "mawps"
	FamilyCustom Family = "custom"
)

// ParseFamily converts a string to a Family.
func ParseFamily(s string) (Family, error) {
	switch Family(s) {
	case FamilyGSM8K, FamilyMathQA, FamilyMAWPS, FamilyCustom:
		return Family(s), nil
	default:
		return "", fmt.Errorf("unrecognized dataset family: %q", s)
	}
}

// DisplayName returns the conventional capitalization for a family.
func (f Family) DisplayName() string {
	switch f {
	case FamilyGSM8K:
		return "GSM8K"
	case FamilyMathQA:
		return "MathQA"
	case FamilyMAWPS:
		return "MAWPS"
	case FamilyCustom:
		return "Custom"
	default:
		return string(f)
	}
}

// NumericAnswers reports whether the family's answers are expected to
// parse as numbers.
func (f Family) NumericAnswers() bool {
	return f == FamilyGSM8K || f == FamilyMAWPS
}

// Split names a partition of a dataset.
type Split string

const (
	SplitTrain      Split = "train"
	SplitTest       Split = "test"
	SplitValidation Split = "validation"
)

// ParseSplit converts a string to a Split.
func ParseSplit(s string) (Split, error) {
	switch Split(s) {
	case SplitTrain, SplitTest, SplitValidation:
		return Split(s), nil
	default:
		return "", fmt.Errorf("unrecognized split: %q", s)
	}
}

// Problem is one math word problem on the canonical schema. Fields the
// source carries beyond the canonical set live in Extras.
type Problem struct {
	ID       string                 `json:"id"`
	Question string                 `json:"question"`
	Answer   string                 `json:"answer"`
	Dataset  Family                 `json:"dataset"`
	Split    Split                  `json:"split"`
	Extras   map[string]interface{} `json:"extras,omitempty"`
}

// SkippedRecord identifies a source record a reader could not parse.
type SkippedRecord struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// Table is an ordered sequence of Problems sharing one family and split,
// along with the records the reader had to skip.
type Table struct {
	Family   Family
	Split    Split
	Problems []Problem
	Skipped  []SkippedRecord
}

// Key returns the catalog key for the table: "<family>_<split>", or just
// the family name for the custom dataset, which has no split dimension.
func (t *Table) Key() string {
	return CatalogKey(t.Family, t.Split)
}

// CatalogKey builds the catalog key for a (family, split) pair.
func CatalogKey(family Family, split Split) string {
	if family == FamilyCustom {
		return string(family)
	}
	return fmt.Sprintf("%s_%s", family, split)
}

// Catalog maps catalog keys to loaded tables. Families that failed to
// load are listed in Failures with the reason, keyed the same way.
type Catalog struct {
	Tables   map[string]*Table
	Failures map[string]string
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		Tables:   make(map[string]*Table),
		Failures: make(map[string]string),
	}
}
