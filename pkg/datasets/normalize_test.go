package datasets

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinmastascusa/symbolic-math-ai/pkg/errors"
)

func rawFromJSON(t *testing.T, line int, doc string) RawRecord {
	t.Helper()
	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(doc), &fields))
	return RawRecord{Line: line, Fields: fields, JSON: []byte(doc)}
}

func TestNormalizeGSM8K(t *testing.T) {
	raw := rawFromJSON(t, 1, `{"question": "What is 2+2?", "answer": "4"}`)

	p, err := Normalize(raw, FamilyGSM8K, SplitTrain, 0)
	require.NoError(t, err)

	assert.Equal(t, "gsm8k_train_0", p.ID)
	assert.Equal(t, "What is 2+2?", p.Question)
	assert.Equal(t, "4", p.Answer)
	assert.Equal(t, FamilyGSM8K, p.Dataset)
	assert.Equal(t, SplitTrain, p.Split)
	assert.Empty(t, p.Extras)
}

func TestNormalizeMathQA(t *testing.T) {
	raw := rawFromJSON(t, 1, `{
		"Problem": "What is the value of x if 2x + 5 = 13?",
		"correct": "4",
		"Rationale": "Subtract 5, divide by 2",
		"options": "a) 3 b) 4 c) 5 d) 6",
		"category": "algebra"
	}`)

	p, err := Normalize(raw, FamilyMathQA, SplitTest, 3)
	require.NoError(t, err)

	assert.Equal(t, "mathqa_test_3", p.ID)
	assert.Equal(t, "What is the value of x if 2x + 5 = 13?", p.Question)
	assert.Equal(t, "4", p.Answer)
	// Unconsumed raw fields survive in Extras
	assert.Equal(t, "Subtract 5, divide by 2", p.Extras["Rationale"])
	assert.Equal(t, "a) 3 b) 4 c) 5 d) 6", p.Extras["options"])
	assert.Equal(t, "algebra", p.Extras["category"])
	assert.NotContains(t, p.Extras, "Problem")
	assert.NotContains(t, p.Extras, "correct")
}

func TestNormalizeMAWPS(t *testing.T) {
	raw := rawFromJSON(t, 1, `{
		"sQuestion": "A train travels 120 miles in 2 hours. What is its speed?",
		"lSolutions": ["60"],
		"lEquations": ["120/2"],
		"iIndex": 1
	}`)

	p, err := Normalize(raw, FamilyMAWPS, SplitTrain, 0)
	require.NoError(t, err)

	assert.Equal(t, "mawps_train_0", p.ID)
	assert.Equal(t, "60", p.Answer)
	// The answer comes from a nested path, so the source list stays whole
	assert.Equal(t, []interface{}{"60"}, p.Extras["lSolutions"])
	assert.Equal(t, []interface{}{"120/2"}, p.Extras["lEquations"])
	assert.Equal(t, float64(1), p.Extras["iIndex"])
}

func TestNormalizeMAWPSNumericSolution(t *testing.T) {
	raw := rawFromJSON(t, 1, `{"sQuestion": "q", "lSolutions": [60]}`)

	p, err := Normalize(raw, FamilyMAWPS, SplitTrain, 0)
	require.NoError(t, err)
	assert.Equal(t, "60", p.Answer)
}

func TestNormalizeCustom(t *testing.T) {
	t.Run("source id kept", func(t *testing.T) {
		raw := rawFromJSON(t, 1, `{
			"problem_id": "P001",
			"problem_text": "Solve for x: 2x + 5 = 13",
			"final_answer": "x = 4",
			"subject": "algebra"
		}`)

		p, err := Normalize(raw, FamilyCustom, SplitTrain, 0)
		require.NoError(t, err)

		assert.Equal(t, "P001", p.ID)
		assert.Equal(t, "x = 4", p.Answer)
		assert.Equal(t, "algebra", p.Extras["subject"])
		assert.NotContains(t, p.Extras, "problem_id")
	})

	t.Run("missing id gets a generated one", func(t *testing.T) {
		raw := rawFromJSON(t, 1, `{"problem_text": "q", "final_answer": "a"}`)

		p, err := Normalize(raw, FamilyCustom, SplitTrain, 0)
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)

		q, err := Normalize(raw, FamilyCustom, SplitTrain, 0)
		require.NoError(t, err)
		assert.NotEqual(t, p.ID, q.ID)
	})
}

func TestNormalizeSchemaMismatch(t *testing.T) {
	tests := []struct {
		name   string
		family Family
		doc    string
	}{
		{"gsm8k missing question", FamilyGSM8K, `{"answer": "4"}`},
		{"gsm8k missing answer", FamilyGSM8K, `{"question": "q"}`},
		{"mathqa missing answer field", FamilyMathQA, `{"Problem": "q", "Rationale": "r"}`},
		{"mawps empty solutions list", FamilyMAWPS, `{"sQuestion": "q", "lSolutions": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := rawFromJSON(t, 7, tt.doc)
			_, err := Normalize(raw, tt.family, SplitTrain, 0)
			assertCode(t, err, errors.SchemaMismatch)
		})
	}
}

func TestNormalizeEmptyValuesPassThrough(t *testing.T) {
	// Present-but-empty fields are a validator concern, not a schema error
	raw := rawFromJSON(t, 1, `{"question": "", "answer": ""}`)

	p, err := Normalize(raw, FamilyGSM8K, SplitTrain, 0)
	require.NoError(t, err)
	assert.Empty(t, p.Question)
	assert.Empty(t, p.Answer)
}

func TestNormalizeTextCleanup(t *testing.T) {
	raw := rawFromJSON(t, 1, `{"question": "  What is café math?  ", "answer": " 4 "}`)

	p, err := Normalize(raw, FamilyGSM8K, SplitTrain, 0)
	require.NoError(t, err)

	assert.Equal(t, "What is café math?", p.Question)
	assert.Equal(t, "4", p.Answer)
}

func TestNormalizeWithoutJSONDocument(t *testing.T) {
	// Parquet rows carry only flat fields
	raw := RawRecord{
		Line:   1,
		Fields: map[string]interface{}{"question": "q", "answer": "a"},
	}

	p, err := Normalize(raw, FamilyGSM8K, SplitTest, 5)
	require.NoError(t, err)
	assert.Equal(t, "gsm8k_test_5", p.ID)
	assert.Equal(t, "q", p.Question)
	assert.Equal(t, "a", p.Answer)
}

func TestNormalizeTable(t *testing.T) {
	t.Run("orders and counts preserved", func(t *testing.T) {
		rt := &RawTable{
			Records: []RawRecord{
				rawFromJSON(t, 1, `{"question": "q1", "answer": "1"}`),
				rawFromJSON(t, 3, `{"question": "q2", "answer": "2"}`),
			},
			Skipped: []SkippedRecord{{Line: 2, Reason: "invalid JSON"}},
		}

		table, err := NormalizeTable(rt, FamilyGSM8K, SplitTrain)
		require.NoError(t, err)

		require.Len(t, table.Problems, 2)
		assert.Equal(t, "gsm8k_train_0", table.Problems[0].ID)
		assert.Equal(t, "gsm8k_train_1", table.Problems[1].ID)
		assert.Len(t, table.Skipped, 1)
	})

	t.Run("schema mismatch propagates", func(t *testing.T) {
		rt := &RawTable{
			Records: []RawRecord{
				rawFromJSON(t, 1, `{"question": "q1", "answer": "1"}`),
				rawFromJSON(t, 2, `{"wrong": "shape"}`),
			},
		}

		_, err := NormalizeTable(rt, FamilyGSM8K, SplitTrain)
		assertCode(t, err, errors.SchemaMismatch)
	})

	t.Run("nil raw table", func(t *testing.T) {
		_, err := NormalizeTable(nil, FamilyGSM8K, SplitTrain)
		assertCode(t, err, errors.InvalidInput)
	})
}
