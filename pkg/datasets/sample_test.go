package datasets

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleTable(t *testing.T) {
	tests := []struct {
		family  Family
		split   Split
		firstID string
	}{
		{FamilyGSM8K, SplitTrain, "gsm8k_train_0"},
		{FamilyGSM8K, SplitTest, "gsm8k_test_0"},
		{FamilyMathQA, SplitTrain, "mathqa_train_0"},
		{FamilyMAWPS, SplitTest, "mawps_test_0"},
		{FamilyCustom, SplitTrain, "P001"},
	}

	for _, tt := range tests {
		t.Run(string(tt.family)+"_"+string(tt.split), func(t *testing.T) {
			table, err := SampleTable(tt.family, tt.split)
			require.NoError(t, err)

			require.Len(t, table.Problems, 4)
			assert.Empty(t, table.Skipped)
			assert.Equal(t, tt.firstID, table.Problems[0].ID)
			for _, p := range table.Problems {
				assert.NotEmpty(t, p.Question)
				assert.NotEmpty(t, p.Answer)
				assert.Equal(t, tt.family, p.Dataset)
			}
		})
	}
}

func TestSampleTableMAWPSAnswer(t *testing.T) {
	table, err := SampleTable(FamilyMAWPS, SplitTrain)
	require.NoError(t, err)

	// lSolutions carries the answer as its first element
	assert.Equal(t, "60", table.Problems[0].Answer)
	assert.Contains(t, table.Problems[0].Extras, "lEquations")
}

func TestWriteSampleFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteSampleFiles(dir))

	expected := []string{
		"gsm8k_train.jsonl", "gsm8k_test.jsonl",
		"mathqa_train.json", "mathqa_test.json",
		"mawps_train.json", "mawps_test.json",
		"custom.jsonl",
	}
	for _, name := range expected {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, "missing %s", name)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestWriteSampleFilesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteSampleFiles(dir))

	// Files written to disk load back to the same tables the in-memory
	// samples produce.
	loader := NewLoader(LoaderConfig{DataDir: dir})
	loaded, err := loader.LoadMathQA(context.Background(), SplitTrain)
	require.NoError(t, err)

	direct, err := SampleTable(FamilyMathQA, SplitTrain)
	require.NoError(t, err)

	require.Len(t, loaded.Problems, len(direct.Problems))
	for i := range direct.Problems {
		assert.Equal(t, direct.Problems[i].ID, loaded.Problems[i].ID)
		assert.Equal(t, direct.Problems[i].Question, loaded.Problems[i].Question)
		assert.Equal(t, direct.Problems[i].Answer, loaded.Problems[i].Answer)
	}
}
