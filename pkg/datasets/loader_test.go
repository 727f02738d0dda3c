package datasets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinmastascusa/symbolic-math-ai/pkg/errors"
)

// sampleDataDir seeds a temp directory with the built-in sample files.
func sampleDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, WriteSampleFiles(dir))
	return dir
}

func TestLoadGSM8KFromJSONLines(t *testing.T) {
	dir := sampleDataDir(t)
	loader := NewLoader(LoaderConfig{DataDir: dir})

	table, err := loader.LoadGSM8K(context.Background(), SplitTrain)
	require.NoError(t, err)

	assert.Equal(t, FamilyGSM8K, table.Family)
	assert.Equal(t, SplitTrain, table.Split)
	require.Len(t, table.Problems, 4)
	assert.Empty(t, table.Skipped)

	for i, p := range table.Problems {
		assert.NotEmpty(t, p.Question)
		assert.NotEmpty(t, p.Answer)
		assert.Equal(t, fmt.Sprintf("gsm8k_train_%d", i), p.ID)
	}
	assert.Equal(t, "word_problem", table.Problems[0].Extras["category"])
}

func TestLoadMathQAFromJSONArray(t *testing.T) {
	dir := sampleDataDir(t)
	loader := NewLoader(LoaderConfig{DataDir: dir})

	table, err := loader.LoadMathQA(context.Background(), SplitTest)
	require.NoError(t, err)

	require.Len(t, table.Problems, 4)
	assert.Equal(t, "mathqa_test_0", table.Problems[0].ID)
	assert.NotEmpty(t, table.Problems[0].Extras["Rationale"])
}

func TestLoadCustomFromJSONLines(t *testing.T) {
	dir := sampleDataDir(t)
	loader := NewLoader(LoaderConfig{DataDir: dir})

	table, err := loader.LoadCustom(context.Background())
	require.NoError(t, err)

	require.Len(t, table.Problems, 4)
	assert.Equal(t, "P001", table.Problems[0].ID)
	assert.Equal(t, "custom", table.Key())
}

func TestLoadCustomFromCSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "custom.csv",
		"problem_id,problem_text,final_answer\nC1,What is 6*7?,42\n")

	loader := NewLoader(LoaderConfig{DataDir: dir})
	table, err := loader.LoadCustom(context.Background())
	require.NoError(t, err)

	require.Len(t, table.Problems, 1)
	assert.Equal(t, "C1", table.Problems[0].ID)
	assert.Equal(t, "42", table.Problems[0].Answer)
}

func TestLoadFamilyOverridePath(t *testing.T) {
	dir := t.TempDir()
	override := writeFile(t, dir, "elsewhere.jsonl",
		`{"question": "What is 2+2?", "answer": "4"}`+"\n")

	loader := NewLoader(LoaderConfig{
		DataDir:     filepath.Join(dir, "empty"),
		FamilyPaths: map[Family]string{FamilyGSM8K: override},
	})

	table, err := loader.LoadGSM8K(context.Background(), SplitTrain)
	require.NoError(t, err)
	require.Len(t, table.Problems, 1)
	assert.Equal(t, "What is 2+2?", table.Problems[0].Question)
}

func TestLoadSkipAccounting(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gsm8k_train.jsonl",
		`{"question": "q1", "answer": "1"}
not json at all
{"question": "q3", "answer": "3"}
`)

	loader := NewLoader(LoaderConfig{DataDir: dir})
	table, err := loader.LoadGSM8K(context.Background(), SplitTrain)
	require.NoError(t, err)

	assert.Len(t, table.Problems, 2)
	require.Len(t, table.Skipped, 1)
	assert.Equal(t, 2, table.Skipped[0].Line)
}

func TestLoadSampleFallback(t *testing.T) {
	loader := NewLoader(LoaderConfig{
		DataDir:      filepath.Join(t.TempDir(), "nothing-here"),
		AllowSamples: true,
	})

	table, err := loader.LoadMAWPS(context.Background(), SplitTrain)
	require.NoError(t, err)
	assert.NotEmpty(t, table.Problems)
	assert.Equal(t, FamilyMAWPS, table.Family)
}

func TestLoadUnavailableWhenFallbacksDisabled(t *testing.T) {
	loader := NewLoader(LoaderConfig{
		DataDir: filepath.Join(t.TempDir(), "nothing-here"),
	})

	_, err := loader.LoadMathQA(context.Background(), SplitTrain)
	assertCode(t, err, errors.DatasetUnavailable)
	assert.Contains(t, err.Error(), "mathqa")
}

func TestLoadCanceledContext(t *testing.T) {
	loader := NewLoader(LoaderConfig{DataDir: sampleDataDir(t)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.LoadGSM8K(ctx, SplitTrain)
	assertCode(t, err, errors.Canceled)
}

func TestGetAllDatasets(t *testing.T) {
	dir := sampleDataDir(t)
	loader := NewLoader(LoaderConfig{DataDir: dir})

	catalog, err := loader.GetAllDatasets(context.Background())
	require.NoError(t, err)

	expected := []string{
		"gsm8k_train", "gsm8k_test",
		"mathqa_train", "mathqa_test",
		"mawps_train", "mawps_test",
		"custom",
	}
	assert.Len(t, catalog.Tables, len(expected))
	for _, key := range expected {
		assert.Contains(t, catalog.Tables, key, "missing table %s", key)
	}
	assert.Empty(t, catalog.Failures)
}

func TestGetAllDatasetsPartialFailure(t *testing.T) {
	dir := sampleDataDir(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "mawps_train.json")))

	loader := NewLoader(LoaderConfig{DataDir: dir})
	catalog, err := loader.GetAllDatasets(context.Background())
	require.NoError(t, err)

	// The missing family is reported, the rest still load
	assert.NotContains(t, catalog.Tables, "mawps_train")
	require.Contains(t, catalog.Failures, "mawps_train")
	assert.Contains(t, catalog.Failures["mawps_train"], "mawps")

	assert.Contains(t, catalog.Tables, "gsm8k_train")
	assert.Contains(t, catalog.Tables, "mawps_test")
	assert.Contains(t, catalog.Tables, "custom")
}
