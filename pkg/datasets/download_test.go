package datasets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinmastascusa/symbolic-math-ai/pkg/errors"
)

func TestDownloadGSM8K(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("parquet-bytes"))
	}))
	defer server.Close()

	origTrain, origTest := gsm8kTrainURL, gsm8kTestURL
	setTestURLs(server.URL+"/train.parquet", server.URL+"/test.parquet")
	defer setTestURLs(origTrain, origTest)

	dir := t.TempDir()
	path, err := downloadGSM8K(context.Background(), dir, SplitTrain, 5*time.Second)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "gsm8k_train.parquet"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "parquet-bytes", string(data))
}

func TestDownloadGSM8KServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	origTrain, origTest := gsm8kTrainURL, gsm8kTestURL
	setTestURLs(server.URL, server.URL)
	defer setTestURLs(origTrain, origTest)

	dir := t.TempDir()
	_, err := downloadGSM8K(context.Background(), dir, SplitTest, 5*time.Second)
	assertCode(t, err, errors.DatasetUnavailable)

	// No partial file left behind
	_, statErr := os.Stat(filepath.Join(dir, "gsm8k_test.parquet"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDownloadGSM8KUnknownSplit(t *testing.T) {
	_, err := downloadGSM8K(context.Background(), t.TempDir(), SplitValidation, time.Second)
	assertCode(t, err, errors.DatasetNotFound)
}
