package datasets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/kevinmastascusa/symbolic-math-ai/pkg/errors"
	"github.com/kevinmastascusa/symbolic-math-ai/pkg/logging"
)

// GSM8K is published on Hugging Face as Parquet, one file per split.
var (
	gsm8kTrainURL = "https://huggingface.co/datasets/openai/gsm8k/resolve/main/main/train-00000-of-00001.parquet"
	gsm8kTestURL  = "https://huggingface.co/datasets/openai/gsm8k/resolve/main/main/test-00000-of-00001.parquet"
)

// setTestURLs redirects downloads to a test server.
func setTestURLs(train, test string) {
	gsm8kTrainURL = train
	gsm8kTestURL = test
}

func gsm8kURL(split Split) (string, error) {
	switch split {
	case SplitTrain:
		return gsm8kTrainURL, nil
	case SplitTest:
		return gsm8kTestURL, nil
	default:
		return "", errors.WithFields(
			errors.New(errors.DatasetNotFound, "no upstream GSM8K file for split"),
			errors.Fields{"split": string(split)})
	}
}

// downloadGSM8K fetches the Parquet file for a split into dataDir and
// returns its path. A partial download is removed before returning.
func downloadGSM8K(ctx context.Context, dataDir string, split Split, timeout time.Duration) (string, error) {
	url, err := gsm8kURL(split)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", errors.Wrap(err, errors.PersistenceFailed, "failed to create dataset directory")
	}

	destPath := filepath.Join(dataDir, fmt.Sprintf("gsm8k_%s.parquet", split))
	logging.GetLogger().Info(ctx, "GSM8K %s not found locally, downloading from %s", split, url)

	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrap(err, errors.DatasetUnavailable, "failed to build download request")
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, errors.DatasetUnavailable, "failed to download dataset")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.WithFields(
			errors.New(errors.DatasetUnavailable, "unexpected status downloading dataset"),
			errors.Fields{"status": resp.StatusCode, "url": url})
	}

	out, err := os.Create(destPath)
	if err != nil {
		return "", errors.Wrap(err, errors.PersistenceFailed, "failed to create dataset file")
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(destPath)
		return "", errors.Wrap(err, errors.DatasetUnavailable, "failed to save dataset")
	}
	if err := out.Close(); err != nil {
		os.Remove(destPath)
		return "", errors.Wrap(err, errors.PersistenceFailed, "failed to close dataset file")
	}

	return destPath, nil
}
