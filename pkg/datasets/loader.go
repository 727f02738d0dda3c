package datasets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/kevinmastascusa/symbolic-math-ai/pkg/errors"
	"github.com/kevinmastascusa/symbolic-math-ai/pkg/logging"
)

// LoaderConfig controls where the loader looks for dataset files and what
// it may do when they are missing.
type LoaderConfig struct {
	// DataDir is the base directory holding dataset files.
	DataDir string

	// FamilyPaths overrides the conventional path for a family. When set,
	// the override is the only path tried for that family.
	FamilyPaths map[Family]string

	// AllowDownload permits fetching missing datasets from upstream.
	// Only GSM8K has a known upstream source.
	AllowDownload bool

	// AllowSamples permits falling back to built-in sample data.
	AllowSamples bool

	// DownloadTimeout bounds each dataset download.
	DownloadTimeout time.Duration
}

// Loader reads, normalizes and catalogs math word-problem datasets. It is
// stateless beyond its configuration and safe for concurrent use.
type Loader struct {
	cfg    LoaderConfig
	logger *logging.Logger
}

// NewLoader creates a loader with the given configuration.
func NewLoader(cfg LoaderConfig) *Loader {
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	return &Loader{
		cfg:    cfg,
		logger: logging.GetLogger(),
	}
}

// LoadGSM8K loads the GSM8K split from JSON lines or Parquet.
func (l *Loader) LoadGSM8K(ctx context.Context, split Split) (*Table, error) {
	return l.loadFamily(ctx, FamilyGSM8K, split)
}

// LoadMathQA loads the MathQA split from its JSON array format.
func (l *Loader) LoadMathQA(ctx context.Context, split Split) (*Table, error) {
	return l.loadFamily(ctx, FamilyMathQA, split)
}

// LoadMAWPS loads the MAWPS split from its JSON array format.
func (l *Loader) LoadMAWPS(ctx context.Context, split Split) (*Table, error) {
	return l.loadFamily(ctx, FamilyMAWPS, split)
}

// LoadCustom loads the user-supplied custom dataset from JSON lines or
// CSV. The custom dataset has no split dimension.
func (l *Loader) LoadCustom(ctx context.Context) (*Table, error) {
	return l.loadFamily(ctx, FamilyCustom, SplitTrain)
}

// allLoads lists the (family, split) pairs GetAllDatasets covers.
var allLoads = []struct {
	family Family
	split  Split
}{
	{FamilyGSM8K, SplitTrain},
	{FamilyGSM8K, SplitTest},
	{FamilyMathQA, SplitTrain},
	{FamilyMathQA, SplitTest},
	{FamilyMAWPS, SplitTrain},
	{FamilyMAWPS, SplitTest},
	{FamilyCustom, SplitTrain},
}

// GetAllDatasets loads every known (family, split) pair, in parallel, and
// returns a catalog of the tables that loaded plus a failure summary for
// those that did not. A missing family never fails the aggregate call;
// only context cancellation does.
func (l *Loader) GetAllDatasets(ctx context.Context) (*Catalog, error) {
	catalog := NewCatalog()
	var mu sync.Mutex

	p := pool.New().WithContext(ctx)
	for _, load := range allLoads {
		load := load
		p.Go(func(ctx context.Context) error {
			table, err := l.loadFamily(ctx, load.family, load.split)

			mu.Lock()
			defer mu.Unlock()
			key := CatalogKey(load.family, load.split)
			if err != nil {
				if errors.Code(err) == errors.Canceled {
					return err
				}
				catalog.Failures[key] = err.Error()
				return nil
			}
			catalog.Tables[key] = table
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return catalog, err
	}
	return catalog, nil
}

// loadFamily resolves the source file for one family and split, reads it
// with the right format reader, and normalizes the result. Fallback order
// on a missing file: upstream download (GSM8K only), then built-in sample
// data, then DatasetUnavailable.
func (l *Loader) loadFamily(ctx context.Context, family Family, split Split) (*Table, error) {
	if err := errors.CheckContext(ctx, "dataset load"); err != nil {
		return nil, err
	}

	ctx = logging.WithDataset(ctx, string(family), string(split))

	path, tried := l.resolvePath(family, split)
	if path == "" {
		return l.loadFallback(ctx, family, split, tried)
	}

	table, err := l.readAndNormalize(ctx, path, family, split)
	if err != nil {
		return nil, err
	}

	l.logger.Info(ctx, "loaded %d records from %s (%d skipped)",
		len(table.Problems), path, len(table.Skipped))
	return table, nil
}

// resolvePath returns the first existing candidate path for the family
// and split, plus every path it looked at.
func (l *Loader) resolvePath(family Family, split Split) (string, []string) {
	if override, ok := l.cfg.FamilyPaths[family]; ok {
		if fileExists(override) {
			return override, []string{override}
		}
		return "", []string{override}
	}

	var candidates []string
	switch family {
	case FamilyGSM8K:
		candidates = []string{
			filepath.Join(l.cfg.DataDir, fmt.Sprintf("gsm8k_%s.jsonl", split)),
			filepath.Join(l.cfg.DataDir, fmt.Sprintf("gsm8k_%s.parquet", split)),
		}
	case FamilyMathQA:
		candidates = []string{
			filepath.Join(l.cfg.DataDir, fmt.Sprintf("mathqa_%s.json", split)),
		}
	case FamilyMAWPS:
		candidates = []string{
			filepath.Join(l.cfg.DataDir, fmt.Sprintf("mawps_%s.json", split)),
		}
	case FamilyCustom:
		candidates = []string{
			filepath.Join(l.cfg.DataDir, "custom.jsonl"),
			filepath.Join(l.cfg.DataDir, "custom.csv"),
			// older exports used this name
			filepath.Join(l.cfg.DataDir, "custom_math_dataset.csv"),
		}
	}

	for _, c := range candidates {
		if fileExists(c) {
			return c, candidates
		}
	}
	return "", candidates
}

// readAndNormalize picks the format reader by file extension.
func (l *Loader) readAndNormalize(ctx context.Context, path string, family Family, split Split) (*Table, error) {
	var (
		rt  *RawTable
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		rt, err = ReadParquet(ctx, path)
	case ".csv":
		rt, err = ReadCSV(path)
	case ".json":
		rt, err = ReadJSONArray(path)
	default:
		rt, err = ReadJSONLines(path)
	}
	if err != nil {
		return nil, err
	}

	for _, s := range rt.Skipped {
		l.logger.Warn(ctx, "skipped record at line %d: %s", s.Line, s.Reason)
	}

	return NormalizeTable(rt, family, split)
}

// loadFallback runs the fallback chain after no local file was found.
func (l *Loader) loadFallback(ctx context.Context, family Family, split Split, tried []string) (*Table, error) {
	if family == FamilyGSM8K && l.cfg.AllowDownload {
		path, err := downloadGSM8K(ctx, l.cfg.DataDir, split, l.cfg.DownloadTimeout)
		if err == nil {
			return l.readAndNormalize(ctx, path, family, split)
		}
		l.logger.Warn(ctx, "download failed: %v", err)
	}

	if l.cfg.AllowSamples {
		l.logger.Warn(ctx, "%s %s not found locally, using built-in sample data", family.DisplayName(), split)
		return SampleTable(family, split)
	}

	return nil, errors.WithFields(
		errors.New(errors.DatasetUnavailable, "dataset not found and all fallbacks exhausted"),
		errors.Fields{
			"family": string(family),
			"split":  string(split),
			"tried":  strings.Join(tried, ", "),
		})
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
