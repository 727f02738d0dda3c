package persistence

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/kevinmastascusa/symbolic-math-ai/pkg/datasets"
	"github.com/kevinmastascusa/symbolic-math-ai/pkg/errors"
)

// canonical field names written first on every persisted line.
var canonicalKeys = map[string]bool{
	"id":       true,
	"question": true,
	"answer":   true,
	"dataset":  true,
	"split":    true,
}

// JSONLStore writes each table to "<family>_<split>.jsonl" under its
// directory, one JSON object per record, canonical fields first and
// extras after in sorted key order.
type JSONLStore struct {
	dir string
}

// NewJSONLStore creates the target directory if needed.
func NewJSONLStore(dir string) (*JSONLStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.PersistenceFailed, "failed to create output directory"),
			errors.Fields{"dir": dir})
	}
	return &JSONLStore{dir: dir}, nil
}

// Dir returns the store's directory.
func (s *JSONLStore) Dir() string {
	return s.dir
}

func (s *JSONLStore) tablePath(family datasets.Family, split datasets.Split) string {
	return filepath.Join(s.dir, datasets.CatalogKey(family, split)+".jsonl")
}

// SaveTable writes the table to its file, replacing any previous content.
func (s *JSONLStore) SaveTable(ctx context.Context, t *datasets.Table) error {
	if t == nil {
		return errors.New(errors.InvalidInput, "nil table")
	}
	if err := errors.CheckContext(ctx, "save table"); err != nil {
		return err
	}

	path := s.tablePath(t.Family, t.Split)
	f, err := os.Create(path)
	if err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.PersistenceFailed, "failed to create table file"),
			errors.Fields{"path": path})
	}

	w := bufio.NewWriter(f)
	for _, p := range t.Problems {
		line, err := encodeProblem(p)
		if err != nil {
			f.Close()
			return err
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			f.Close()
			return errors.Wrap(err, errors.PersistenceFailed, "failed to write record")
		}
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return errors.Wrap(err, errors.PersistenceFailed, "failed to flush table file")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, errors.PersistenceFailed, "failed to close table file")
	}
	return nil
}

// LoadTable reads a previously saved table back.
func (s *JSONLStore) LoadTable(ctx context.Context, family datasets.Family, split datasets.Split) (*datasets.Table, error) {
	if err := errors.CheckContext(ctx, "load table"); err != nil {
		return nil, err
	}

	path := s.tablePath(family, split)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WithFields(
				errors.Wrap(err, errors.DatasetNotFound, "no saved table"),
				errors.Fields{"path": path})
		}
		return nil, errors.Wrap(err, errors.PersistenceFailed, "failed to open table file")
	}
	defer f.Close()

	table := &datasets.Table{Family: family, Split: split}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		p, err := decodeProblem([]byte(line))
		if err != nil {
			return nil, errors.WithFields(err, errors.Fields{"path": path, "line": lineNo})
		}
		table.Problems = append(table.Problems, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.PersistenceFailed, "failed to scan table file")
	}

	return table, nil
}

// Close is a no-op; the store holds no open resources between calls.
func (s *JSONLStore) Close() error {
	return nil
}

// encodeProblem builds the persisted JSON document with a stable field
// order: canonical fields, then extras sorted by key.
func encodeProblem(p datasets.Problem) ([]byte, error) {
	line := []byte(`{}`)
	var err error

	set := func(key string, value interface{}) {
		if err != nil {
			return
		}
		line, err = sjson.SetBytes(line, escapeKey(key), value)
	}

	set("id", p.ID)
	set("question", p.Question)
	set("answer", p.Answer)
	set("dataset", string(p.Dataset))
	set("split", string(p.Split))

	extraKeys := make([]string, 0, len(p.Extras))
	for k := range p.Extras {
		extraKeys = append(extraKeys, k)
	}
	sort.Strings(extraKeys)
	for _, k := range extraKeys {
		set(k, p.Extras[k])
	}

	if err != nil {
		return nil, errors.Wrap(err, errors.PersistenceFailed, "failed to encode record")
	}
	return line, nil
}

// decodeProblem splits a persisted document back into canonical fields
// and extras.
func decodeProblem(line []byte) (datasets.Problem, error) {
	if !gjson.ValidBytes(line) {
		return datasets.Problem{}, errors.New(errors.PersistenceFailed, "invalid JSON in saved table")
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(line, &fields); err != nil {
		return datasets.Problem{}, errors.Wrap(err, errors.PersistenceFailed, "failed to decode record")
	}

	family, err := datasets.ParseFamily(gjson.GetBytes(line, "dataset").String())
	if err != nil {
		return datasets.Problem{}, errors.Wrap(err, errors.PersistenceFailed, "saved record has no valid dataset field")
	}
	split, err := datasets.ParseSplit(gjson.GetBytes(line, "split").String())
	if err != nil {
		return datasets.Problem{}, errors.Wrap(err, errors.PersistenceFailed, "saved record has no valid split field")
	}

	p := datasets.Problem{
		ID:       gjson.GetBytes(line, "id").String(),
		Question: gjson.GetBytes(line, "question").String(),
		Answer:   gjson.GetBytes(line, "answer").String(),
		Dataset:  family,
		Split:    split,
	}

	for k, v := range fields {
		if canonicalKeys[k] {
			continue
		}
		if p.Extras == nil {
			p.Extras = make(map[string]interface{})
		}
		p.Extras[k] = v
	}

	return p, nil
}

// escapeKey protects sjson path characters in extra field names.
func escapeKey(key string) string {
	replacer := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`, "#", `\#`, "@", `\@`)
	return replacer.Replace(key)
}
