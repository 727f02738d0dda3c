package datasets

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kevinmastascusa/symbolic-math-ai/pkg/errors"
)

// RawRecord is one source record exactly as it appears on disk, before any
// renaming. JSON holds the original document when the source was JSON (or a
// synthesized document for CSV rows) so nested fields can be addressed by
// path during normalization.
type RawRecord struct {
	Line   int
	Fields map[string]interface{}
	JSON   []byte
}

// RawTable is the ordered output of a format reader plus the records it
// had to skip.
type RawTable struct {
	Records []RawRecord
	Skipped []SkippedRecord
}

// openSource opens path for reading, mapping a missing file to
// DatasetNotFound.
func openSource(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WithFields(
				errors.Wrap(err, errors.DatasetNotFound, "dataset file not found"),
				errors.Fields{"path": path})
		}
		return nil, errors.WithFields(
			errors.Wrap(err, errors.Unknown, "failed to open dataset file"),
			errors.Fields{"path": path})
	}
	return f, nil
}

// ReadJSONLines reads a JSON-lines file, one object per line. A line that
// fails to parse is skipped and recorded in the result, never fatal for
// the split.
func ReadJSONLines(path string) (*RawTable, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rt := &RawTable{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var fields map[string]interface{}
		if err := json.Unmarshal([]byte(line), &fields); err != nil {
			rt.Skipped = append(rt.Skipped, SkippedRecord{
				Line:   lineNo,
				Reason: fmt.Sprintf("invalid JSON: %v", err),
			})
			continue
		}

		rt.Records = append(rt.Records, RawRecord{
			Line:   lineNo,
			Fields: fields,
			JSON:   []byte(line),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.MalformedRecord, "failed to scan dataset file"),
			errors.Fields{"path": path, "line": lineNo})
	}

	return rt, nil
}

// ReadJSONArray reads a file holding one JSON array of objects. Elements
// that are not objects are skipped and recorded; a file that is not a
// JSON array at all is a MalformedRecord error for the whole file.
func ReadJSONArray(path string) (*RawTable, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.Unknown, "failed to read dataset file"),
			errors.Fields{"path": path})
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.MalformedRecord, "dataset file is not a JSON array"),
			errors.Fields{"path": path})
	}

	rt := &RawTable{}
	for i, element := range elements {
		var fields map[string]interface{}
		if err := json.Unmarshal(element, &fields); err != nil {
			rt.Skipped = append(rt.Skipped, SkippedRecord{
				Line:   i + 1,
				Reason: fmt.Sprintf("array element is not an object: %v", err),
			})
			continue
		}
		rt.Records = append(rt.Records, RawRecord{
			Line:   i + 1,
			Fields: fields,
			JSON:   element,
		})
	}

	return rt, nil
}

// ReadCSV reads a CSV file with a header row, producing one raw record
// per data row. Rows with the wrong column count are skipped and recorded.
func ReadCSV(path string) (*RawTable, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.MalformedRecord, "failed to read CSV header"),
			errors.Fields{"path": path})
	}

	rt := &RawTable{}
	lineNo := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		lineNo++
		if err != nil {
			rt.Skipped = append(rt.Skipped, SkippedRecord{
				Line:   lineNo,
				Reason: fmt.Sprintf("invalid CSV row: %v", err),
			})
			continue
		}
		if len(row) != len(header) {
			rt.Skipped = append(rt.Skipped, SkippedRecord{
				Line:   lineNo,
				Reason: fmt.Sprintf("expected %d columns, got %d", len(header), len(row)),
			})
			continue
		}

		fields := make(map[string]interface{}, len(header))
		for i, name := range header {
			fields[name] = row[i]
		}

		// Synthesize a JSON document so path-based field lookup works
		// uniformly across formats.
		doc, err := json.Marshal(fields)
		if err != nil {
			rt.Skipped = append(rt.Skipped, SkippedRecord{
				Line:   lineNo,
				Reason: fmt.Sprintf("row not representable as JSON: %v", err),
			})
			continue
		}

		rt.Records = append(rt.Records, RawRecord{
			Line:   lineNo,
			Fields: fields,
			JSON:   doc,
		})
	}

	return rt, nil
}
