package datasets

import (
	"context"
	"fmt"
	"os"

	"github.com/apache/arrow/go/v13/arrow"
	"github.com/apache/arrow/go/v13/arrow/array"
	"github.com/apache/arrow/go/v13/arrow/memory"
	"github.com/apache/arrow/go/v13/parquet/file"
	"github.com/apache/arrow/go/v13/parquet/pqarrow"

	"github.com/kevinmastascusa/symbolic-math-ai/pkg/errors"
)

// ReadParquet reads a Parquet file holding string "question" and "answer"
// columns, the layout GSM8K ships in on Hugging Face.
func ReadParquet(ctx context.Context, path string) (*RawTable, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.DatasetNotFound, "dataset file not found"),
			errors.Fields{"path": path})
	}

	reader, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.MalformedRecord, "failed to open Parquet file"),
			errors.Fields{"path": path})
	}
	defer reader.Close()

	arrowReader, err := pqarrow.NewFileReader(reader, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.MalformedRecord, "failed to create Arrow reader"),
			errors.Fields{"path": path})
	}

	schema, err := arrowReader.Schema()
	if err != nil {
		return nil, errors.Wrap(err, errors.MalformedRecord, "failed to read Parquet schema")
	}

	questionIndices := schema.FieldIndices("question")
	answerIndices := schema.FieldIndices("answer")
	if len(questionIndices) == 0 || len(answerIndices) == 0 {
		return nil, errors.WithFields(
			errors.New(errors.SchemaMismatch, "columns 'question' and 'answer' not found in Parquet schema"),
			errors.Fields{"path": path})
	}

	table, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.MalformedRecord, "failed to read Parquet table")
	}
	defer table.Release()

	questions, err := stringColumn(table.Column(questionIndices[0]))
	if err != nil {
		return nil, errors.WithFields(err, errors.Fields{"column": "question"})
	}
	answers, err := stringColumn(table.Column(answerIndices[0]))
	if err != nil {
		return nil, errors.WithFields(err, errors.Fields{"column": "answer"})
	}

	rt := &RawTable{Records: make([]RawRecord, 0, len(questions))}
	for i := range questions {
		rt.Records = append(rt.Records, RawRecord{
			Line: i + 1,
			Fields: map[string]interface{}{
				"question": questions[i],
				"answer":   answers[i],
			},
		})
	}
	return rt, nil
}

// stringColumn flattens a chunked string column into a slice.
func stringColumn(col *arrow.Column) ([]string, error) {
	out := make([]string, 0, col.Len())
	for _, chunk := range col.Data().Chunks() {
		str, ok := chunk.(*array.String)
		if !ok {
			return nil, errors.New(errors.SchemaMismatch,
				fmt.Sprintf("expected string column, got %s", chunk.DataType()))
		}
		for i := 0; i < str.Len(); i++ {
			out = append(out, str.Value(i))
		}
	}
	return out, nil
}
