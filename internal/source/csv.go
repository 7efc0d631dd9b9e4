package source

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

const defaultCSVChunk = 4096

// Cells treated as missing.
var csvNullValues = []string{"", "NA", "N/A", "null", "NULL"}

// CSVLoader reads a headed CSV file with the Arrow CSV reader.
type CSVLoader struct {
	Path  string
	Chunk int

	mem memory.Allocator
}

// NewCSVLoader creates a loader for the CSV file at path.
func NewCSVLoader(path string) *CSVLoader {
	return &CSVLoader{
		Path:  path,
		Chunk: defaultCSVChunk,
		mem:   memory.NewGoAllocator(),
	}
}

// Describe implements Loader.
func (l *CSVLoader) Describe() string {
	return "csv:" + l.Path
}

// Load implements Loader. Requested columns are read as float64.
func (l *CSVLoader) Load(ctx context.Context, columns []string) (*Frame, error) {
	cols := uniqueColumns(columns)

	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	types := make(map[string]arrow.DataType, len(cols))
	for _, c := range cols {
		types[c] = arrow.PrimitiveTypes.Float64
	}

	r := csv.NewInferringReader(f,
		csv.WithHeader(true),
		csv.WithChunk(l.Chunk),
		csv.WithIncludeColumns(cols),
		csv.WithColumnTypes(types),
		csv.WithNullReader(true, csvNullValues...),
		csv.WithAllocator(l.mem),
	)
	defer r.Release()

	data := make(map[string][]float64, len(cols))
	for r.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec := r.Record()
		for i, c := range cols {
			if data[c], err = appendArray(data[c], c, rec.Column(i)); err != nil {
				return nil, err
			}
		}
	}
	if err := r.Err(); err != nil {
		return nil, csvError(err)
	}

	return NewFrame(cols, data)
}

// The reader reports a missing included column as a wrapped ErrMismatchFields;
// a bare ErrMismatchFields is a ragged row.
func csvError(err error) error {
	if err != csv.ErrMismatchFields && errors.Is(err, csv.ErrMismatchFields) {
		return fmt.Errorf("%w: %v", ErrUnknownColumn, err)
	}
	return fmt.Errorf("failed to read csv file: %w", err)
}
