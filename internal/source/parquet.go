package source

import (
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// ParquetLoader reads a Parquet file through its Arrow schema.
type ParquetLoader struct {
	Path string

	mem memory.Allocator
}

// NewParquetLoader creates a loader for the Parquet file at path.
func NewParquetLoader(path string) *ParquetLoader {
	return &ParquetLoader{
		Path: path,
		mem:  memory.NewGoAllocator(),
	}
}

// Describe implements Loader.
func (l *ParquetLoader) Describe() string {
	return "parquet:" + l.Path
}

// Load implements Loader. Integer and float columns are widened to float64.
func (l *ParquetLoader) Load(ctx context.Context, columns []string) (*Frame, error) {
	cols := uniqueColumns(columns)

	pf, err := file.OpenParquetFile(l.Path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer pf.Close()

	fr, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, l.mem)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	schema, err := fr.Schema()
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet schema: %w", err)
	}

	indices := make([]int, len(cols))
	for i, c := range cols {
		idx := schema.FieldIndices(c)
		if len(idx) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, c)
		}
		indices[i] = idx[0]
	}

	table, err := fr.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	defer table.Release()

	data := make(map[string][]float64, len(cols))
	for i, c := range cols {
		for _, chunk := range table.Column(indices[i]).Data().Chunks() {
			if data[c], err = appendArray(data[c], c, chunk); err != nil {
				return nil, err
			}
		}
	}

	return NewFrame(cols, data)
}
