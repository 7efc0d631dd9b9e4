package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dbsmedya/gox3d/internal/config"
)

var (
	// ErrUnknownColumn is returned when a requested column is not in the source.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrUnsupportedFormat is returned for a plot whose format has no loader.
	ErrUnsupportedFormat = errors.New("unsupported source format")
)

// Loader reads the requested columns of a tabular source.
type Loader interface {
	Load(ctx context.Context, columns []string) (*Frame, error)
	// Describe names the source for logs.
	Describe() string
}

// NewLoader picks a loader for a plot by its source format.
// db is only needed for mysql plots.
func NewLoader(plot *config.PlotConfig, db *sql.DB) (Loader, error) {
	switch format := plot.SourceFormat(); format {
	case "csv":
		return NewCSVLoader(plot.Input), nil
	case "parquet":
		return NewParquetLoader(plot.Input), nil
	case "mysql":
		if db == nil {
			return nil, fmt.Errorf("mysql source %q needs a database connection", plot.Table)
		}
		return NewSQLLoader(db, plot.Table, plot.OrderBy), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
