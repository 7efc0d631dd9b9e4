package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/dbsmedya/gox3d/internal/sqlutil"
)

// MySQL "Unknown column" error number.
const erBadFieldError = 1054

// SQLLoader reads columns of a MySQL table.
type SQLLoader struct {
	DB      *sql.DB
	Table   string
	OrderBy string
}

// NewSQLLoader creates a loader for table over db.
func NewSQLLoader(db *sql.DB, table, orderBy string) *SQLLoader {
	return &SQLLoader{DB: db, Table: table, OrderBy: orderBy}
}

// Describe implements Loader.
func (l *SQLLoader) Describe() string {
	return "mysql:" + l.Table
}

// Load implements Loader. NULL cells become NaN.
func (l *SQLLoader) Load(ctx context.Context, columns []string) (*Frame, error) {
	cols := uniqueColumns(columns)

	query, err := sqlutil.SelectColumns(l.Table, cols, l.OrderBy)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := l.DB.QueryContext(ctx, query)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == erBadFieldError {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, myErr.Message)
		}
		return nil, fmt.Errorf("failed to query %s: %w", l.Table, err)
	}
	defer rows.Close()

	data := make(map[string][]float64, len(cols))
	cells := make([]sql.NullFloat64, len(cols))
	dest := make([]interface{}, len(cols))
	for i := range cells {
		dest[i] = &cells[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, c := range cols {
			v := nan
			if cells[i].Valid {
				v = cells[i].Float64
			}
			data[c] = append(data[c], v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return NewFrame(cols, data)
}
