// Package sqlutil builds the read queries that SQL-backed plots issue.
package sqlutil

import (
	"fmt"
	"regexp"
	"strings"
)

// QuoteIdentifier quotes a MySQL identifier with backticks, doubling any
// embedded backticks.
// Example: "MW" -> "`MW`"
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// Column and table names come from config and from the HTTP control form, so
// only plain identifiers are accepted.
var validIdentifierRegex = regexp.MustCompile("^[a-zA-Z0-9_]+$")

// IsValidIdentifier reports whether name only contains letters, digits and underscores.
func IsValidIdentifier(name string) bool {
	return validIdentifierRegex.MatchString(name)
}

// InvalidIdentifierError is returned when an identifier contains invalid characters.
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return "invalid identifier: " + e.Name + " (must contain only alphanumeric characters and underscores)"
}

// QuoteIdentifierSafe validates name and quotes it.
func QuoteIdentifierSafe(name string) (string, error) {
	if !IsValidIdentifier(name) {
		return "", &InvalidIdentifierError{Name: name}
	}
	return QuoteIdentifier(name), nil
}

// QuoteQualified quotes a "schema.table" or "table" name part by part.
func QuoteQualified(name string) (string, error) {
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return "", &InvalidIdentifierError{Name: name}
	}
	quoted := make([]string, len(parts))
	for i, p := range parts {
		q, err := QuoteIdentifierSafe(p)
		if err != nil {
			return "", &InvalidIdentifierError{Name: name}
		}
		quoted[i] = q
	}
	return strings.Join(quoted, "."), nil
}

// SelectColumns builds a SELECT of the given columns from table.
// Rows come back in storage order unless orderBy names a column.
func SelectColumns(table string, columns []string, orderBy string) (string, error) {
	if len(columns) == 0 {
		return "", fmt.Errorf("no columns to select from %s", table)
	}

	from, err := QuoteQualified(table)
	if err != nil {
		return "", err
	}

	cols := make([]string, len(columns))
	for i, c := range columns {
		q, err := QuoteIdentifierSafe(c)
		if err != nil {
			return "", err
		}
		cols[i] = q
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), from)
	if orderBy != "" {
		q, err := QuoteIdentifierSafe(orderBy)
		if err != nil {
			return "", err
		}
		query += " ORDER BY " + q
	}
	return query, nil
}
