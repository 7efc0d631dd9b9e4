package sqlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"MW", "`MW`"},
		{"plant_readings", "`plant_readings`"},
		{"my`col", "`my``col`"},
		{"", "``"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, QuoteIdentifier(tt.input))
		})
	}
}

func TestQuoteIdentifierSafe(t *testing.T) {
	q, err := QuoteIdentifierSafe("THRTEMP")
	require.NoError(t, err)
	assert.Equal(t, "`THRTEMP`", q)

	for _, bad := range []string{"", "MW; DROP TABLE x", "a-b", "col`", "Angle "} {
		t.Run(bad, func(t *testing.T) {
			_, err := QuoteIdentifierSafe(bad)
			var invalid *InvalidIdentifierError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, bad, invalid.Name)
		})
	}
}

func TestQuoteQualified(t *testing.T) {
	q, err := QuoteQualified("plant.readings")
	require.NoError(t, err)
	assert.Equal(t, "`plant`.`readings`", q)

	q, err = QuoteQualified("readings")
	require.NoError(t, err)
	assert.Equal(t, "`readings`", q)

	_, err = QuoteQualified("a.b.c")
	assert.Error(t, err)

	_, err = QuoteQualified("plant.")
	assert.Error(t, err)
}

func TestSelectColumns(t *testing.T) {
	tests := []struct {
		name     string
		table    string
		columns  []string
		orderBy  string
		expected string
		wantErr  bool
	}{
		{
			name:     "three axes",
			table:    "readings",
			columns:  []string{"THRTEMP", "MW", "FWFLOW"},
			expected: "SELECT `THRTEMP`, `MW`, `FWFLOW` FROM `readings`",
		},
		{
			name:     "ordered",
			table:    "plant.readings",
			columns:  []string{"MW"},
			orderBy:  "id",
			expected: "SELECT `MW` FROM `plant`.`readings` ORDER BY `id`",
		},
		{name: "no columns", table: "readings", wantErr: true},
		{name: "bad column", table: "readings", columns: []string{"MW)"}, wantErr: true},
		{name: "bad table", table: "read ings", columns: []string{"MW"}, wantErr: true},
		{name: "bad order", table: "readings", columns: []string{"MW"}, orderBy: "1;", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectColumns(tt.table, tt.columns, tt.orderBy)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
