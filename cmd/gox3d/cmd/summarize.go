package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/gox3d/internal/dataset"
)

var (
	summarizeInput  string
	summarizeJSON   bool
	summarizeLegacy bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize a table document",
	Long: `Summarize reads a single or multi-series table (YAML or JSON) and prints
its keys, totals, value and coordinate extents, and color thresholds.

Example:
  gox3d summarize --input readings.yaml
  gox3d summarize --input readings.yaml --json --legacy-order`,
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVarP(&summarizeInput, "input", "i", "",
		"Table document to summarize (required)")
	summarizeCmd.MarkFlagRequired("input")

	summarizeCmd.Flags().BoolVar(&summarizeJSON, "json", false,
		"Print the summary as JSON")
	summarizeCmd.Flags().BoolVar(&summarizeLegacy, "legacy-order", false,
		"Order multi-series column keys by last appearance")

	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	t, err := readTable(summarizeInput)
	if err != nil {
		return err
	}

	var opts []dataset.Option
	if summarizeLegacy {
		opts = append(opts, dataset.WithLegacyColumnOrder())
	}
	s, err := dataset.Summarize(t, opts...)
	if err != nil {
		return fmt.Errorf("failed to summarize %s: %w", summarizeInput, err)
	}

	if summarizeJSON {
		enc := json.NewEncoder(outputWriter)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	printSummary(summarizeInput, s)
	return nil
}

func printSummary(name string, s *dataset.Summary) {
	printHeader("Summary: %s", name)

	fmt.Fprintln(outputWriter)
	printSection("Overview")
	fmt.Fprintf(outputWriter, "  Data Type:       %s\n", s.DataType)
	if s.DataType == dataset.SingleSeries {
		fmt.Fprintf(outputWriter, "  Row Key:         %s\n", s.RowKey)
		fmt.Fprintf(outputWriter, "  Row Total:       %s\n", formatFloat(s.RowTotal))
	} else {
		fmt.Fprintf(outputWriter, "  Row Keys:        %s\n", strings.Join(s.RowKeys, ", "))
	}
	fmt.Fprintf(outputWriter, "  Column Keys:     %s\n", strings.Join(s.ColumnKeys, ", "))
	fmt.Fprintf(outputWriter, "  Record Fields:   %s\n", strings.Join(s.RowValuesKeys, ", "))
	fmt.Fprintf(outputWriter, "  Value Extent:    %s\n", formatFloats(s.ValueExtent[:]))
	fmt.Fprintf(outputWriter, "  Decimal Places:  %d\n", s.MaxDecimalPlace)
	fmt.Fprintf(outputWriter, "  Thresholds:      %s\n", formatFloats(s.Thresholds))

	if len(s.CoordinatesExtent) > 0 {
		fmt.Fprintln(outputWriter)
		printSection("Coordinate Extents")
		var rows [][]string
		for _, k := range []string{"x", "y", "z"} {
			if e, ok := s.CoordinatesExtent[k]; ok {
				rows = append(rows, []string{k, formatFloat(e[0]), formatFloat(e[1])})
			}
		}
		printTable([]string{"Axis", "Min", "Max"}, rows)
	}

	if s.DataType == dataset.MultiSeries {
		fmt.Fprintln(outputWriter)
		printSection(fmt.Sprintf("Row Totals (max %s)", formatFloat(s.RowTotalsMax)))
		printTable([]string{"Row", "Total"}, totalRows(s.RowTotals))

		fmt.Fprintln(outputWriter)
		printSection(fmt.Sprintf("Column Totals (max %s)", formatFloat(s.ColumnTotalsMax)))
		printTable([]string{"Column", "Total"}, totalRows(s.ColumnTotals))
	}
}

func totalRows(m *orderedmap.OrderedMap[string, float64]) [][]string {
	rows := make([][]string, 0, m.Len())
	for el := m.Front(); el != nil; el = el.Next() {
		rows = append(rows, []string{el.Key, formatFloat(el.Value)})
	}
	return rows
}
