package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gox3d/internal/dataset"
)

var (
	rotateInput  string
	rotateOutput string
	rotateJSON   bool
)

var rotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Swap the rows and columns of a multi-series table",
	Long: `Rotate transposes a rectangular multi-series table so that column keys
become series keys and series keys become record keys.

Example:
  gox3d rotate --input readings.yaml --output rotated.yaml`,
	RunE: runRotate,
}

func init() {
	rotateCmd.Flags().StringVarP(&rotateInput, "input", "i", "",
		"Table document to rotate (required)")
	rotateCmd.MarkFlagRequired("input")

	rotateCmd.Flags().StringVarP(&rotateOutput, "output", "o", "",
		"Output file (default stdout)")
	rotateCmd.Flags().BoolVar(&rotateJSON, "json", false,
		"Write JSON instead of YAML")

	rootCmd.AddCommand(rotateCmd)
}

func runRotate(cmd *cobra.Command, args []string) error {
	t, err := readTable(rotateInput)
	if err != nil {
		return err
	}
	rotated, err := dataset.Rotate(t)
	if err != nil {
		return fmt.Errorf("failed to rotate %s: %w", rotateInput, err)
	}

	out, err := createOutput(rotateOutput)
	if err != nil {
		return err
	}
	defer out.Close()

	if rotateJSON {
		return dataset.EncodeTableJSON(out, rotated)
	}
	return dataset.EncodeTable(out, rotated)
}
