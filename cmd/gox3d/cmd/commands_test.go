package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/gox3d/internal/dataset"
)

func TestRunSummarize(t *testing.T) {
	f := newFixture(t)
	defer func() {
		summarizeInput, summarizeJSON, summarizeLegacy = "", false, false
	}()

	t.Run("text", func(t *testing.T) {
		out := captureOutput(t)
		summarizeInput, summarizeJSON = f.table, false

		require.NoError(t, runSummarize(summarizeCmd, nil))
		text := out.String()
		assert.Contains(t, text, "Summary: "+f.table)
		assert.Contains(t, text, "Data Type:       multi")
		assert.Contains(t, text, "Row Keys:        UK, France, Spain")
		assert.Contains(t, text, "Column Keys:     Apples, Oranges")
		assert.Contains(t, text, "Row Totals (max 18)")
		assert.Contains(t, text, "Column Totals (max 21)")
	})

	t.Run("json", func(t *testing.T) {
		out := captureOutput(t)
		summarizeInput, summarizeJSON = f.table, true

		require.NoError(t, runSummarize(summarizeCmd, nil))
		var got struct {
			DataType     string             `json:"dataType"`
			RowKeys      []string           `json:"rowKeys"`
			ColumnKeys   []string           `json:"columnKeys"`
			ColumnTotals map[string]float64 `json:"columnTotals"`
			ValueExtent  [2]float64         `json:"valueExtent"`
		}
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, "multi", got.DataType)
		assert.Equal(t, []string{"UK", "France", "Spain"}, got.RowKeys)
		assert.Equal(t, []string{"Apples", "Oranges"}, got.ColumnKeys)
		assert.Equal(t, map[string]float64{"Apples": 21, "Oranges": 16}, got.ColumnTotals)
		assert.Equal(t, [2]float64{2, 11}, got.ValueExtent)
	})

	t.Run("missing file", func(t *testing.T) {
		captureOutput(t)
		summarizeInput = filepath.Join(f.dir, "nope.yaml")
		assert.Error(t, runSummarize(summarizeCmd, nil))
	})
}

func TestRunRotate(t *testing.T) {
	f := newFixture(t)
	defer func() {
		rotateInput, rotateOutput, rotateJSON = "", "", false
	}()

	tests := []struct {
		name string
		json bool
	}{
		{"yaml", false},
		{"json", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureOutput(t)
			rotateInput, rotateOutput, rotateJSON = f.table, "", tt.json

			require.NoError(t, runRotate(rotateCmd, nil))
			rotated, err := dataset.DecodeTable(bytes.NewReader(out.Bytes()))
			require.NoError(t, err)

			series := rotated.Series()
			require.Len(t, series, 2)
			assert.Equal(t, "Apples", series[0].Key)
			assert.Equal(t, "Oranges", series[1].Key)
			require.Len(t, series[1].Values, 3)
			assert.Equal(t, "Spain", series[1].Values[2].Key)
			assert.Equal(t, 11.0, series[1].Values[2].Value)
		})
	}

	t.Run("to file", func(t *testing.T) {
		captureOutput(t)
		rotateInput, rotateJSON = f.table, false
		rotateOutput = filepath.Join(f.dir, "rotated", "regions.yaml")

		require.NoError(t, runRotate(rotateCmd, nil))
		_, err := readTable(rotateOutput)
		assert.NoError(t, err)
	})
}

func TestRunSurface(t *testing.T) {
	f := newFixture(t)
	defer func() {
		surfacePlot, surfaceInput, surfaceOutput = "", "", ""
		surfaceSceneOnly, surfaceRotate, surfaceView = false, false, ""
	}()

	t.Run("scene only from input", func(t *testing.T) {
		out := captureOutput(t)
		surfacePlot, surfaceInput, surfaceOutput = "", f.table, ""
		surfaceSceneOnly, surfaceView = true, "dimetric"

		require.NoError(t, runSurface(surfaceCmd, nil))
		text := out.String()
		assert.True(t, strings.HasPrefix(strings.TrimSpace(text), "<x3d"))
		assert.NotContains(t, text, "<html")
		assert.Contains(t, text, "<indexedfaceset")
	})

	t.Run("page from plot", func(t *testing.T) {
		captureOutput(t)
		surfacePlot, surfaceInput, surfaceOutput = "regions", "", ""
		surfaceSceneOnly, surfaceView = false, ""

		require.NoError(t, runSurface(surfaceCmd, nil))
		page, err := os.ReadFile(f.surface)
		require.NoError(t, err)
		assert.Contains(t, string(page), "<title>regions</title>")
		assert.Contains(t, string(page), "x3dom")
	})

	t.Run("wrong plot type", func(t *testing.T) {
		captureOutput(t)
		surfacePlot, surfaceInput = "plant", ""
		err := runSurface(surfaceCmd, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "scatter plot")
	})
}

func TestRunScatter(t *testing.T) {
	f := newFixture(t)
	defer func() {
		scatterPlotName, scatterOutput = "", ""
		scatterX, scatterY, scatterZ, scatterBand = "", "", "", ""
	}()

	t.Run("page to plot output", func(t *testing.T) {
		captureOutput(t)
		scatterPlotName = "plant"

		require.NoError(t, runScatter(scatterCmd, nil))
		page, err := os.ReadFile(f.scatter)
		require.NoError(t, err)
		for _, id := range []string{`id="shape-0"`, `id="shape-1"`, `id="shape-2"`} {
			assert.Contains(t, string(page), id)
		}
	})

	t.Run("unknown axis", func(t *testing.T) {
		captureOutput(t)
		scatterPlotName, scatterX = "plant", "NOPE"
		assert.Error(t, runScatter(scatterCmd, nil))
		scatterX = ""
	})

	t.Run("not a scatter plot", func(t *testing.T) {
		captureOutput(t)
		scatterPlotName = "regions"
		assert.Error(t, runScatter(scatterCmd, nil))
	})
}

func TestRunPreview(t *testing.T) {
	f := newFixture(t)
	defer func() {
		previewPlot, previewOutput, previewBand = "", "", ""
		previewWidth, previewHeight = 960, 600
	}()

	out := captureOutput(t)
	previewPlot = "plant"
	previewOutput = filepath.Join(f.dir, "plant.png")
	previewBand = "B7"
	previewWidth, previewHeight = 320, 200

	require.NoError(t, runPreview(previewCmd, nil))
	img, err := os.ReadFile(previewOutput)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, []byte("\x89PNG")))
	assert.Contains(t, out.String(), "wrote "+previewOutput)
}

func TestRunRender(t *testing.T) {
	t.Run("all plots", func(t *testing.T) {
		f := newFixture(t)
		out := captureOutput(t)

		require.NoError(t, runRender(renderCmd, nil))
		assert.FileExists(t, f.scatter)
		assert.FileExists(t, f.surface)
		assert.Contains(t, out.String(), "plant -> "+f.scatter)
		assert.Contains(t, out.String(), "regions -> "+f.surface)
	})

	t.Run("one failing plot", func(t *testing.T) {
		f := newFixture(t)
		out := captureOutput(t)
		require.NoError(t, os.Remove(f.table))

		err := runRender(renderCmd, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 plots failed")
		assert.FileExists(t, f.scatter)
		assert.Contains(t, out.String(), "regions:")
	})
}

func TestRunListPlots(t *testing.T) {
	f := newFixture(t)
	out := captureOutput(t)

	require.NoError(t, runListPlots(listPlotsCmd, nil))
	text := out.String()
	assert.Contains(t, text, "Plots defined in "+f.config)
	assert.Contains(t, text, "csv:"+f.csv)
	assert.Contains(t, text, "FWFLOW/MW/THRTEMP [All]")
	assert.Contains(t, text, "yaml:"+f.table)
	assert.Contains(t, text, "Total: 2 plot(s)")
}

func TestPrintTable(t *testing.T) {
	out := captureOutput(t)

	printTable([]string{"Name", "Type"}, [][]string{
		{"a", "scatter"},
		{"longer", "x"},
	})

	assert.Equal(t, "  Name    Type\n"+
		"  ------  -------\n"+
		"  a       scatter\n"+
		"  longer  x\n", out.String())
}

func TestScatterControls(t *testing.T) {
	newFixture(t)
	cfg, err := loadConfig(false)
	require.NoError(t, err)
	plot, err := cfg.GetPlot("plant")
	require.NoError(t, err)

	c := scatterControls(plot, "TAF", "", "O2", "B8")
	assert.Equal(t, "TAF", c.X)
	assert.Equal(t, "MW", c.Y)
	assert.Equal(t, "O2", c.Z)
	assert.Equal(t, "B8", c.Band)
}

func TestDisplayAddr(t *testing.T) {
	assert.Equal(t, "localhost:8080", displayAddr(":8080"))
	assert.Equal(t, "0.0.0.0:9000", displayAddr("0.0.0.0:9000"))
}
