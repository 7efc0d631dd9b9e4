package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommandStructure(t *testing.T) {
	assert.Equal(t, "validate", validateCmd.Use)
	assert.Contains(t, validateCmd.Short, "Validate")
	assert.NotNil(t, validateCmd.RunE)

	skip, err := validateCmd.Flags().GetBool("skip-db")
	require.NoError(t, err)
	assert.False(t, skip)
}

func TestValidateCommandChecks(t *testing.T) {
	doc := validateCmd.Long
	assert.Contains(t, doc, "Checks performed")
	assert.Contains(t, doc, "Input files exist")
	assert.Contains(t, doc, "Scatter axes")
	assert.Contains(t, doc, "Database connectivity")
	assert.Contains(t, doc, "gox3d validate")
}

func TestRunValidate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		f := newFixture(t)
		out := captureOutput(t)

		require.NoError(t, runValidate(validateCmd, nil))
		text := out.String()
		assert.Contains(t, text, "Config file: "+f.config)
		assert.Contains(t, text, "Plots found: 2")
		assert.Contains(t, text, "configuration is valid")
		assert.Contains(t, text, "plant: csv:"+f.csv)
		assert.Contains(t, text, "all plots validated successfully")
	})

	t.Run("missing input", func(t *testing.T) {
		f := newFixture(t)
		out := captureOutput(t)
		require.NoError(t, os.Remove(f.csv))

		err := runValidate(validateCmd, nil)
		require.Error(t, err)
		assert.Contains(t, out.String(), "plant: input:")
		assert.NotContains(t, out.String(), "all plots validated successfully")
	})

	t.Run("invalid config", func(t *testing.T) {
		f := newFixture(t)
		out := captureOutput(t)
		bad := filepath.Join(f.dir, "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("plots:\n  broken:\n    type: bar\n    input: x.csv\n"), 0o644))
		cfgFile = bad

		require.Error(t, runValidate(validateCmd, nil))
		assert.Contains(t, out.String(), "configuration is invalid")
		assert.Contains(t, out.String(), "plots.broken.type")
	})
}
