package cmd

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunVersion(t *testing.T) {
	originalVersion, originalCommit := Version, Commit
	defer func() {
		Version, Commit = originalVersion, originalCommit
	}()

	tests := []struct {
		name    string
		version string
		commit  string
		first   string
		exact   bool
	}{
		{"dev build", "0.0.1-dev", "unknown", "gox3d version 0.0.1-dev", false},
		{"release build", "1.2.0", "9f8e7d6", "gox3d version 1.2.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit = tt.version, tt.commit

			var buf bytes.Buffer
			versionCmd.SetOut(&buf)
			runVersion(versionCmd, nil)

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			require.Len(t, lines, 4)
			assert.Equal(t, tt.first, lines[0])
			assert.Contains(t, lines[1], "Commit: ")
			if tt.exact {
				assert.Contains(t, lines[1], "Commit: "+tt.commit)
			}
			assert.Contains(t, lines[2], runtime.Version())
			assert.Contains(t, lines[3], runtime.GOOS+"/"+runtime.GOARCH)
		})
	}
}

func TestBuildCommit(t *testing.T) {
	original := Commit
	defer func() { Commit = original }()

	Commit = "abc1234"
	assert.Equal(t, "abc1234", buildCommit())

	Commit = "unknown"
	assert.NotEmpty(t, buildCommit())
}
