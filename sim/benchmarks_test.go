package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBenchmarks(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "benchmarks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadBenchmarks_Valid(t *testing.T) {
	path := writeBenchmarks(t, `
version: "1"
disciplines:
  "50 FR": {min: 20.5, max: 24.0}
  "200 IM": {min: 110.0, max: 125.0}
`)
	ranges, err := LoadBenchmarks(path)
	require.NoError(t, err)
	assert.Equal(t, map[Discipline]TimeRange{
		"50 FR":  {Min: 20.5, Max: 24.0},
		"200 IM": {Min: 110.0, Max: 125.0},
	}, ranges)
}

func TestLoadBenchmarks_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown field", "version: \"1\"\nunits: seconds\n"},
		{"unknown discipline", "disciplines:\n  \"25 DOG\": {min: 10, max: 20}\n"},
		{"inverted range", "disciplines:\n  \"50 FR\": {min: 24, max: 20}\n"},
		{"zero minimum", "disciplines:\n  \"50 FR\": {min: 0, max: 20}\n"},
		{"malformed yaml", "disciplines: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBenchmarks(writeBenchmarks(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadBenchmarks_MissingFile(t *testing.T) {
	_, err := LoadBenchmarks(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
