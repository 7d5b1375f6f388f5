package sim

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// BenchmarkFile is the on-disk layout of a discipline benchmark file:
//
//	version: "1"
//	disciplines:
//	  "50 FR": {min: 19.0, max: 23.0}
//
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type BenchmarkFile struct {
	Version     string               `yaml:"version"`
	Disciplines map[string]TimeRange `yaml:"disciplines"`
}

// LoadBenchmarks reads recruit time ranges from a YAML benchmark file.
// Unknown disciplines and unknown fields are errors; disciplines the file
// omits keep their DefaultTimeRanges entry.
func LoadBenchmarks(path string) (map[Discipline]TimeRange, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading benchmarks file: %w", err)
	}

	var file BenchmarkFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing benchmarks file: %w", err)
	}

	ranges := make(map[Discipline]TimeRange, len(file.Disciplines))
	for name, r := range file.Disciplines {
		d := Discipline(name)
		if _, ok := DefaultTimeRanges[d]; !ok {
			return nil, fmt.Errorf("benchmarks file: unknown discipline %q", name)
		}
		if r.Min <= 0 || r.Max <= r.Min {
			return nil, fmt.Errorf("benchmarks file: discipline %q needs 0 < min < max, got [%g, %g]", name, r.Min, r.Max)
		}
		ranges[d] = r
	}
	for _, d := range Disciplines {
		if _, ok := ranges[d]; !ok {
			logrus.Warnf("benchmarks file %s has no entry for %q; using default range", path, d)
		}
	}
	return ranges, nil
}
