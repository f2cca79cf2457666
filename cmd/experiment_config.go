package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/dinesim/dinesim/sim"
)

// ExperimentFile is the YAML schema for batch runs.
type ExperimentFile struct {
	Experiments []ExperimentSpec `yaml:"experiments"`
}

// ExperimentSpec is one experiment in a YAML batch file. Zero-valued timing
// fields fall back to the engine defaults.
type ExperimentSpec struct {
	Strategy     string `yaml:"strategy"`
	Philosophers int    `yaml:"philosophers"`
	Meals        int    `yaml:"meals"`
	Seats        int    `yaml:"seats"`
	Seed         int64  `yaml:"seed"`
	ThinkMax     int    `yaml:"think_max"`
	EatUnits     int    `yaml:"eat"`
	TimeoutUnits int    `yaml:"timeout"`
}

// ToConfig maps the YAML spec onto an engine config.
func (s ExperimentSpec) ToConfig() sim.Config {
	return sim.Config{
		Philosophers: s.Philosophers,
		Meals:        s.Meals,
		Strategy:     sim.Strategy(s.Strategy),
		Seats:        s.Seats,
		Seed:         s.Seed,
		Timing: sim.TimingConfig{
			ThinkMax:     s.ThinkMax,
			EatUnits:     s.EatUnits,
			TimeoutUnits: s.TimeoutUnits,
		},
	}
}

// Configs maps every spec in the file onto engine configs.
func (f *ExperimentFile) Configs() []sim.Config {
	configs := make([]sim.Config, len(f.Experiments))
	for i, spec := range f.Experiments {
		configs[i] = spec.ToConfig()
	}
	return configs
}

// LoadExperimentFile reads and parses a YAML batch file.
func LoadExperimentFile(path string) (*ExperimentFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file ExperimentFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(file.Experiments) == 0 {
		return nil, fmt.Errorf("%s: no experiments defined", path)
	}
	return &file, nil
}
