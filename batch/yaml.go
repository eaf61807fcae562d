package batch

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a batch description.
//
//	id: sweep-1
//	general:
//	  model: chemotaxis
//	  end_step: 1000
//	runs:
//	  - seed: 1
//	    variables: {rate: 0.5}
//	grid:
//	  seeds: [1, 2, 3]
//	  variables:
//	    rate: [0.1, 0.5]
//
// Explicit runs come first, followed by the grid expansion.
type File struct {
	ID      string                  `yaml:"id,omitempty"`
	General GeneralSimulationConfig `yaml:"general"`
	Runs    []SimulationConfig      `yaml:"runs,omitempty"`
	Grid    *Grid                   `yaml:"grid,omitempty"`
}

// Grid describes a cartesian sweep.
type Grid struct {
	Seeds     []int64              `yaml:"seeds,omitempty"`
	Variables map[string][]float64 `yaml:"variables,omitempty"`
}

// LoadYAML decodes a batch description. Unknown keys are rejected.
func LoadYAML(r io.Reader, optFns ...func(o *Options)) (*SimulationsSet, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyBatch
		}
		return nil, fmt.Errorf("parsing batch file: %w", err)
	}

	return f.Build(optFns...)
}

// LoadYAMLFile reads and decodes the batch description at path.
func LoadYAMLFile(path string, optFns ...func(o *Options)) (*SimulationsSet, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}
	defer fh.Close()

	return LoadYAML(fh, optFns...)
}

// Build turns the decoded file into a SimulationsSet. An ID in the file is
// used unless optFns set one.
func (f File) Build(optFns ...func(o *Options)) (*SimulationsSet, error) {
	runs := append([]SimulationConfig(nil), f.Runs...)
	if f.Grid != nil {
		runs = append(runs, ExpandGrid(f.Grid.Seeds, f.Grid.Variables)...)
	}

	if f.ID != "" {
		optFns = append([]func(o *Options){WithID(f.ID)}, optFns...)
	}

	return NewSimulationsSet(f.General, runs, optFns...)
}

// MarshalYAML encodes the batch in the File layout with explicit runs.
func (s *SimulationsSet) MarshalYAML() (any, error) {
	return File{
		ID:      s.id,
		General: s.general.clone(),
		Runs:    s.RunConfigs(),
	}, nil
}
