package config

import (
	"fmt"
	"os"
	"path/filepath"
	"savings-route-service/internal/domain"

	"gopkg.in/yaml.v3"
)

// InstanceEntry names one instance file and the parameters it is solved with.
type InstanceEntry struct {
	Name     string         `yaml:"name"`
	File     string         `yaml:"file"`
	Variant  domain.Variant `yaml:"variant"`
	Capacity float64        `yaml:"capacity"`
}

// Manifest lists the instances imported by the db tool.
type Manifest struct {
	Instances []InstanceEntry `yaml:"instances"`
}

// Experiment is a benchmark run definition for the solve CLI.
type Experiment struct {
	Alphas    []float64       `yaml:"alphas"`
	Instances []InstanceEntry `yaml:"instances"`
}

// LoadManifest reads a manifest file. Relative instance paths are resolved
// against the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	if err := readYAML(path, &m); err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}
	if len(m.Instances) == 0 {
		return nil, fmt.Errorf("load manifest %q: no instances listed", path)
	}
	if err := resolve(path, m.Instances); err != nil {
		return nil, fmt.Errorf("load manifest %q: %w", path, err)
	}
	return &m, nil
}

// LoadExperiment reads an experiment file. When no alphas are listed the
// run uses alpha 1.
func LoadExperiment(path string) (*Experiment, error) {
	var e Experiment
	if err := readYAML(path, &e); err != nil {
		return nil, fmt.Errorf("load experiment: %w", err)
	}
	if len(e.Instances) == 0 {
		return nil, fmt.Errorf("load experiment %q: no instances listed", path)
	}
	if len(e.Alphas) == 0 {
		e.Alphas = []float64{1}
	}
	for _, a := range e.Alphas {
		if a < 0 || a > 1 {
			return nil, fmt.Errorf("load experiment %q: alpha %v outside [0, 1]", path, a)
		}
	}
	if err := resolve(path, e.Instances); err != nil {
		return nil, fmt.Errorf("load experiment %q: %w", path, err)
	}
	return &e, nil
}

func readYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %q: %w", path, err)
	}
	return nil
}

func resolve(path string, entries []InstanceEntry) error {
	base := filepath.Dir(path)
	for i := range entries {
		e := &entries[i]
		if e.File == "" {
			return fmt.Errorf("instance entry %d: file is required", i+1)
		}
		v, err := domain.ParseVariant(string(e.Variant))
		if err != nil {
			return fmt.Errorf("instance entry %d: %w", i+1, err)
		}
		e.Variant = v
		if v == domain.VariantCVRP && e.Capacity <= 0 {
			return fmt.Errorf("instance entry %d: cvrp needs a positive capacity", i+1)
		}
		if !filepath.IsAbs(e.File) {
			e.File = filepath.Join(base, e.File)
		}
	}
	return nil
}
