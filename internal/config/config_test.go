package config

import (
	"os"
	"path/filepath"
	"savings-route-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvGetters(t *testing.T) {
	t.Setenv("SRS_STR", " value ")
	t.Setenv("SRS_INT", "42")
	t.Setenv("SRS_FLOAT", "0.25")
	t.Setenv("SRS_DUR", "90s")
	t.Setenv("SRS_BAD", "nope")
	t.Setenv("SRS_BLANK", "  ")

	assert.Equal(t, "value", Get("SRS_STR", "x"))
	assert.Equal(t, "x", Get("SRS_BLANK", "x"))
	assert.Equal(t, "x", Get("SRS_UNSET", "x"))

	assert.Equal(t, 42, GetInt("SRS_INT", 1))
	assert.Equal(t, 1, GetInt("SRS_BAD", 1))
	assert.Equal(t, 0.25, GetFloat("SRS_FLOAT", 1))
	assert.Equal(t, 1.0, GetFloat("SRS_BAD", 1))
	assert.Equal(t, 90*time.Second, GetDuration("SRS_DUR", time.Second))
	assert.Equal(t, time.Second, GetDuration("SRS_BAD", time.Second))
}

func TestLoadFromDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SRS_FROM_FILE=yes\n"), 0o644))
	t.Setenv("SRS_FROM_FILE", "")
	require.NoError(t, os.Unsetenv("SRS_FROM_FILE"))

	Load(path)
	assert.Equal(t, "yes", Get("SRS_FROM_FILE", "no"))
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "seed.yaml", `
instances:
  - name: A-n32
    file: data/A-n32_input_nodes.txt
    variant: CVRP
    capacity: 100
  - file: /abs/p5.4.q.txt
    variant: top
`)

	m, err := LoadManifest(p)
	require.NoError(t, err)
	require.Len(t, m.Instances, 2)
	assert.Equal(t, domain.VariantCVRP, m.Instances[0].Variant)
	assert.Equal(t, filepath.Join(dir, "data", "A-n32_input_nodes.txt"), m.Instances[0].File)
	assert.Equal(t, "/abs/p5.4.q.txt", m.Instances[1].File)
}

func TestLoadManifestErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		body string
	}{
		{"empty", "instances: []\n"},
		{"missing file", "instances:\n  - variant: top\n"},
		{"unknown variant", "instances:\n  - file: a.txt\n    variant: tsp\n"},
		{"cvrp without capacity", "instances:\n  - file: a.txt\n    variant: cvrp\n"},
		{"not yaml", "instances: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadManifest(writeFile(t, dir, "m.yaml", tt.body))
			assert.Error(t, err)
		})
	}

	_, err := LoadManifest(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadExperiment(t *testing.T) {
	dir := t.TempDir()

	e, err := LoadExperiment(writeFile(t, dir, "exp.yaml", "instances:\n  - file: p.txt\n    variant: pjs\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, e.Alphas)
	assert.Equal(t, domain.VariantPJS, e.Instances[0].Variant)

	e, err = LoadExperiment(writeFile(t, dir, "exp.yaml", "alphas: [0, 0.5, 1]\ninstances:\n  - file: p.txt\n    variant: top\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, 1}, e.Alphas)

	_, err = LoadExperiment(writeFile(t, dir, "exp.yaml", "alphas: [2]\ninstances:\n  - file: p.txt\n    variant: top\n"))
	assert.Error(t, err)
}
