package instances

import (
	"os"
	"path/filepath"
	"savings-route-service/internal/domain"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cvrpFile = `0 0 0
0 1 5
0 2	5

0 -10 5
`

const topFile = `p1.2.a
n;2
m;15.5
0;0;0
3;0;5
6;0;5
10;0;0
`

func TestLoadCVRP(t *testing.T) {
	in, err := Load(strings.NewReader(cvrpFile), "A-n4", domain.VariantCVRP, 10)
	require.NoError(t, err)

	assert.Equal(t, "A-n4", in.Name)
	assert.Equal(t, domain.VariantCVRP, in.Variant)
	assert.Equal(t, 10.0, in.Capacity)
	require.Len(t, in.Points, 4)
	assert.Equal(t, -10.0, in.Points[3].Y)
	assert.Equal(t, 5.0, in.Points[2].Demand)
}

func TestLoadTOP(t *testing.T) {
	for _, v := range []domain.Variant{domain.VariantTOP, domain.VariantPJS} {
		in, err := Load(strings.NewReader(topFile), "p1.2.a", v, 0)
		require.NoError(t, err)

		assert.Equal(t, v, in.Variant)
		assert.Equal(t, 2, in.FleetSize)
		assert.Equal(t, 15.5, in.MaxCost)
		require.Len(t, in.Points, 4)
		s, f := in.Anchors()
		assert.Equal(t, 0, s)
		assert.Equal(t, 3, f)
	}
}

func TestLoadRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name    string
		variant domain.Variant
		body    string
		want    string
	}{
		{"short node line", domain.VariantCVRP, "0 0 0\n1 2\n", "line 2"},
		{"non numeric", domain.VariantCVRP, "0 0 0\n1 x 3\n", "line 2"},
		{"missing fleet", domain.VariantTOP, "hdr\nfleet\nm;10\n0;0;0\n", "fleet size"},
		{"fractional fleet", domain.VariantTOP, "hdr\nn;2.5\nm;10\n", "fleet size"},
		{"truncated header", domain.VariantTOP, "hdr\nn;2\n", "header"},
		{"bad node", domain.VariantTOP, "hdr\nn;2\nm;10\n0;0\n", "line 4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.body), "bad", tt.variant, 10)
			require.ErrorIs(t, err, ErrMalformed)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadValidatesInstance(t *testing.T) {
	_, err := Load(strings.NewReader(cvrpFile), "A-n4", domain.VariantCVRP, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInstance)

	_, err = Load(strings.NewReader("hdr\nn;0\nm;10\n0;0;0\n1;1;1\n2;2;0\n"), "p", domain.VariantTOP, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInstance)

	_, err = Load(strings.NewReader(cvrpFile), "x", domain.Variant("tsp"), 0)
	assert.ErrorIs(t, err, domain.ErrUnknownVariant)
}

func TestLoadFileNamesInstance(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "B-n31_input_nodes.txt")
	require.NoError(t, os.WriteFile(path, []byte(cvrpFile), 0o644))

	in, err := LoadFile(path, domain.VariantCVRP, 100)
	require.NoError(t, err)
	assert.Equal(t, "B-n31", in.Name)

	_, err = LoadFile(filepath.Join(dir, "missing.txt"), domain.VariantCVRP, 100)
	assert.Error(t, err)
}
