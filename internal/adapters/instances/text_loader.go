package instances

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"savings-route-service/internal/domain"
	"strconv"
	"strings"
)

// ErrMalformed is returned for instance files that do not follow the
// expected layout.
var ErrMalformed = errors.New("malformed instance file")

// LoadFile reads an instance from disk. The instance name defaults to the
// file name without its extension. Capacity is only used for CVRP; the
// budget variants read fleet size and route max cost from the file.
func LoadFile(path string, variant domain.Variant, capacity float64) (*domain.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load instance: open %q: %w", path, err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name = strings.TrimSuffix(name, "_input_nodes")

	return Load(f, name, variant, capacity)
}

// Load parses an instance in the format of its variant.
func Load(r io.Reader, name string, variant domain.Variant, capacity float64) (*domain.Instance, error) {
	var (
		in  *domain.Instance
		err error
	)
	switch variant {
	case domain.VariantCVRP:
		in, err = LoadCVRP(r, name, capacity)
	case domain.VariantTOP, domain.VariantPJS:
		in, err = LoadTOP(r, name)
		if in != nil {
			in.Variant = variant
		}
	default:
		return nil, fmt.Errorf("load instance %q: variant %q: %w", name, variant, domain.ErrUnknownVariant)
	}
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("load instance: %w", err)
	}
	return in, nil
}

// LoadCVRP parses whitespace separated "x y demand" lines. The first node
// is the depot.
func LoadCVRP(r io.Reader, name string, capacity float64) (*domain.Instance, error) {
	in := &domain.Instance{Name: name, Variant: domain.VariantCVRP, Capacity: capacity}

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		p, err := parsePoint(fields)
		if err != nil {
			return nil, fmt.Errorf("load instance %q: line %d: %w", name, lineNo, err)
		}
		in.Points = append(in.Points, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("load instance %q: read: %w", name, err)
	}
	return in, nil
}

// LoadTOP parses the semicolon separated orienteering format:
//
//	<header, ignored>
//	n;<fleet size>
//	m;<route max cost>
//	x;y;reward
//	...
//
// The first node is the start anchor and the last one the finish anchor.
func LoadTOP(r io.Reader, name string) (*domain.Instance, error) {
	in := &domain.Instance{Name: name, Variant: domain.VariantTOP}

	sc := bufio.NewScanner(r)
	lineNo := 0
	header := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" && header >= 3 {
			continue
		}

		switch header {
		case 0:
			header++
			continue
		case 1:
			v, err := headerValue(line)
			if err != nil {
				return nil, fmt.Errorf("load instance %q: line %d: fleet size: %w", name, lineNo, err)
			}
			in.FleetSize, err = strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("load instance %q: line %d: fleet size %q: %w", name, lineNo, v, ErrMalformed)
			}
			header++
			continue
		case 2:
			v, err := headerValue(line)
			if err != nil {
				return nil, fmt.Errorf("load instance %q: line %d: route max cost: %w", name, lineNo, err)
			}
			in.MaxCost, err = strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("load instance %q: line %d: route max cost %q: %w", name, lineNo, v, ErrMalformed)
			}
			header++
			continue
		}

		p, err := parsePoint(strings.Split(line, ";"))
		if err != nil {
			return nil, fmt.Errorf("load instance %q: line %d: %w", name, lineNo, err)
		}
		in.Points = append(in.Points, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("load instance %q: read: %w", name, err)
	}
	if header < 3 {
		return nil, fmt.Errorf("load instance %q: header has %d of 3 lines: %w", name, header, ErrMalformed)
	}
	return in, nil
}

func headerValue(line string) (string, error) {
	_, v, ok := strings.Cut(line, ";")
	if !ok {
		return "", fmt.Errorf("%q has no ';': %w", line, ErrMalformed)
	}
	return strings.TrimSpace(v), nil
}

func parsePoint(fields []string) (domain.Point, error) {
	if len(fields) < 3 {
		return domain.Point{}, fmt.Errorf("want x, y and demand, got %d fields: %w", len(fields), ErrMalformed)
	}
	var v [3]float64
	for i := range v {
		f, err := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
		if err != nil {
			return domain.Point{}, fmt.Errorf("field %d %q: %w", i+1, fields[i], ErrMalformed)
		}
		v[i] = f
	}
	return domain.Point{Coordinates: domain.Coordinates{X: v[0], Y: v[1]}, Demand: v[2]}, nil
}
