package cavity

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Field is a distance-like parameter that a sweep varies.
type Field int

const (
	FieldCrystalDistance Field = iota
	FieldFocusDistance
	FieldCrystalLength
	FieldMirrorRadius
)

var fieldNames = map[Field]string{
	FieldCrystalDistance: "s",
	FieldFocusDistance:   "v",
	FieldCrystalLength:   "l",
	FieldMirrorRadius:    "R",
}

var fieldLabels = map[Field]string{
	FieldCrystalDistance: "distance focusing mirror to crystal surface",
	FieldFocusDistance:   "distance focusing mirror to secondary focus",
	FieldCrystalLength:   "crystal length",
	FieldMirrorRadius:    "mirror radius of curvature",
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Label is a human readable axis title.
func (f Field) Label() string {
	return fieldLabels[f]
}

func ParseField(name string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "s", "crystal-distance", "crystal_distance", "":
		return FieldCrystalDistance, nil
	case "v", "focus-distance", "focus_distance":
		return FieldFocusDistance, nil
	case "l", "crystal-length", "crystal_length", "length":
		return FieldCrystalLength, nil
	case "r", "radius", "mirror-radius", "mirror_radius":
		return FieldMirrorRadius, nil
	default:
		return FieldCrystalDistance, fmt.Errorf("unknown sweep field: %s", name)
	}
}

// Apply returns a copy of p with the field set to value.
func (f Field) Apply(p Parameters, value float64) Parameters {
	switch f {
	case FieldCrystalDistance:
		p.CrystalDistance = value
	case FieldFocusDistance:
		p.FocusDistance = value
	case FieldCrystalLength:
		p.CrystalLength = value
	case FieldMirrorRadius:
		p.Radius = value
	}
	return p
}

// Value reads the field from p.
func (f Field) Value(p Parameters) float64 {
	switch f {
	case FieldFocusDistance:
		return p.FocusDistance
	case FieldCrystalLength:
		return p.CrystalLength
	case FieldMirrorRadius:
		return p.Radius
	default:
		return p.CrystalDistance
	}
}

// Point is one sweep sample. Exactly one of Mode and Err is meaningful.
type Point struct {
	Value float64
	Mode  Mode
	Err   error
}

func (pt Point) OK() bool {
	return pt.Err == nil
}

func evaluate(p Parameters, field Field, value float64) Point {
	mode, err := Solve(field.Apply(p, value))
	return Point{Value: value, Mode: mode, Err: err}
}

// Sweep solves p once per value, in order. The result has the same length
// and order as values and each point matches an independent Solve.
func Sweep(p Parameters, field Field, values []float64) []Point {
	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = evaluate(p, field, v)
	}
	return points
}

// SweepParallel is Sweep spread over workers goroutines. Points left
// unevaluated when ctx is done carry ctx.Err().
func SweepParallel(ctx context.Context, p Parameters, field Field, values []float64, workers int) []Point {
	points := make([]Point, len(values))
	parallelFor(len(values), workers, func(start, end int) {
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				points[i] = Point{Value: values[i], Err: err}
				continue
			}
			points[i] = evaluate(p, field, values[i])
		}
	})
	return points
}

// parallelFor splits [0, n) into contiguous chunks, one per worker.
func parallelFor(n, workers int, fn func(start, end int)) {
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

// Valid returns the points that produced a mode.
func Valid(points []Point) []Point {
	out := make([]Point, 0, len(points))
	for _, pt := range points {
		if pt.OK() {
			out = append(out, pt)
		}
	}
	return out
}
