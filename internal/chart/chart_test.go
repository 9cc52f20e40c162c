package chart

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/shgcav/internal/cavity"
)

func sweep(t *testing.T) []cavity.Point {
	t.Helper()
	p := cavity.Parameters{
		Alpha:           10 * math.Pi / 180,
		Radius:          0.1,
		CrystalDistance: 0.055,
		FocusDistance:   0.15,
		CrystalLength:   0.01,
		Index:           1.6,
		Wavelength:      1064e-9,
	}
	values, err := cavity.DefaultSweepValues(p, 20)
	if err != nil {
		t.Fatal(err)
	}
	values = append([]float64{0.03}, values...)
	return cavity.Sweep(p, cavity.FieldCrystalDistance, values)
}

func TestExtract(t *testing.T) {
	points := sweep(t)

	for _, q := range Quantities() {
		series := Extract(points, q)
		if len(series) != 2 {
			t.Fatalf("%v: expected 2 series, got %d", q, len(series))
		}
		if series[0].Len() != 20 || series[1].Len() != 20 {
			t.Errorf("%v: unstable point not skipped, got %d/%d", q, series[0].Len(), series[1].Len())
		}
	}

	waist := Extract(points, CrystalWaist)
	first := cavity.Valid(points)[0]
	if waist[0].X[0] != first.Value*1e3 {
		t.Errorf("x = %g, want %g mm", waist[0].X[0], first.Value*1e3)
	}
	if waist[1].Y[0] != first.Mode.Crystal.WaistS*1e6 {
		t.Errorf("sagittal y = %g µm", waist[1].Y[0])
	}
}

func TestParseQuantity(t *testing.T) {
	for _, name := range []string{"waist", "collimated", "xi", "ellipticity"} {
		if _, err := ParseQuantity(name); err != nil {
			t.Errorf("ParseQuantity(%q): %v", name, err)
		}
	}
	if _, err := ParseQuantity("power"); err == nil {
		t.Error("expected error for unknown quantity")
	}
}

func TestASCII(t *testing.T) {
	out := ASCII(sweep(t), CrystalWaist, 60, 10)
	if !strings.Contains(out, "crystal waist (µm)") {
		t.Errorf("caption missing:\n%s", out)
	}
	if lines := strings.Count(out, "\n"); lines < 10 {
		t.Errorf("expected at least 10 lines, got %d", lines)
	}

	if out := ASCII(nil, CrystalWaist, 60, 10); !strings.Contains(out, "no stable points") {
		t.Errorf("unexpected output for empty sweep: %q", out)
	}
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, sweep(t), cavity.FieldCrystalDistance, "sweep"); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, "echarts") {
		t.Error("expected echarts script in output")
	}
	if !strings.Contains(html, "tangential") || !strings.Contains(html, "sagittal") {
		t.Error("expected both planes in output")
	}
}

func TestSavePlot(t *testing.T) {
	dir := t.TempDir()
	points := sweep(t)

	for _, name := range []string{"waist.png", "xi.svg"} {
		path := filepath.Join(dir, name)
		if err := SavePlot(path, points, cavity.FieldCrystalDistance, FocusingParameter); err != nil {
			t.Fatalf("save %s failed: %v", name, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}

	if err := SavePlot(filepath.Join(dir, "waist.bmp"), points, cavity.FieldCrystalDistance, CrystalWaist); err == nil {
		t.Error("expected error for unsupported format")
	}

	err := SavePlot(filepath.Join(dir, "empty.png"), points[:1], cavity.FieldCrystalDistance, CrystalWaist)
	if !errors.Is(err, cavity.ErrCavityUnstable) {
		t.Errorf("expected unstable error for empty plot, got %v", err)
	}
}
