package chart

import (
	"fmt"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/shgcav/internal/cavity"
)

var imageFormats = map[string]bool{
	".png": true, ".svg": true, ".pdf": true, ".jpg": true, ".jpeg": true, ".eps": true, ".tif": true, ".tiff": true,
}

// SavePlot writes q against the swept field to path. The format follows
// the file extension.
func SavePlot(path string, points []cavity.Point, field cavity.Field, q Quantity) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !imageFormats[ext] {
		return fmt.Errorf("unsupported image format %q", ext)
	}

	series := Extract(points, q)
	if series[0].Len() == 0 {
		return fmt.Errorf("no stable points to plot: %w", cavity.ErrCavityUnstable)
	}

	p := plot.New()
	p.Title.Text = q.String()
	p.X.Label.Text = fmt.Sprintf("%s (mm)", field)
	p.Y.Label.Text = q.Label()
	p.Add(plotter.NewGrid())

	first, err := plotter.CopyXYs(series[0])
	if err != nil {
		return err
	}
	second, err := plotter.CopyXYs(series[1])
	if err != nil {
		return err
	}
	if err := plotutil.AddLines(p, series[0].Name, first, series[1].Name, second); err != nil {
		return err
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
