package chart

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/shgcav/internal/cavity"
)

// ASCII draws q for the stable points of a sweep, tangential in blue and
// sagittal in red.
func ASCII(points []cavity.Point, q Quantity, width, height int) string {
	series := Extract(points, q)
	if series[0].Len() == 0 {
		return "no stable points to plot\n"
	}

	x := series[0].X
	caption := fmt.Sprintf("%s vs swept value, %.2f to %.2f mm (%s blue, %s red)",
		q.Label(), x[0], x[len(x)-1], series[0].Name, series[1].Name)

	return asciigraph.PlotMany([][]float64{series[0].Y, series[1].Y},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.Caption(caption),
	) + "\n"
}

// Sparkline is a single-curve plot sized for the explorer.
func Sparkline(values []float64, width, height int, caption string) string {
	if len(values) == 0 {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
