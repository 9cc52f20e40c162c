package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/san-kum/shgcav/internal/cavity"
)

func lineChart(points []cavity.Point, field cavity.Field, q Quantity) *charts.Line {
	series := Extract(points, q)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: "#ffffff",
			Width:           "100%",
			Height:          "480px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    q.String(),
			Subtitle: fmt.Sprintf("vs %s (%s)", field.Label(), field),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "20",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: fmt.Sprintf("%s (mm)", field),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  q.Label(),
			Scale: opts.Bool(true),
		}),
	)

	labels := make([]string, series[0].Len())
	for i, x := range series[0].X {
		labels[i] = fmt.Sprintf("%.3f", x)
	}
	line.SetXAxis(labels)

	for _, s := range series {
		data := make([]opts.LineData, len(s.Y))
		for i, y := range s.Y {
			data[i] = opts.LineData{Value: y}
		}
		line.AddSeries(s.Name, data)
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

// RenderHTML writes a page with one chart per quantity.
func RenderHTML(w io.Writer, points []cavity.Point, field cavity.Field, title string) error {
	page := components.NewPage()
	page.PageTitle = title
	for _, q := range Quantities() {
		page.AddCharts(lineChart(points, field, q))
	}
	return page.Render(w)
}
