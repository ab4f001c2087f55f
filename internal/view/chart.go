package view

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/avrumiMuller/Mapty/internal/domain"
)

// DistanceChart plots the distance of each workout, split by kind.
func DistanceChart(workouts []domain.Workout) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "macarons"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Workouts",
			Subtitle: "Distance per workout (km)",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Rotate: 45},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	labels := make([]string, 0, len(workouts))
	running := make([]opts.BarData, 0, len(workouts))
	cycling := make([]opts.BarData, 0, len(workouts))
	for _, w := range workouts {
		labels = append(labels, w.Description)
		if w.Kind == domain.KindRunning {
			running = append(running, opts.BarData{Value: w.DistanceKm})
			cycling = append(cycling, opts.BarData{Value: 0})
		} else {
			running = append(running, opts.BarData{Value: 0})
			cycling = append(cycling, opts.BarData{Value: w.DistanceKm})
		}
	}

	bar.SetXAxis(labels).
		AddSeries("Running", running).
		AddSeries("Cycling", cycling).
		SetSeriesOptions(charts.WithBarChartOpts(opts.BarChart{Stack: "total"}))
	return bar
}

// RenderDistanceChart writes a standalone HTML page with the distance chart.
func RenderDistanceChart(w io.Writer, workouts []domain.Workout) error {
	return DistanceChart(workouts).Render(w)
}
