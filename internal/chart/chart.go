// Package chart renders dashboard figures as self contained echarts pages.
package chart

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-sod/insight/internal/predictor"
	"github.com/go-sod/insight/internal/records"
)

const monthLayout = "2006-01"

// RegionBar plots the mean unemployment rate of every selected region in the
// order given, which is descending for records.RegionAverages.
func RegionBar(averages []records.RegionAverage) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title:    "Average Unemployment Rate by Region",
				Subtitle: "Estimated Unemployment Rate (%)",
			},
		),
	)

	regions := make([]string, 0, len(averages))
	data := make([]opts.BarData, 0, len(averages))
	for _, a := range averages {
		regions = append(regions, a.Region)
		data = append(data, opts.BarData{Name: a.Region, Value: a.UnemploymentRate})
	}
	bar.SetXAxis(regions).AddSeries("Unemployment Rate", data)
	return bar
}

// TrendLine plots the monthly mean unemployment rate.
func TrendLine(points []records.MonthlyPoint) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Unemployment Rate Trend",
			},
		),
	)

	months := make([]string, 0, len(points))
	data := make([]opts.LineData, 0, len(points))
	for _, p := range points {
		months = append(months, p.Month.Format(monthLayout))
		data = append(data, opts.LineData{Value: p.UnemploymentRate})
	}
	line.SetXAxis(months).AddSeries("Unemployment Rate", data)
	return line
}

// ProbabilityBar is a horizontal bar per class.
func ProbabilityBar(title string, c *predictor.Classification) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title:    title,
				Subtitle: c.Label,
			},
		),
	)

	labels := make([]string, 0, len(c.Probabilities))
	data := make([]opts.BarData, 0, len(c.Probabilities))
	for _, p := range c.Probabilities {
		labels = append(labels, p.Label)
		data = append(data, opts.BarData{Name: p.Label, Value: p.Probability})
	}
	bar.SetXAxis(labels).AddSeries("Probability", data)
	bar.XYReversal()
	return bar
}

// Render writes one page holding every chart.
func Render(w io.Writer, cs ...components.Charter) error {
	page := components.NewPage()
	page.AddCharts(cs...)
	return page.Render(w)
}
