package util

import (
	"fmt"
	"io"
	"math"
	"time"

	"weather-dash/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderForecastChart writes an HTML page with the temperature trend of the forecast
// samples and the daily min/max bars. Sample labels use loc.
func RenderForecastChart(w io.Writer, city, units string, samples []models.ForecastSample, daily []models.DailySummary, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	symbol := unitSymbol(units)

	labels := make([]string, 0, len(samples))
	temps := make([]opts.LineData, 0, len(samples))
	feels := make([]opts.LineData, 0, len(samples))
	for _, s := range samples {
		labels = append(labels, time.Unix(s.Dt, 0).In(loc).Format("Mon 15:04"))
		temps = append(temps, opts.LineData{Value: round1(s.Main.Temp)})
		feels = append(feels, opts.LineData{Value: round1(s.Main.FeelsLike)})
	}

	trend := charts.NewLine()
	trend.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: fmt.Sprintf("Weather - %s", city),
			Width:     "900px",
			Height:    "420px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s temperature trend", city),
			Subtitle: "3-hour forecast",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithYAxisOpts(opts.YAxis{Name: symbol}),
	)
	trend.SetXAxis(labels).
		AddSeries("Temperature", temps).
		AddSeries("Feels like", feels).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	days := make([]string, 0, len(daily))
	mins := make([]opts.BarData, 0, len(daily))
	maxs := make([]opts.BarData, 0, len(daily))
	for _, d := range daily {
		days = append(days, d.Date)
		mins = append(mins, opts.BarData{Value: round1(d.TempMin)})
		maxs = append(maxs, opts.BarData{Value: round1(d.TempMax)})
	}

	range5 := charts.NewBar()
	range5.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "320px"}),
		charts.WithTitleOpts(opts.Title{Title: "Daily min / max"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithYAxisOpts(opts.YAxis{Name: symbol}),
	)
	range5.SetXAxis(days).
		AddSeries("Min", mins).
		AddSeries("Max", maxs)

	page := components.NewPage()
	page.AddCharts(trend, range5)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
