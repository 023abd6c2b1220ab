package util

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"weather-dash/models"
)

// ReadCurrentWeatherFromJSON loads a CurrentWeather from JSON on disk.
func ReadCurrentWeatherFromJSON(filePath string) (*models.CurrentWeather, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp models.CurrentWeather
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal CurrentWeather: %w", err)
	}
	return &resp, nil
}

// ReadForecastResponseFromJSON loads a ForecastResponse from JSON on disk.
func ReadForecastResponseFromJSON(filePath string) (*models.ForecastResponse, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp models.ForecastResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ForecastResponse: %w", err)
	}
	return &resp, nil
}

// PrintDashboardStatePartially prints the key fields of a DashboardState.
func PrintDashboardStatePartially(w io.Writer, state *models.DashboardState) {
	fmt.Fprintf(w, "Query: %s (%s)\n", state.Query, state.Units)
	fmt.Fprintf(w, "Status: %s\n", state.Status)
	if state.Message != "" {
		fmt.Fprintf(w, "Message: %s\n", state.Message)
	}
	if len(state.Suggestions) > 0 {
		fmt.Fprintf(w, "Did you mean: %s\n", strings.Join(state.Suggestions, ", "))
	}
	if state.Current != nil {
		c := state.Current
		cond := c.PrimaryCondition()
		fmt.Fprintf(w, "%s, %s: %.1f%s (feels like %.1f%s), %s\n",
			c.Name, c.Sys.Country, c.Main.Temp, unitSymbol(state.Units),
			c.Main.FeelsLike, unitSymbol(state.Units), cond.Description)
		fmt.Fprintf(w, "Humidity %d%%, pressure %d hPa, wind %.1f %s at %d°\n",
			c.Main.Humidity, c.Main.Pressure, c.Wind.Speed, speedUnit(state.Units), c.Wind.Deg)
	}
	for _, d := range state.Daily {
		day, err := time.Parse(models.DailySummaryDateLayout, d.Date)
		label := d.Date
		if err == nil {
			label = day.Format("Mon 02 Jan")
		}
		fmt.Fprintf(w, "  %s  %5.1f / %5.1f  %-18s pop %3.0f%%\n",
			label, d.TempMin, d.TempMax, d.Description, d.Pop*100)
	}
	if len(state.Recent) > 0 {
		fmt.Fprintf(w, "Recent: %s\n", strings.Join(state.Recent, ", "))
	}
}

func unitSymbol(units string) string {
	if units == models.UnitsImperial {
		return "°F"
	}
	return "°C"
}

func speedUnit(units string) string {
	if units == models.UnitsImperial {
		return "mph"
	}
	return "m/s"
}
