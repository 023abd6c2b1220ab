package models

// Status values of a DashboardState.
const (
	StatusSuggestions = "suggestions"
	StatusReady       = "ready"
	StatusDemo        = "demo"
	StatusError       = "error"
)

// Measurement unit systems accepted by the weather API.
const (
	UnitsMetric   = "metric"
	UnitsImperial = "imperial"
)

// DashboardState is the outcome of one search. It replaces the previous state wholesale.
type DashboardState struct {
	Status      string           `json:"status"`
	Query       string           `json:"query"`
	Units       string           `json:"units"`
	Message     string           `json:"message,omitempty"`
	Suggestions []string         `json:"suggestions,omitempty"`
	Current     *CurrentWeather  `json:"current,omitempty"`
	Forecast    []ForecastSample `json:"forecast,omitempty"`
	Daily       []DailySummary   `json:"daily,omitempty"`
	Recent      []string         `json:"recent"`
}

// HasWeather reports whether the state carries current conditions and a forecast.
func (s *DashboardState) HasWeather() bool {
	return s.Status == StatusReady || s.Status == StatusDemo
}

// ValidUnits reports whether units names a supported unit system.
func ValidUnits(units string) bool {
	return units == UnitsMetric || units == UnitsImperial
}
