package models

// DailySummaryDateLayout is the layout of DailySummary.Date.
const DailySummaryDateLayout = "2006-01-02"

// DailySummary collapses the forecast samples of one calendar date.
type DailySummary struct {
	Date        string  `json:"date"`
	Dt          int64   `json:"dt"`
	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
	Pop         float64 `json:"pop"`
}
