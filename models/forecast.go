package models

// ForecastResponse is the top-level JSON returned by GET /forecast (5 days, 3-hour steps).
type ForecastResponse struct {
	Cod  string           `json:"cod"`
	Cnt  int              `json:"cnt"`
	List []ForecastSample `json:"list"`
	City ForecastCity     `json:"city"`
}

// ForecastSample is one 3-hour forecast point.
type ForecastSample struct {
	Dt      int64              `json:"dt"`
	Main    MainReadings       `json:"main"`
	Weather []WeatherCondition `json:"weather"`
	Wind    Wind               `json:"wind"`
	Pop     float64            `json:"pop"`
	DtTxt   string             `json:"dt_txt"`
}

// PrimaryCondition returns the first reported condition, or the zero value.
func (s ForecastSample) PrimaryCondition() WeatherCondition {
	if len(s.Weather) == 0 {
		return WeatherCondition{}
	}
	return s.Weather[0]
}

type ForecastCity struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Country  string `json:"country"`
	Timezone int    `json:"timezone"`
	Sunrise  int64  `json:"sunrise"`
	Sunset   int64  `json:"sunset"`
}
