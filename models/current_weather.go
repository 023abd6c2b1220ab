package models

// CurrentWeather is the top-level JSON returned by GET /weather.
// A value is a snapshot: it is replaced on every search, never patched.
type CurrentWeather struct {
	Weather    []WeatherCondition `json:"weather"`
	Main       MainReadings       `json:"main"`
	Visibility int                `json:"visibility"`
	Wind       Wind               `json:"wind"`
	Clouds     Clouds             `json:"clouds"`
	Rain       *Precipitation     `json:"rain,omitempty"`
	Dt         int64              `json:"dt"`
	Sys        Sys                `json:"sys"`
	Timezone   int                `json:"timezone"`
	ID         int                `json:"id"`
	Name       string             `json:"name"`
	Cod        int                `json:"cod"`
}

// PrimaryCondition returns the first reported condition, or the zero value.
func (c CurrentWeather) PrimaryCondition() WeatherCondition {
	if len(c.Weather) == 0 {
		return WeatherCondition{}
	}
	return c.Weather[0]
}
