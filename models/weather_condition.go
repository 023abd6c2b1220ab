package models

import "strings"

// DaytimeIconMarker is the character that marks a daytime icon id ("01d" vs "01n").
const DaytimeIconMarker = "d"

type WeatherCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// IsDaytime reports whether the icon id is a daytime variant.
func (w WeatherCondition) IsDaytime() bool {
	return strings.Contains(w.Icon, DaytimeIconMarker)
}
