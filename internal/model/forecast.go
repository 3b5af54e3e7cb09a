package model

import "encoding/json"

// ForecastResponse is the subset of the weatherapi.com forecast.json payload
// the dashboard renders. The proxy never decodes into it; it relays the raw
// upstream bytes.
//
// Numbers that are displayed verbatim are kept as json.Number so the text
// shown is exactly the text the provider sent.
type ForecastResponse struct {
	Location Location `json:"location"`
	Current  Current  `json:"current"`
	Forecast Forecast `json:"forecast"`
}

type Location struct {
	Name      string `json:"name"`
	Region    string `json:"region,omitempty"`
	Country   string `json:"country"`
	Localtime string `json:"localtime"`
}

type Condition struct {
	Text string `json:"text"`
	Code int    `json:"code"`
}

type Current struct {
	TempC      float64     `json:"temp_c"`
	FeelsLikeC float64     `json:"feelslike_c"`
	IsDay      int         `json:"is_day"`
	Condition  Condition   `json:"condition"`
	WindKph    json.Number `json:"wind_kph"`
	WindDir    string      `json:"wind_dir"`
	Humidity   json.Number `json:"humidity"`
	VisKm      json.Number `json:"vis_km"`
	PressureMb json.Number `json:"pressure_mb"`
}

// Daytime reports whether the provider flagged the current reading as daytime.
func (c Current) Daytime() bool {
	return c.IsDay != 0
}

type Forecast struct {
	ForecastDay []ForecastDay `json:"forecastday"`
}

type ForecastDay struct {
	Date  string `json:"date"`
	Day   Day    `json:"day"`
	Astro Astro  `json:"astro"`
}

type Day struct {
	MaxTempC          float64     `json:"maxtemp_c"`
	MinTempC          float64     `json:"mintemp_c"`
	Condition         Condition   `json:"condition"`
	DailyChanceOfRain json.Number `json:"daily_chance_of_rain"`
}

type Astro struct {
	Sunrise string `json:"sunrise"`
	Sunset  string `json:"sunset"`
}
