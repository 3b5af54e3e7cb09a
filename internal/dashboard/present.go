package dashboard

import (
	"math"
	"strings"
	"time"
)

// Category is the icon family a provider condition code is drawn with.
type Category string

const (
	CategoryClear        Category = "clear"
	CategoryCloudy       Category = "cloudy"
	CategoryRain         Category = "rain"
	CategorySnow         Category = "snow"
	CategoryDrizzle      Category = "drizzle"
	CategoryThunderstorm Category = "thunderstorm"
)

// conditionCodes lists the weatherapi.com condition codes of each category.
var conditionCodes = map[Category][]int{
	CategoryClear:        {1000},
	CategoryCloudy:       {1003, 1006, 1009},
	CategoryRain:         {1063, 1180, 1183, 1186, 1189, 1192, 1195, 1240, 1243, 1246},
	CategorySnow:         {1066, 1210, 1213, 1216, 1219, 1222, 1225, 1255, 1258},
	CategoryDrizzle:      {1150, 1153, 1168, 1171},
	CategoryThunderstorm: {1087, 1273, 1276, 1279, 1282},
}

// rainThemeCodes darken the daytime background. Shower codes keep the
// default theme even though they draw the rain icon.
var rainThemeCodes = map[int]bool{
	1063: true, 1180: true, 1183: true, 1186: true, 1189: true, 1192: true, 1195: true,
}

var categoryByCode = func() map[int]Category {
	m := make(map[int]Category)
	for cat, codes := range conditionCodes {
		for _, code := range codes {
			m[code] = cat
		}
	}
	return m
}()

// IconFor maps a condition code to its category. Unknown codes are cloudy.
func IconFor(code int) Category {
	if cat, ok := categoryByCode[code]; ok {
		return cat
	}
	return CategoryCloudy
}

var glyphs = map[Category]string{
	CategoryClear:        "☀",
	CategoryCloudy:       "☁",
	CategoryRain:         "☂",
	CategorySnow:         "❄",
	CategoryDrizzle:      "☔",
	CategoryThunderstorm: "⚡",
}

// Glyph is the single-character terminal rendering of the category.
func (c Category) Glyph() string {
	if g, ok := glyphs[c]; ok {
		return g
	}
	return glyphs[CategoryCloudy]
}

// Theme is the background the dashboard is drawn on. Color is an ANSI
// 256-colour index.
type Theme struct {
	Name  string
	Color int
}

var (
	ThemeDefault = Theme{Name: "default", Color: 30}
	ThemeRain    = Theme{Name: "rain", Color: 23}
	ThemeNight   = Theme{Name: "night", Color: 17}
)

// ThemeFor picks the background. Night wins over any condition; by day,
// rainThemeCodes get the darker rain theme and everything else, clear and
// cloudy skies included, the default one.
func ThemeFor(hasForecast, isDay bool, code int) Theme {
	if !hasForecast {
		return ThemeDefault
	}
	if !isDay {
		return ThemeNight
	}
	if rainThemeCodes[code] {
		return ThemeRain
	}
	return ThemeDefault
}

// RoundTemp rounds to the nearest degree, halves toward +Inf (2.5 → 3, -2.5 → -2).
func RoundTemp(c float64) int {
	return int(math.Floor(c + 0.5))
}

// DayLabel names a forecast column: "Today" for the first one, the
// abbreviated weekday of date for the rest.
func DayLabel(index int, date string) string {
	if index == 0 {
		return "Today"
	}
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return d.Format("Mon")
}

// LocalClock returns the time part of a provider "YYYY-MM-DD HH:MM" localtime.
func LocalClock(localtime string) string {
	_, clock, ok := strings.Cut(localtime, " ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(clock)
}
