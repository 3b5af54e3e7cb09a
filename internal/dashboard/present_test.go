package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIconFor_Tables(t *testing.T) {
	tests := []struct {
		category Category
		codes    []int
	}{
		{CategoryClear, []int{1000}},
		{CategoryCloudy, []int{1003, 1006, 1009}},
		{CategoryRain, []int{1063, 1180, 1183, 1186, 1189, 1192, 1195, 1240, 1243, 1246}},
		{CategorySnow, []int{1066, 1210, 1213, 1216, 1219, 1222, 1225, 1255, 1258}},
		{CategoryDrizzle, []int{1150, 1153, 1168, 1171}},
		{CategoryThunderstorm, []int{1087, 1273, 1276, 1279, 1282}},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			for _, code := range tt.codes {
				assert.Equal(t, tt.category, IconFor(code), "code %d", code)
			}
		})
	}
}

func TestIconFor_UnknownCodesAreCloudy(t *testing.T) {
	for _, code := range []int{0, -1, 999, 1030, 1135, 1147, 1201, 1264, 9999} {
		assert.Equal(t, CategoryCloudy, IconFor(code), "code %d", code)
	}
}

func TestConditionTablesAreDisjoint(t *testing.T) {
	seen := map[int]Category{}
	for cat, codes := range conditionCodes {
		for _, code := range codes {
			prev, dup := seen[code]
			assert.False(t, dup, "code %d in both %s and %s", code, prev, cat)
			seen[code] = cat
		}
	}
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, "☀", CategoryClear.Glyph())
	assert.Equal(t, "⚡", CategoryThunderstorm.Glyph())
	assert.Equal(t, CategoryCloudy.Glyph(), Category("fog").Glyph())
}

func TestThemeFor(t *testing.T) {
	tests := []struct {
		name        string
		hasForecast bool
		isDay       bool
		code        int
		want        Theme
	}{
		{name: "no forecast", hasForecast: false, isDay: true, code: 1000, want: ThemeDefault},
		{name: "no forecast ignores night", hasForecast: false, isDay: false, code: 1195, want: ThemeDefault},
		{name: "night clear", hasForecast: true, isDay: false, code: 1000, want: ThemeNight},
		{name: "night rain", hasForecast: true, isDay: false, code: 1195, want: ThemeNight},
		{name: "night unknown", hasForecast: true, isDay: false, code: 4242, want: ThemeNight},
		{name: "day clear", hasForecast: true, isDay: true, code: 1000, want: ThemeDefault},
		{name: "day cloudy", hasForecast: true, isDay: true, code: 1006, want: ThemeDefault},
		{name: "day rain", hasForecast: true, isDay: true, code: 1189, want: ThemeRain},
		{name: "day heavy rain", hasForecast: true, isDay: true, code: 1195, want: ThemeRain},
		{name: "day light shower", hasForecast: true, isDay: true, code: 1240, want: ThemeDefault},
		{name: "day moderate shower", hasForecast: true, isDay: true, code: 1243, want: ThemeDefault},
		{name: "day torrential shower", hasForecast: true, isDay: true, code: 1246, want: ThemeDefault},
		{name: "day snow", hasForecast: true, isDay: true, code: 1213, want: ThemeDefault},
		{name: "day thunder", hasForecast: true, isDay: true, code: 1087, want: ThemeDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ThemeFor(tt.hasForecast, tt.isDay, tt.code))
		})
	}
}

func TestThemeFor_RainThemeCodesAreRainIcons(t *testing.T) {
	for code := range rainThemeCodes {
		assert.Equal(t, CategoryRain, IconFor(code), "code %d", code)
		assert.Equal(t, ThemeRain, ThemeFor(true, true, code), "code %d", code)
	}
}

func TestRoundTemp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{21.4, 21},
		{21.5, 22},
		{21.6, 22},
		{-0.4, 0},
		{-2.5, -2},
		{-2.6, -3},
		{39.99, 40},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundTemp(tt.in), "RoundTemp(%v)", tt.in)
	}
}

func TestDayLabel(t *testing.T) {
	assert.Equal(t, "Today", DayLabel(0, "2026-10-16"))
	assert.Equal(t, "Today", DayLabel(0, "garbage"))
	assert.Equal(t, "Sat", DayLabel(1, "2026-10-17"))
	assert.Equal(t, "Sun", DayLabel(2, "2026-10-18"))
	assert.Equal(t, "Wed", DayLabel(4, "2026-10-21"))
	assert.Equal(t, "not-a-date", DayLabel(3, "not-a-date"))
}

func TestLocalClock(t *testing.T) {
	assert.Equal(t, "9:05", LocalClock("2026-10-16 9:05"))
	assert.Equal(t, "21:40", LocalClock("2026-10-16 21:40"))
	assert.Equal(t, "", LocalClock("2026-10-16"))
	assert.Equal(t, "", LocalClock(""))
}
