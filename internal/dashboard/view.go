package dashboard

import (
	"strings"

	"github.com/fakhrymubarak/weather-dashboard/internal/model"
)

// View is the fully derived, render-ready form of a State.
type View struct {
	Theme   Theme
	Clock   string
	Date    string
	Input   string
	Loading bool
	Error   string

	// Current and Days are empty while loading or after a failure.
	Current *CurrentView
	Days    []DayView
}

type CurrentView struct {
	Place      string
	LocalTime  string
	Icon       Category
	Condition  string
	Temp       int
	FeelsLike  int
	Wind       string
	WindDir    string
	Humidity   string
	Visibility string
	Pressure   string
	Sunrise    string
	Sunset     string
}

type DayView struct {
	Label      string
	Icon       Category
	Condition  string
	Max        int
	Min        int
	RainChance string
}

// BuildView derives everything the renderer shows from s.
func BuildView(s State) View {
	v := View{
		Input:   s.Input,
		Loading: s.Loading,
		Error:   s.Err,
	}
	if !s.Now.IsZero() {
		v.Clock = s.Now.Format("15:04:05")
		v.Date = s.Now.Format("Monday, January 2, 2006")
	}

	f := s.Forecast
	if f == nil {
		v.Theme = ThemeFor(false, false, 0)
		return v
	}
	v.Theme = ThemeFor(true, f.Current.Daytime(), f.Current.Condition.Code)
	if s.Loading {
		return v
	}

	v.Current = buildCurrent(f)
	for i, fd := range f.Forecast.ForecastDay {
		v.Days = append(v.Days, DayView{
			Label:      DayLabel(i, fd.Date),
			Icon:       IconFor(fd.Day.Condition.Code),
			Condition:  fd.Day.Condition.Text,
			Max:        RoundTemp(fd.Day.MaxTempC),
			Min:        RoundTemp(fd.Day.MinTempC),
			RainChance: withUnit(fd.Day.DailyChanceOfRain, "%"),
		})
	}
	return v
}

func buildCurrent(f *model.ForecastResponse) *CurrentView {
	c := &CurrentView{
		Place:      place(f.Location),
		LocalTime:  LocalClock(f.Location.Localtime),
		Icon:       IconFor(f.Current.Condition.Code),
		Condition:  f.Current.Condition.Text,
		Temp:       RoundTemp(f.Current.TempC),
		FeelsLike:  RoundTemp(f.Current.FeelsLikeC),
		Wind:       withUnit(f.Current.WindKph, " km/h"),
		WindDir:    f.Current.WindDir,
		Humidity:   withUnit(f.Current.Humidity, "%"),
		Visibility: withUnit(f.Current.VisKm, " km"),
		Pressure:   withUnit(f.Current.PressureMb, " mb"),
	}
	if days := f.Forecast.ForecastDay; len(days) > 0 {
		c.Sunrise = days[0].Astro.Sunrise
		c.Sunset = days[0].Astro.Sunset
	}
	return c
}

func place(l model.Location) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{l.Name, l.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func withUnit(n interface{ String() string }, unit string) string {
	s := n.String()
	if s == "" {
		return ""
	}
	return s + unit
}

