package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakhrymubarak/weather-dashboard/internal/model"
)

var machine = Machine{DefaultCity: "Nairobi"}

// run feeds events in order and returns the final state plus every effect emitted.
func run(t *testing.T, s State, events ...Event) (State, []Effect) {
	t.Helper()
	var all []Effect
	for _, ev := range events {
		var effects []Effect
		s, effects = machine.Transition(s, ev)
		all = append(all, effects...)
	}
	return s, all
}

func fetches(effects []Effect) []Fetch {
	var out []Fetch
	for _, e := range effects {
		if f, ok := e.(Fetch); ok {
			out = append(out, f)
		}
	}
	return out
}

func sampleForecast(name string) *model.ForecastResponse {
	return &model.ForecastResponse{Location: model.Location{Name: name, Country: "Kenya"}}
}

func TestTransition_MountStartsClockAndLocates(t *testing.T) {
	s, effects := machine.Transition(State{}, Mounted{})

	assert.Equal(t, []Effect{StartClock{}, RequestPosition{}}, effects)
	assert.Equal(t, PhaseLoading, s.Phase)
	assert.True(t, s.Loading)
	assert.True(t, s.Locating)

	again, effects := machine.Transition(s, Mounted{})
	assert.Empty(t, effects)
	assert.Equal(t, s, again)
}

func TestTransition_PositionAcquiredFetchesCoordinates(t *testing.T) {
	s, effects := run(t, State{}, Mounted{}, PositionAcquired{Lat: -1.2921, Lon: 36.8219})

	require.Len(t, fetches(effects), 1)
	assert.Equal(t, Fetch{Seq: 1, Query: "-1.2921,36.8219"}, fetches(effects)[0])
	assert.Equal(t, "-1.2921,36.8219", s.Query)
	assert.False(t, s.Locating)
}

func TestTransition_PositionUnavailableFallsBackToDefaultCity(t *testing.T) {
	s, effects := run(t, State{}, Mounted{}, PositionUnavailable{Reason: "denied"})

	assert.Equal(t, []Fetch{{Seq: 1, Query: "Nairobi"}}, fetches(effects))
	assert.Equal(t, "Nairobi", s.Query)

	// Ticks never fetch.
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	s, effects = run(t, s, Tick{Now: now}, Tick{Now: now.Add(time.Second)}, Tick{Now: now.Add(2 * time.Second)})
	assert.Empty(t, effects)
	assert.Equal(t, now.Add(2*time.Second), s.Now)
}

func TestTransition_PositionIgnoredUnlessLocating(t *testing.T) {
	s, effects := run(t, State{}, PositionAcquired{Lat: 1, Lon: 2})
	assert.Empty(t, effects)
	assert.Zero(t, s.Seq)

	s, _ = run(t, State{}, Mounted{}, PositionUnavailable{})
	s, effects = run(t, s, PositionAcquired{Lat: 1, Lon: 2}, PositionUnavailable{})
	assert.Empty(t, effects)
	assert.Equal(t, uint64(1), s.Seq)
}

func TestTransition_SearchSuccess(t *testing.T) {
	s, _ := run(t, State{}, Mounted{}, PositionUnavailable{})
	s, _ = run(t, s, FetchSucceeded{Seq: 1, Forecast: sampleForecast("Nairobi")})
	require.Equal(t, PhaseSuccess, s.Phase)

	s, effects := run(t, s, InputChanged{Text: "Paris"}, SearchSubmitted{})
	assert.Equal(t, []Fetch{{Seq: 2, Query: "Paris"}}, fetches(effects))
	assert.Equal(t, PhaseLoading, s.Phase)
	assert.True(t, s.Loading)
	assert.Empty(t, s.Err)

	paris := sampleForecast("Paris")
	s, effects = run(t, s, FetchSucceeded{Seq: 2, Forecast: paris})
	assert.Empty(t, effects)
	assert.Equal(t, PhaseSuccess, s.Phase)
	assert.False(t, s.Loading)
	assert.Empty(t, s.Err)
	assert.Same(t, paris, s.Forecast)
}

func TestTransition_SearchNotFoundClearsForecast(t *testing.T) {
	s, _ := run(t, State{}, Mounted{}, PositionUnavailable{}, FetchSucceeded{Seq: 1, Forecast: sampleForecast("Nairobi")})

	s, _ = run(t, s, InputChanged{Text: "Atlantis"}, SearchSubmitted{}, FetchFailed{Seq: 2, Message: MsgCityNotFound})

	assert.Equal(t, PhaseError, s.Phase)
	assert.Equal(t, MsgCityNotFound, s.Err)
	assert.Nil(t, s.Forecast)
	assert.False(t, s.Loading)
}

func TestTransition_FailureWithoutMessage(t *testing.T) {
	s, _ := run(t, State{}, Mounted{}, PositionUnavailable{}, FetchFailed{Seq: 1})
	assert.Equal(t, MsgFetchFailed, s.Err)
}

func TestTransition_BlankSearchIsNoOp(t *testing.T) {
	s, _ := run(t, State{}, Mounted{}, PositionUnavailable{})

	for _, text := range []string{"", "   ", "\t\n"} {
		next, effects := run(t, s, InputChanged{Text: text}, SearchSubmitted{})
		assert.Empty(t, effects, "input %q", text)
		assert.Equal(t, s.Seq, next.Seq)
		assert.Equal(t, s.Query, next.Query)
	}
}

func TestTransition_SearchKeepsInputVerbatim(t *testing.T) {
	_, effects := run(t, State{}, InputChanged{Text: " New York "}, SearchSubmitted{})
	assert.Equal(t, []Fetch{{Seq: 1, Query: " New York "}}, fetches(effects))
}

func TestTransition_SearchWhileLocatingWins(t *testing.T) {
	s, effects := run(t, State{}, Mounted{}, InputChanged{Text: "Paris"}, SearchSubmitted{}, PositionAcquired{Lat: 1, Lon: 2})

	assert.Equal(t, []Fetch{{Seq: 1, Query: "Paris"}}, fetches(effects))
	assert.Equal(t, "Paris", s.Query)
}

func TestTransition_LatestIssuedWins(t *testing.T) {
	s, _ := run(t, State{}, Mounted{}, PositionUnavailable{})
	s, _ = run(t, s, InputChanged{Text: "Paris"}, SearchSubmitted{}, InputChanged{Text: "Lima"}, SearchSubmitted{})
	require.Equal(t, uint64(3), s.Seq)

	// Older completions arriving late are dropped, in either order.
	s, _ = run(t, s, FetchSucceeded{Seq: 2, Forecast: sampleForecast("Paris")}, FetchFailed{Seq: 1, Message: MsgCityNotFound})
	assert.Equal(t, PhaseLoading, s.Phase)
	assert.True(t, s.Loading)
	assert.Empty(t, s.Err)

	lima := sampleForecast("Lima")
	s, _ = run(t, s, FetchSucceeded{Seq: 3, Forecast: lima})
	assert.Same(t, lima, s.Forecast)

	// A duplicate completion for the settled seq changes nothing.
	s, _ = run(t, s, FetchFailed{Seq: 3, Message: MsgFetchFailed})
	assert.Equal(t, PhaseSuccess, s.Phase)
	assert.Same(t, lima, s.Forecast)
}

func TestTransition_LoadingKeepsPreviousForecast(t *testing.T) {
	nairobi := sampleForecast("Nairobi")
	s, _ := run(t, State{}, Mounted{}, PositionUnavailable{}, FetchSucceeded{Seq: 1, Forecast: nairobi})
	s, _ = run(t, s, InputChanged{Text: "Paris"}, SearchSubmitted{})

	assert.True(t, s.Loading)
	assert.Same(t, nairobi, s.Forecast)
}

func TestTransition_TornDownStopsClockAndIgnoresEverything(t *testing.T) {
	s, _ := run(t, State{}, Mounted{}, PositionUnavailable{})

	s, effects := machine.Transition(s, TornDown{})
	assert.Equal(t, []Effect{StopClock{}}, effects)
	assert.True(t, s.TornDown)

	frozen := s
	s, effects = run(t, s,
		TornDown{},
		Tick{Now: time.Now()},
		FetchSucceeded{Seq: 1, Forecast: sampleForecast("Nairobi")},
		InputChanged{Text: "Paris"},
		SearchSubmitted{},
		Mounted{},
	)
	assert.Empty(t, effects)
	assert.Equal(t, frozen, s)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "success", PhaseSuccess.String())
	assert.Equal(t, "error", PhaseError.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
