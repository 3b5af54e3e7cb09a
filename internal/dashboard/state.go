package dashboard

import (
	"strconv"
	"strings"
	"time"

	"github.com/fakhrymubarak/weather-dashboard/internal/model"
)

const (
	MsgCityNotFound = "City not found"
	MsgFetchFailed  = "Failed to fetch weather data"
)

// Phase is the coarse lifecycle of the dashboard.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// State is everything the dashboard shows. It is a value: Transition returns
// a new one and never mutates its argument's Forecast.
type State struct {
	Phase    Phase
	Input    string
	Query    string
	Forecast *model.ForecastResponse
	Loading  bool
	Err      string
	Now      time.Time

	// Seq identifies the latest issued fetch. Completions carrying another
	// seq are stale and dropped.
	Seq uint64

	Mounted  bool
	Locating bool
	TornDown bool
}

// Event is an input to Transition.
type Event interface{ isEvent() }

type (
	Mounted             struct{}
	PositionAcquired    struct{ Lat, Lon float64 }
	PositionUnavailable struct{ Reason string }
	InputChanged        struct{ Text string }
	SearchSubmitted     struct{}
	FetchSucceeded      struct {
		Seq      uint64
		Forecast *model.ForecastResponse
	}
	FetchFailed struct {
		Seq     uint64
		Message string
	}
	Tick     struct{ Now time.Time }
	TornDown struct{}
)

func (Mounted) isEvent()             {}
func (PositionAcquired) isEvent()    {}
func (PositionUnavailable) isEvent() {}
func (InputChanged) isEvent()        {}
func (SearchSubmitted) isEvent()     {}
func (FetchSucceeded) isEvent()      {}
func (FetchFailed) isEvent()         {}
func (Tick) isEvent()                {}
func (TornDown) isEvent()            {}

// Effect is work Transition asks the runner to perform.
type Effect interface{ isEffect() }

type (
	RequestPosition struct{}
	StartClock      struct{}
	StopClock       struct{}
	Fetch           struct {
		Seq   uint64
		Query string
	}
)

func (RequestPosition) isEffect() {}
func (StartClock) isEffect()      {}
func (StopClock) isEffect()       {}
func (Fetch) isEffect()           {}

// Machine holds the fixed inputs of the transition function.
type Machine struct {
	DefaultCity string
}

// Transition is the pure dashboard state machine.
func (m Machine) Transition(s State, ev Event) (State, []Effect) {
	if s.TornDown {
		return s, nil
	}

	switch ev := ev.(type) {
	case Mounted:
		if s.Mounted {
			return s, nil
		}
		s.Mounted = true
		s.Locating = true
		s.Phase = PhaseLoading
		s.Loading = true
		return s, []Effect{StartClock{}, RequestPosition{}}

	case PositionAcquired:
		if !s.Locating {
			return s, nil
		}
		s.Locating = false
		return m.fetch(s, coordinateQuery(ev.Lat, ev.Lon))

	case PositionUnavailable:
		if !s.Locating {
			return s, nil
		}
		s.Locating = false
		return m.fetch(s, m.DefaultCity)

	case InputChanged:
		s.Input = ev.Text
		return s, nil

	case SearchSubmitted:
		if strings.TrimSpace(s.Input) == "" {
			return s, nil
		}
		// A manual search made while locating wins over the position result.
		s.Locating = false
		return m.fetch(s, s.Input)

	case FetchSucceeded:
		if ev.Seq != s.Seq || !s.Loading {
			return s, nil
		}
		s.Phase = PhaseSuccess
		s.Loading = false
		s.Forecast = ev.Forecast
		s.Err = ""
		return s, nil

	case FetchFailed:
		if ev.Seq != s.Seq || !s.Loading {
			return s, nil
		}
		s.Phase = PhaseError
		s.Loading = false
		s.Forecast = nil
		s.Err = ev.Message
		if s.Err == "" {
			s.Err = MsgFetchFailed
		}
		return s, nil

	case Tick:
		s.Now = ev.Now
		return s, nil

	case TornDown:
		s.TornDown = true
		s.Locating = false
		return s, []Effect{StopClock{}}
	}

	return s, nil
}

func (m Machine) fetch(s State, query string) (State, []Effect) {
	s.Seq++
	s.Query = query
	s.Phase = PhaseLoading
	s.Loading = true
	s.Err = ""
	return s, []Effect{Fetch{Seq: s.Seq, Query: query}}
}

func coordinateQuery(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64)
}
