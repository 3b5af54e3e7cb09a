package dashboard

import (
	"context"
	"errors"
)

// ErrPositionUnsupported is returned when no position source is configured.
var ErrPositionUnsupported = errors.New("geolocation unsupported")

type Position struct {
	Lat float64
	Lon float64
}

// Locator resolves the user's position once at startup.
type Locator interface {
	Locate(ctx context.Context) (Position, error)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(ctx context.Context) (Position, error)

func (f LocatorFunc) Locate(ctx context.Context) (Position, error) { return f(ctx) }

// StaticLocator always reports the same position.
type StaticLocator struct {
	Position Position
}

func (l StaticLocator) Locate(ctx context.Context) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, err
	}
	return l.Position, nil
}

// Unsupported is the locator of a host with no position source.
var Unsupported Locator = LocatorFunc(func(context.Context) (Position, error) {
	return Position{}, ErrPositionUnsupported
})

// NewLocator returns a StaticLocator when ok, Unsupported otherwise.
func NewLocator(lat, lon float64, ok bool) Locator {
	if !ok {
		return Unsupported
	}
	return StaticLocator{Position: Position{Lat: lat, Lon: lon}}
}
