package domain

import (
	"context"
	"errors"
)

// ErrPositionUnavailable is reported by geolocators that cannot resolve a position.
var ErrPositionUnavailable = errors.New("position unavailable")

// StaticGeolocator always reports the same position.
type StaticGeolocator struct {
	Position Coordinate
}

// CurrentPosition implements Geolocator.
func (g StaticGeolocator) CurrentPosition(ctx context.Context) (Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return Coordinate{}, err
	}
	return g.Position, nil
}

// GeolocatorFunc adapts a function to Geolocator.
type GeolocatorFunc func(ctx context.Context) (Coordinate, error)

// CurrentPosition implements Geolocator.
func (f GeolocatorFunc) CurrentPosition(ctx context.Context) (Coordinate, error) {
	return f(ctx)
}

// DeniedGeolocator models a user refusing the location prompt.
type DeniedGeolocator struct{}

// CurrentPosition implements Geolocator.
func (DeniedGeolocator) CurrentPosition(context.Context) (Coordinate, error) {
	return Coordinate{}, ErrPositionUnavailable
}
