package domain

import "errors"

// User-facing alert messages.
const (
	MsgPositionUnavailable = "Could not get your position"
	MsgInvalidInputs       = "Inputs have to be positive numbers!"
)

var (
	// ErrGeolocationDenied is returned when the current position cannot be obtained.
	ErrGeolocationDenied = errors.New("geolocation denied")
	// ErrValidationFailed is returned when a form submission is rejected.
	ErrValidationFailed = errors.New("inputs have to be positive numbers")
	// ErrMapNotReady is returned for map interactions before the map is loaded.
	ErrMapNotReady = errors.New("map not initialised")
	// ErrNoPendingLocation is returned when a form is submitted without a prior map click.
	ErrNoPendingLocation = errors.New("no map location selected")
	// ErrWorkoutNotFound is returned when a workout cannot be located.
	ErrWorkoutNotFound = errors.New("workout not found")
	// ErrKeyNotFound is returned by stores for absent keys.
	ErrKeyNotFound = errors.New("key not found")
)
