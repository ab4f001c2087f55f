package domain

import (
	"context"
	"time"
)

// TileLayer describes the map background.
type TileLayer struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

// PopupOptions mirrors the popup behaviour attached to a marker.
type PopupOptions struct {
	MinWidth     int    `json:"min_width"`
	MaxWidth     int    `json:"max_width"`
	AutoClose    bool   `json:"auto_close"`
	CloseOnClick bool   `json:"close_on_click"`
	ClassName    string `json:"class_name"`
}

// Marker is a pinned workout on the map with an open popup.
type Marker struct {
	WorkoutID string       `json:"workout_id"`
	Coords    Coordinate   `json:"coords"`
	Popup     PopupOptions `json:"popup"`
	Content   string       `json:"content"`
	Open      bool         `json:"open"`
}

// PanOptions controls map view animation.
type PanOptions struct {
	Animate  bool          `json:"animate"`
	Duration time.Duration `json:"duration"`
}

// Renderer is the display surface the tracker drives.
type Renderer interface {
	LoadMap(center Coordinate, zoom int, tiles TileLayer)
	RenderMarker(marker Marker)
	RenderListEntry(workout Workout)
	SetView(center Coordinate, zoom int, pan PanOptions)
	ShowForm(at Coordinate)
	HideForm(revealAfter time.Duration)
	ToggleTypeFields()
	// ClearWorkouts drops markers and list entries but keeps the map and form.
	ClearWorkouts()
	// Reset returns the surface to its initial, map-less state.
	Reset()
}

// Alerter surfaces blocking user-facing messages.
type Alerter interface {
	Alert(message string)
}

// Geolocator supplies the user's current position.
type Geolocator interface {
	CurrentPosition(ctx context.Context) (Coordinate, error)
}

// Store is a whole-value key-value store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Publisher announces recorded workouts to downstream consumers.
type Publisher interface {
	PublishWorkoutRecorded(ctx context.Context, workout Workout) error
}
