// Package view keeps the map, form and workout list state that clients render.
package view

import (
	"sync"
	"time"

	"github.com/avrumiMuller/Mapty/internal/domain"
)

// MapState describes the map viewport.
type MapState struct {
	Loaded bool              `json:"loaded"`
	Center domain.Coordinate `json:"center"`
	Zoom   int               `json:"zoom"`
	Tiles  domain.TileLayer  `json:"tiles"`
	Pan    domain.PanOptions `json:"pan"`
}

// FormState describes the entry form.
type FormState struct {
	Visible          bool               `json:"visible"`
	Display          string             `json:"display"`
	Focus            string             `json:"focus,omitempty"`
	Clicked          *domain.Coordinate `json:"clicked,omitempty"`
	Type             domain.Kind        `json:"type"`
	CadenceVisible   bool               `json:"cadence_visible"`
	ElevationVisible bool               `json:"elevation_visible"`
	revealAt         time.Time
}

// State is a point-in-time copy of everything on screen.
type State struct {
	Map     MapState        `json:"map"`
	Markers []domain.Marker `json:"markers"`
	List    []ListEntry     `json:"list"`
	Form    FormState       `json:"form"`
	Alert   string          `json:"alert,omitempty"`
	AlertAt *time.Time      `json:"alert_at,omitempty"`
}

// Option configures a Surface.
type Option func(*Surface)

// WithClock overrides the time source used for form reveal timing.
func WithClock(now func() time.Time) Option {
	return func(s *Surface) {
		s.now = now
	}
}

// Surface is an in-memory rendering target implementing domain.Renderer and domain.Alerter.
type Surface struct {
	mu    sync.RWMutex
	state State
	now   func() time.Time
}

// NewSurface returns a surface with the map unloaded and the form hidden.
func NewSurface(opts ...Option) *Surface {
	s := &Surface{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.state = initialState()
	return s
}

func initialState() State {
	return State{
		Markers: []domain.Marker{},
		List:    []ListEntry{},
		Form: FormState{
			Display:        "grid",
			Type:           domain.KindRunning,
			CadenceVisible: true,
		},
	}
}

// LoadMap implements domain.Renderer.
func (s *Surface) LoadMap(center domain.Coordinate, zoom int, tiles domain.TileLayer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Map = MapState{Loaded: true, Center: center, Zoom: zoom, Tiles: tiles}
	s.state.Markers = []domain.Marker{}
}

// RenderMarker implements domain.Renderer.
func (s *Surface) RenderMarker(marker domain.Marker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Markers = append(s.state.Markers, marker)
}

// RenderListEntry inserts the entry directly after the form, so newer workouts come first.
func (s *Surface) RenderListEntry(workout domain.Workout) {
	entry := NewListEntry(workout)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.List = append([]ListEntry{entry}, s.state.List...)
}

// SetView implements domain.Renderer.
func (s *Surface) SetView(center domain.Coordinate, zoom int, pan domain.PanOptions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Map.Center = center
	s.state.Map.Zoom = zoom
	s.state.Map.Pan = pan
}

// ShowForm implements domain.Renderer.
func (s *Surface) ShowForm(at domain.Coordinate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clicked := at
	s.state.Form.Visible = true
	s.state.Form.Display = "grid"
	s.state.Form.Focus = "distance"
	s.state.Form.Clicked = &clicked
	s.state.Form.revealAt = time.Time{}
}

// HideForm clears and hides the form; its layout comes back after revealAfter.
func (s *Surface) HideForm(revealAfter time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Form.Visible = false
	s.state.Form.Display = "none"
	s.state.Form.Focus = ""
	s.state.Form.Clicked = nil
	s.state.Form.revealAt = s.now().Add(revealAfter)
}

// ToggleTypeFields implements domain.Renderer.
func (s *Surface) ToggleTypeFields() {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := &s.state.Form
	f.CadenceVisible = !f.CadenceVisible
	f.ElevationVisible = !f.ElevationVisible
	if f.Type == domain.KindRunning {
		f.Type = domain.KindCycling
	} else {
		f.Type = domain.KindRunning
	}
}

// ClearWorkouts implements domain.Renderer.
func (s *Surface) ClearWorkouts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Markers = []domain.Marker{}
	s.state.List = []ListEntry{}
}

// Reset implements domain.Renderer.
func (s *Surface) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = initialState()
}

// Alert implements domain.Alerter.
func (s *Surface) Alert(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at := s.now()
	s.state.Alert = message
	s.state.AlertAt = &at
}

// Snapshot returns a deep copy of the current state.
func (s *Surface) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.state
	out.Markers = make([]domain.Marker, len(s.state.Markers))
	copy(out.Markers, s.state.Markers)
	out.List = make([]ListEntry, len(s.state.List))
	copy(out.List, s.state.List)
	if s.state.Form.Clicked != nil {
		clicked := *s.state.Form.Clicked
		out.Form.Clicked = &clicked
	}
	if !out.Form.Visible && !out.Form.revealAt.IsZero() && !s.now().Before(out.Form.revealAt) {
		out.Form.Display = "grid"
	}
	return out
}
