// Package domain defines the workout records and the tracker that orchestrates them.
package domain

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/avrumiMuller/Mapty/internal/observability"
)

// Settings holds the tracker tunables.
type Settings struct {
	StorageKey      string
	Zoom            int
	Tiles           TileLayer
	FormRevealDelay time.Duration
	PanDuration     time.Duration
	DayStyle        DayStyle
}

// DefaultSettings returns the stock map and storage configuration.
func DefaultSettings() Settings {
	return Settings{
		StorageKey: "workout",
		Zoom:       13,
		Tiles: TileLayer{
			URL:         "https://tile.openstreetmap.fr/hot/{z}/{x}/{y}.png",
			Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`,
		},
		FormRevealDelay: time.Second,
		PanDuration:     time.Second,
		DayStyle:        DayOfWeek,
	}
}

// Option configures optional behaviour for the Tracker.
type Option func(*Tracker)

// WithLogger overrides the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Tracker) {
		t.logger = logger
	}
}

// WithClock overrides the time source used for ids and descriptions.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// WithPublisher announces every recorded workout.
func WithPublisher(publisher Publisher) Option {
	return func(t *Tracker) {
		t.publisher = publisher
	}
}

// Tracker owns the session's workout list and drives the renderer.
// Every operation holds the tracker lock until it completes.
type Tracker struct {
	mu sync.Mutex

	store     Store
	renderer  Renderer
	alerter   Alerter
	geo       Geolocator
	publisher Publisher
	settings  Settings
	logger    *zap.Logger
	now       func() time.Time

	workouts  []Workout
	mapLoaded bool
	center    Coordinate
	pending   *Coordinate
}

// NewTracker constructs a Tracker. A nil geolocator leaves the map unloaded until LoadMap is called.
func NewTracker(store Store, renderer Renderer, alerter Alerter, geo Geolocator, settings Settings, opts ...Option) *Tracker {
	t := &Tracker{
		store:    store,
		renderer: renderer,
		alerter:  alerter,
		geo:      geo,
		settings: settings,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Initialize restores stored workouts and then loads the map at the current position.
func (t *Tracker) Initialize(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.initializeLocked(ctx)
}

func (t *Tracker) initializeLocked(ctx context.Context) error {
	if err := t.restoreLocked(ctx); err != nil {
		return err
	}

	if t.geo == nil {
		t.logger.Info("no geolocator configured, waiting for a client position")
		return nil
	}

	pos, err := t.geo.CurrentPosition(ctx)
	if err != nil {
		t.positionDeniedLocked(err)
		return fmt.Errorf("%w: %v", ErrGeolocationDenied, err)
	}
	t.loadMapLocked(pos)
	return nil
}

// LoadMap centres the map on the given position and pins every known workout.
func (t *Tracker) LoadMap(pos Coordinate) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.loadMapLocked(pos)
}

func (t *Tracker) loadMapLocked(pos Coordinate) {
	t.renderer.LoadMap(pos, t.settings.Zoom, t.settings.Tiles)
	t.mapLoaded = true
	t.center = pos
	for _, w := range t.workouts {
		t.renderer.RenderMarker(t.markerFor(w))
	}
	t.logger.Info("map loaded", zap.Stringer("center", pos), zap.Int("markers", len(t.workouts)))
}

// PositionDenied handles a refused or failed geolocation request delivered by a client.
func (t *Tracker) PositionDenied(reason string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.positionDeniedLocked(errors.New(reason))
	return ErrGeolocationDenied
}

func (t *Tracker) positionDeniedLocked(cause error) {
	t.logger.Warn("geolocation failed", zap.Error(cause))
	observability.RecordGeolocationFailure()
	t.alerter.Alert(MsgPositionUnavailable)
}

// ShowForm remembers the clicked position and reveals the entry form.
func (t *Tracker) ShowForm(at Coordinate) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.mapLoaded {
		return ErrMapNotReady
	}
	clicked := at
	t.pending = &clicked
	t.renderer.ShowForm(at)
	return nil
}

// ToggleTypeFields swaps the cadence and elevation inputs.
func (t *Tracker) ToggleTypeFields() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.renderer.ToggleTypeFields()
}

// Submit validates the form and records a workout at the last clicked position.
// On validation failure the user is alerted and nothing else changes.
func (t *Tracker) Submit(ctx context.Context, in FormInput) (Workout, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending == nil {
		return Workout{}, ErrNoPendingLocation
	}

	form, err := in.parse()
	if err != nil {
		observability.RecordValidationFailure()
		t.alerter.Alert(MsgInvalidInputs)
		return Workout{}, err
	}

	now := t.now()
	id := t.uniqueIDLocked(now)
	coords := *t.pending

	var workout Workout
	switch form.kind {
	case KindRunning:
		workout = NewRunning(id, now, coords, form.distance, form.duration, form.cadence, t.settings.DayStyle)
	case KindCycling:
		workout = NewCycling(id, now, coords, form.distance, form.duration, form.elevation, t.settings.DayStyle)
	}

	t.workouts = append(t.workouts, workout)
	t.renderer.RenderMarker(t.markerFor(workout))
	t.renderer.RenderListEntry(workout)
	t.renderer.HideForm(t.settings.FormRevealDelay)
	t.pending = nil

	if err := t.persistLocked(ctx); err != nil {
		return workout, err
	}
	observability.RecordWorkoutRecorded(string(workout.Kind))

	if t.publisher != nil {
		if err := t.publisher.PublishWorkoutRecorded(ctx, workout); err != nil {
			t.logger.Warn("publish workout failed", zap.String("workout_id", workout.ID), zap.Error(err))
		}
	}

	t.logger.Info("workout recorded",
		zap.String("workout_id", workout.ID),
		zap.String("kind", string(workout.Kind)),
		zap.Float64("distance_km", workout.DistanceKm))
	return workout, nil
}

// uniqueIDLocked bumps the timestamp id until it does not clash with a session record.
func (t *Tracker) uniqueIDLocked(now time.Time) string {
	n := now.UnixMilli()
	id := lastDigits(n)
	for t.indexLocked(id) >= 0 {
		n++
		id = lastDigits(n)
	}
	return id
}

func (t *Tracker) indexLocked(id string) int {
	for i := range t.workouts {
		if t.workouts[i].ID == id {
			return i
		}
	}
	return -1
}

func (t *Tracker) markerFor(w Workout) Marker {
	return Marker{
		WorkoutID: w.ID,
		Coords:    w.Coords,
		Popup: PopupOptions{
			MinWidth:     100,
			MaxWidth:     250,
			AutoClose:    false,
			CloseOnClick: false,
			ClassName:    string(w.Kind) + "-popup",
		},
		Content: w.Kind.Icon() + " " + w.Description,
		Open:    true,
	}
}

// PanTo animates the map to the workout's position.
func (t *Tracker) PanTo(id string) (Workout, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.mapLoaded {
		return Workout{}, ErrMapNotReady
	}
	idx := t.indexLocked(id)
	if idx < 0 {
		return Workout{}, ErrWorkoutNotFound
	}
	w := t.workouts[idx]
	t.renderer.SetView(w.Coords, t.settings.Zoom, PanOptions{Animate: true, Duration: t.settings.PanDuration})
	t.center = w.Coords
	return w, nil
}

// Persist writes the whole list under the storage key.
func (t *Tracker) Persist(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.persistLocked(ctx)
}

func (t *Tracker) persistLocked(ctx context.Context) error {
	data, err := EncodeWorkouts(t.workouts)
	if err != nil {
		return err
	}
	if err := t.store.Put(ctx, t.settings.StorageKey, data); err != nil {
		return fmt.Errorf("persist workouts: %w", err)
	}
	observability.RecordWorkoutsPersisted(t.now(), len(t.workouts))
	return nil
}

// Restore replaces the in-memory list with the stored one and re-renders it.
// A missing key yields an empty list; an unreadable value is logged and ignored.
func (t *Tracker) Restore(ctx context.Context) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.restoreLocked(ctx); err != nil {
		return 0, err
	}
	return len(t.workouts), nil
}

func (t *Tracker) restoreLocked(ctx context.Context) error {
	t.renderer.ClearWorkouts()
	t.workouts = nil

	data, err := t.store.Get(ctx, t.settings.StorageKey)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil
		}
		return fmt.Errorf("restore workouts: %w", err)
	}

	workouts, dropped, err := DecodeWorkouts(data)
	if err != nil {
		t.logger.Warn("ignoring unreadable stored workouts", zap.String("key", t.settings.StorageKey), zap.Error(err))
		observability.RecordRestoreFailure()
		return nil
	}
	if dropped > 0 {
		t.logger.Warn("dropped invalid stored workouts", zap.Int("dropped", dropped))
	}

	t.workouts = workouts
	for _, w := range t.workouts {
		t.renderer.RenderListEntry(w)
		if t.mapLoaded {
			t.renderer.RenderMarker(t.markerFor(w))
		}
	}
	t.logger.Info("workouts restored", zap.Int("count", len(workouts)))
	return nil
}

// Reset deletes the stored list and starts a fresh session.
func (t *Tracker) Reset(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.Delete(ctx, t.settings.StorageKey); err != nil && !errors.Is(err, ErrKeyNotFound) {
		return fmt.Errorf("reset workouts: %w", err)
	}
	t.workouts = nil
	t.pending = nil
	t.mapLoaded = false
	t.center = Coordinate{}
	t.renderer.Reset()
	observability.RecordWorkoutsPersisted(t.now(), 0)

	return t.initializeLocked(ctx)
}

// Workouts returns a copy of the session list in creation order.
func (t *Tracker) Workouts() []Workout {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Workout, len(t.workouts))
	copy(out, t.workouts)
	return out
}

// Workout looks up a single record.
func (t *Tracker) Workout(id string) (Workout, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := t.indexLocked(id)
	if idx < 0 {
		return Workout{}, ErrWorkoutNotFound
	}
	return t.workouts[idx], nil
}

// MapLoaded reports whether the map has been initialised.
func (t *Tracker) MapLoaded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mapLoaded
}
