package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInitializeRestoresThenLoadsMap(t *testing.T) {
	store := newStubStore()
	seed, err := EncodeWorkouts([]Workout{
		NewRunning("0000000001", tuesday, Coordinate{Lat: 40, Lng: -73}, 5, 30, 150, DayOfWeek),
		NewCycling("0000000002", tuesday, Coordinate{Lat: 41, Lng: -74}, 20, 60, 300, DayOfWeek),
	})
	require.NoError(t, err)
	store.values["workout"] = seed

	tracker, renderer, alerts := newTestTracker(store, StaticGeolocator{Position: Coordinate{Lat: 40, Lng: -73}})

	require.NoError(t, tracker.Initialize(context.Background()))

	require.True(t, tracker.MapLoaded())
	require.Equal(t, 1, renderer.mapLoads)
	require.Equal(t, 13, renderer.zoom)
	require.Len(t, renderer.list, 2)
	require.Len(t, renderer.markers, 2, "restored workouts are pinned once the map loads")
	require.Empty(t, alerts.messages)
}

func TestInitializeGeolocationDenied(t *testing.T) {
	tracker, renderer, alerts := newTestTracker(newStubStore(), DeniedGeolocator{})

	err := tracker.Initialize(context.Background())
	require.ErrorIs(t, err, ErrGeolocationDenied)
	require.Equal(t, []string{MsgPositionUnavailable}, alerts.messages)
	require.False(t, tracker.MapLoaded())
	require.Zero(t, renderer.mapLoads)

	require.ErrorIs(t, tracker.ShowForm(Coordinate{Lat: 1, Lng: 2}), ErrMapNotReady)
}

func TestInitializeWithoutGeolocatorWaitsForPosition(t *testing.T) {
	tracker, renderer, alerts := newTestTracker(newStubStore(), nil)

	require.NoError(t, tracker.Initialize(context.Background()))
	require.False(t, tracker.MapLoaded())
	require.Empty(t, alerts.messages)

	tracker.LoadMap(Coordinate{Lat: 10, Lng: 20})
	require.True(t, tracker.MapLoaded())
	require.Equal(t, Coordinate{Lat: 10, Lng: 20}, renderer.center)
}

func TestPositionDeniedAlerts(t *testing.T) {
	tracker, _, alerts := newTestTracker(newStubStore(), nil)

	err := tracker.PositionDenied("user dismissed prompt")
	require.ErrorIs(t, err, ErrGeolocationDenied)
	require.Equal(t, []string{MsgPositionUnavailable}, alerts.messages)
}

func TestSubmitRunningWorkout(t *testing.T) {
	store := newStubStore()
	tracker, renderer, alerts := newReadyTracker(t, store)

	require.NoError(t, tracker.ShowForm(Coordinate{Lat: 40, Lng: -73}))
	require.True(t, renderer.formVisible)

	w, err := tracker.Submit(context.Background(), FormInput{Type: "running", Distance: "5", Duration: "30", Cadence: "150"})
	require.NoError(t, err)

	require.Equal(t, 6.0, w.PaceMinPerKm)
	require.Equal(t, "Running on March 2", w.Description)
	require.Equal(t, Coordinate{Lat: 40, Lng: -73}, w.Coords)
	require.Equal(t, NewID(tuesday), w.ID)
	require.Empty(t, alerts.messages)

	require.Len(t, renderer.markers, 1)
	marker := renderer.markers[0]
	require.Equal(t, "🏃‍♂️ Running on March 2", marker.Content)
	require.Equal(t, "running-popup", marker.Popup.ClassName)
	require.False(t, marker.Popup.AutoClose)
	require.False(t, marker.Popup.CloseOnClick)
	require.Equal(t, 100, marker.Popup.MinWidth)
	require.Equal(t, 250, marker.Popup.MaxWidth)

	require.Len(t, renderer.list, 1)
	require.False(t, renderer.formVisible)
	require.Equal(t, time.Second, renderer.revealAfter)

	stored, _, err := DecodeWorkouts(store.values["workout"])
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, w.ID, stored[0].ID)
}

func TestSubmitCyclingWorkout(t *testing.T) {
	tracker, _, _ := newReadyTracker(t, newStubStore())

	require.NoError(t, tracker.ShowForm(Coordinate{Lat: 40, Lng: -73}))
	w, err := tracker.Submit(context.Background(), FormInput{Type: "cycling", Distance: "20", Duration: "60", Elevation: "300"})
	require.NoError(t, err)
	require.Equal(t, 20.0, w.SpeedKmPerH)
	require.Equal(t, 300.0, w.ElevationGainM)
	require.Equal(t, "Cycling on March 2", w.Description)
}

func TestSubmitRejectsInvalidInputs(t *testing.T) {
	store := newStubStore()
	tracker, renderer, alerts := newReadyTracker(t, store)
	require.NoError(t, tracker.ShowForm(Coordinate{Lat: 40, Lng: -73}))
	puts := store.puts

	_, err := tracker.Submit(context.Background(), FormInput{Type: "running", Distance: "-1", Duration: "30", Cadence: "150"})
	require.ErrorIs(t, err, ErrValidationFailed)
	require.Equal(t, []string{MsgInvalidInputs}, alerts.messages)
	require.Empty(t, tracker.Workouts())
	require.Empty(t, renderer.markers)
	require.Empty(t, renderer.list)
	require.Equal(t, puts, store.puts, "nothing is persisted on rejection")
	require.True(t, renderer.formVisible, "form stays open")

	// The remembered position survives a rejected attempt.
	_, err = tracker.Submit(context.Background(), FormInput{Type: "running", Distance: "1", Duration: "30", Cadence: "150"})
	require.NoError(t, err)
}

func TestSubmitWithoutMapClick(t *testing.T) {
	tracker, _, _ := newReadyTracker(t, newStubStore())

	_, err := tracker.Submit(context.Background(), FormInput{Type: "running", Distance: "5", Duration: "30", Cadence: "150"})
	require.ErrorIs(t, err, ErrNoPendingLocation)
}

func TestSubmitResolvesIDCollisions(t *testing.T) {
	tracker, _, _ := newReadyTracker(t, newStubStore())
	ctx := context.Background()

	require.NoError(t, tracker.ShowForm(Coordinate{Lat: 1, Lng: 1}))
	first, err := tracker.Submit(ctx, FormInput{Type: "running", Distance: "5", Duration: "30", Cadence: "150"})
	require.NoError(t, err)

	require.NoError(t, tracker.ShowForm(Coordinate{Lat: 2, Lng: 2}))
	second, err := tracker.Submit(ctx, FormInput{Type: "cycling", Distance: "5", Duration: "30", Elevation: "10"})
	require.NoError(t, err)

	require.NotEqual(t, first.ID, second.ID)
	require.Equal(t, NewID(tuesday.Add(time.Millisecond)), second.ID)
}

func TestSubmitKeepsRecordWhenPersistFails(t *testing.T) {
	store := newStubStore()
	tracker, _, _ := newReadyTracker(t, store)
	store.putErr = errors.New("disk full")

	require.NoError(t, tracker.ShowForm(Coordinate{Lat: 1, Lng: 1}))
	_, err := tracker.Submit(context.Background(), FormInput{Type: "running", Distance: "5", Duration: "30", Cadence: "150"})
	require.ErrorContains(t, err, "disk full")
	require.Len(t, tracker.Workouts(), 1)
}

func TestSubmitIgnoresPublishFailure(t *testing.T) {
	store := newStubStore()
	renderer := &stubRenderer{}
	alerts := &stubAlerter{}
	publisher := &stubPublisher{err: errors.New("broker down")}
	tracker := NewTracker(store, renderer, alerts, StaticGeolocator{}, DefaultSettings(),
		WithClock(func() time.Time { return tuesday }),
		WithPublisher(publisher))
	require.NoError(t, tracker.Initialize(context.Background()))
	require.NoError(t, tracker.ShowForm(Coordinate{Lat: 1, Lng: 1}))

	w, err := tracker.Submit(context.Background(), FormInput{Type: "running", Distance: "5", Duration: "30", Cadence: "150"})
	require.NoError(t, err)
	require.Equal(t, []string{w.ID}, publisher.published)
}

func TestPanTo(t *testing.T) {
	tracker, renderer, _ := newReadyTracker(t, newStubStore())
	require.NoError(t, tracker.ShowForm(Coordinate{Lat: 48.85, Lng: 2.35}))
	w, err := tracker.Submit(context.Background(), FormInput{Type: "running", Distance: "5", Duration: "30", Cadence: "150"})
	require.NoError(t, err)

	got, err := tracker.PanTo(w.ID)
	require.NoError(t, err)
	require.Equal(t, w.ID, got.ID)
	require.Equal(t, Coordinate{Lat: 48.85, Lng: 2.35}, renderer.center)
	require.Equal(t, 13, renderer.zoom)
	require.Equal(t, PanOptions{Animate: true, Duration: time.Second}, renderer.pan)

	_, err = tracker.PanTo("missing")
	require.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestRestoreTreatsMalformedValueAsEmpty(t *testing.T) {
	store := newStubStore()
	store.values["workout"] = []byte("{not json")
	tracker, renderer, _ := newTestTracker(store, StaticGeolocator{})

	require.NoError(t, tracker.Initialize(context.Background()))
	require.Empty(t, tracker.Workouts())
	require.Empty(t, renderer.list)
	require.Equal(t, "{not json", string(store.values["workout"]), "stored value is left untouched")
}

func TestRestorePropagatesStoreErrors(t *testing.T) {
	store := newStubStore()
	store.getErr = errors.New("connection refused")
	tracker, _, _ := newTestTracker(store, StaticGeolocator{})

	err := tracker.Initialize(context.Background())
	require.ErrorContains(t, err, "connection refused")
}

func TestPersistRestoreRoundTrip(t *testing.T) {
	store := newStubStore()
	tracker, _, _ := newReadyTracker(t, store)
	ctx := context.Background()

	inputs := []FormInput{
		{Type: "running", Distance: "5", Duration: "30", Cadence: "150"},
		{Type: "cycling", Distance: "20", Duration: "60", Elevation: "300"},
		{Type: "running", Distance: "10", Duration: "55", Cadence: "172"},
	}
	for i, in := range inputs {
		require.NoError(t, tracker.ShowForm(Coordinate{Lat: float64(i), Lng: float64(-i)}))
		_, err := tracker.Submit(ctx, in)
		require.NoError(t, err)
	}
	want := tracker.Workouts()

	reloaded, renderer, _ := newTestTracker(store, nil)
	n, err := reloaded.Restore(ctx)
	require.NoError(t, err)
	require.Equal(t, len(inputs), n)
	require.Len(t, renderer.list, len(inputs))

	got := reloaded.Workouts()
	for i := range want {
		require.Equal(t, want[i].ID, got[i].ID)
		require.Equal(t, want[i].Description, got[i].Description)
		require.Equal(t, want[i].DistanceKm, got[i].DistanceKm)
		require.Equal(t, want[i].DurationMin, got[i].DurationMin)
		require.Equal(t, want[i].PaceMinPerKm, got[i].PaceMinPerKm)
		require.Equal(t, want[i].SpeedKmPerH, got[i].SpeedKmPerH)
		require.Equal(t, want[i].CadenceSpm, got[i].CadenceSpm)
		require.Equal(t, want[i].ElevationGainM, got[i].ElevationGainM)
	}
}

func TestResetClearsStoredWorkouts(t *testing.T) {
	store := newStubStore()
	tracker, renderer, _ := newReadyTracker(t, store)
	ctx := context.Background()

	require.NoError(t, tracker.ShowForm(Coordinate{Lat: 1, Lng: 1}))
	_, err := tracker.Submit(ctx, FormInput{Type: "running", Distance: "5", Duration: "30", Cadence: "150"})
	require.NoError(t, err)

	require.NoError(t, tracker.Reset(ctx))
	_, ok := store.values["workout"]
	require.False(t, ok)
	require.Empty(t, tracker.Workouts())
	require.Equal(t, 1, renderer.resets)
	require.True(t, tracker.MapLoaded(), "a fresh session reloads the map")

	n, err := tracker.Restore(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestDescriptionUsesConfiguredDayStyle(t *testing.T) {
	settings := DefaultSettings()
	settings.DayStyle = DayOfMonth
	tracker := NewTracker(newStubStore(), &stubRenderer{}, &stubAlerter{}, StaticGeolocator{}, settings,
		WithClock(func() time.Time { return tuesday }))
	require.NoError(t, tracker.Initialize(context.Background()))
	require.NoError(t, tracker.ShowForm(Coordinate{Lat: 1, Lng: 1}))

	w, err := tracker.Submit(context.Background(), FormInput{Type: "running", Distance: "5", Duration: "30", Cadence: "150"})
	require.NoError(t, err)
	require.Equal(t, "Running on March 4", w.Description)
}

func TestSubmitRejectsNonFiniteInputsAndKeepsPersisting(t *testing.T) {
	ctx := context.Background()
	store := newStubStore()
	tracker, _, alerts := newReadyTracker(t, store)

	bad := []FormInput{
		{Type: "cycling", Distance: "20", Duration: "60", Cadence: "150", Elevation: "abc"},
		{Type: "running", Distance: "Infinity", Duration: "30", Cadence: "150"},
		{Type: "running", Distance: "5", Duration: "30", Cadence: "inf"},
	}
	for i, in := range bad {
		require.NoError(t, tracker.ShowForm(Coordinate{Lat: 1, Lng: 2}))
		_, err := tracker.Submit(ctx, in)
		require.ErrorIs(t, err, ErrValidationFailed, in)

		_, err = tracker.Submit(ctx, FormInput{Type: "running", Distance: "5", Duration: "30", Cadence: "150"})
		require.NoError(t, err)

		stored, dropped, err := DecodeWorkouts(store.values["workout"])
		require.NoError(t, err)
		require.Zero(t, dropped)
		require.Len(t, stored, i+1)
	}
	require.Len(t, alerts.messages, len(bad))
	require.Len(t, tracker.Workouts(), len(bad))
}

func newTestTracker(store *stubStore, geo Geolocator) (*Tracker, *stubRenderer, *stubAlerter) {
	renderer := &stubRenderer{}
	alerts := &stubAlerter{}
	tracker := NewTracker(store, renderer, alerts, geo, DefaultSettings(), WithClock(func() time.Time { return tuesday }))
	return tracker, renderer, alerts
}

func newReadyTracker(t *testing.T, store *stubStore) (*Tracker, *stubRenderer, *stubAlerter) {
	t.Helper()
	tracker, renderer, alerts := newTestTracker(store, StaticGeolocator{Position: Coordinate{Lat: 40, Lng: -73}})
	require.NoError(t, tracker.Initialize(context.Background()))
	return tracker, renderer, alerts
}

type stubStore struct {
	values map[string][]byte
	puts   int
	getErr error
	putErr error
}

func newStubStore() *stubStore {
	return &stubStore{values: make(map[string][]byte)}
}

func (s *stubStore) Get(_ context.Context, key string) ([]byte, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	v, ok := s.values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return v, nil
}

func (s *stubStore) Put(_ context.Context, key string, value []byte) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.puts++
	s.values[key] = value
	return nil
}

func (s *stubStore) Delete(_ context.Context, key string) error {
	delete(s.values, key)
	return nil
}

type stubRenderer struct {
	mapLoads    int
	resets      int
	center      Coordinate
	zoom        int
	pan         PanOptions
	markers     []Marker
	list        []Workout
	formVisible bool
	revealAfter time.Duration
	toggled     bool
}

func (r *stubRenderer) LoadMap(center Coordinate, zoom int, _ TileLayer) {
	r.mapLoads++
	r.center = center
	r.zoom = zoom
	r.markers = nil
}

func (r *stubRenderer) RenderMarker(marker Marker) { r.markers = append(r.markers, marker) }

func (r *stubRenderer) RenderListEntry(workout Workout) { r.list = append(r.list, workout) }

func (r *stubRenderer) SetView(center Coordinate, zoom int, pan PanOptions) {
	r.center = center
	r.zoom = zoom
	r.pan = pan
}

func (r *stubRenderer) ShowForm(Coordinate) { r.formVisible = true }

func (r *stubRenderer) HideForm(revealAfter time.Duration) {
	r.formVisible = false
	r.revealAfter = revealAfter
}

func (r *stubRenderer) ToggleTypeFields() { r.toggled = !r.toggled }

func (r *stubRenderer) ClearWorkouts() {
	r.markers = nil
	r.list = nil
}

func (r *stubRenderer) Reset() {
	r.resets++
	r.markers = nil
	r.list = nil
	r.formVisible = false
}

type stubAlerter struct {
	messages []string
}

func (a *stubAlerter) Alert(message string) { a.messages = append(a.messages, message) }

type stubPublisher struct {
	published []string
	err       error
}

func (p *stubPublisher) PublishWorkoutRecorded(_ context.Context, w Workout) error {
	p.published = append(p.published, w.ID)
	return p.err
}
