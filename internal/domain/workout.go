package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind discriminates the workout payload.
type Kind string

const (
	KindRunning Kind = "running"
	KindCycling Kind = "cycling"
)

// ParseKind maps a form value onto a Kind.
func ParseKind(value string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindRunning:
		return KindRunning, true
	case KindCycling:
		return KindCycling, true
	}
	return "", false
}

// Icon returns the glyph shown next to a workout of this kind.
func (k Kind) Icon() string {
	if k == KindRunning {
		return "🏃‍♂️"
	}
	return "🚴‍♀️"
}

// Coordinate is a latitude/longitude pair. It serialises as [lat, lng].
type Coordinate struct {
	Lat float64
	Lng float64
}

// MarshalJSON implements json.Marshaler.
func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lat, c.Lng})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinate needs 2 values, got %d", len(pair))
	}
	c.Lat, c.Lng = pair[0], pair[1]
	return nil
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%g,%g", c.Lat, c.Lng)
}

// ParseCoordinate reads a "lat,lng" pair.
func ParseCoordinate(value string) (Coordinate, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q", value)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid longitude: %w", err)
	}
	return Coordinate{Lat: lat, Lng: lng}, nil
}

// DayStyle selects which day number appears in a workout description.
type DayStyle int

const (
	// DayOfWeek renders the weekday index (0 = Sunday).
	DayOfWeek DayStyle = iota
	// DayOfMonth renders the calendar day.
	DayOfMonth
)

// ParseDayStyle accepts "weekday" or "monthday"; anything else yields DayOfWeek.
func ParseDayStyle(value string) DayStyle {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "monthday", "month", "day_of_month":
		return DayOfMonth
	}
	return DayOfWeek
}

// Workout is one logged running or cycling session.
// Exactly one of the cadence/pace or elevation/speed pairs is meaningful, selected by Kind.
type Workout struct {
	ID          string     `json:"id"`
	CreatedAt   time.Time  `json:"date"`
	Coords      Coordinate `json:"coords"`
	DistanceKm  float64    `json:"distance"`
	DurationMin float64    `json:"duration"`
	Kind        Kind       `json:"type"`
	Description string     `json:"description"`

	CadenceSpm   float64 `json:"cadence"`
	PaceMinPerKm float64 `json:"pace"`

	ElevationGainM float64 `json:"elevationGain"`
	SpeedKmPerH    float64 `json:"speed"`
}

type workoutJSON struct {
	ID          string     `json:"id"`
	CreatedAt   time.Time  `json:"date"`
	Coords      Coordinate `json:"coords"`
	DistanceKm  float64    `json:"distance"`
	DurationMin float64    `json:"duration"`
	Kind        Kind       `json:"type"`
	Description string     `json:"description"`

	CadenceSpm     *float64 `json:"cadence,omitempty"`
	PaceMinPerKm   *float64 `json:"pace,omitempty"`
	ElevationGainM *float64 `json:"elevationGain,omitempty"`
	SpeedKmPerH    *float64 `json:"speed,omitempty"`
}

// MarshalJSON writes the shared fields plus both fields of the workout's kind,
// zero values included; the other kind's pair is left out.
func (w Workout) MarshalJSON() ([]byte, error) {
	out := workoutJSON{
		ID:          w.ID,
		CreatedAt:   w.CreatedAt,
		Coords:      w.Coords,
		DistanceKm:  w.DistanceKm,
		DurationMin: w.DurationMin,
		Kind:        w.Kind,
		Description: w.Description,
	}
	switch w.Kind {
	case KindRunning:
		out.CadenceSpm, out.PaceMinPerKm = &w.CadenceSpm, &w.PaceMinPerKm
	case KindCycling:
		out.ElevationGainM, out.SpeedKmPerH = &w.ElevationGainM, &w.SpeedKmPerH
	}
	return json.Marshal(out)
}

// NewRunning builds a running workout and derives its pace.
func NewRunning(id string, createdAt time.Time, coords Coordinate, distanceKm, durationMin, cadenceSpm float64, style DayStyle) Workout {
	return Workout{
		ID:           id,
		CreatedAt:    createdAt,
		Coords:       coords,
		DistanceKm:   distanceKm,
		DurationMin:  durationMin,
		Kind:         KindRunning,
		Description:  Describe(KindRunning, createdAt, style),
		CadenceSpm:   cadenceSpm,
		PaceMinPerKm: Pace(distanceKm, durationMin),
	}
}

// NewCycling builds a cycling workout and derives its speed.
func NewCycling(id string, createdAt time.Time, coords Coordinate, distanceKm, durationMin, elevationGainM float64, style DayStyle) Workout {
	return Workout{
		ID:             id,
		CreatedAt:      createdAt,
		Coords:         coords,
		DistanceKm:     distanceKm,
		DurationMin:    durationMin,
		Kind:           KindCycling,
		Description:    Describe(KindCycling, createdAt, style),
		ElevationGainM: elevationGainM,
		SpeedKmPerH:    Speed(distanceKm, durationMin),
	}
}

// Describe renders "<Kind> on <Month> <day>".
func Describe(kind Kind, at time.Time, style DayStyle) string {
	name := string(kind)
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	day := int(at.Weekday())
	if style == DayOfMonth {
		day = at.Day()
	}
	return fmt.Sprintf("%s on %s %d", name, at.Month().String(), day)
}

// Pace is minutes per kilometre rounded to two decimals.
func Pace(distanceKm, durationMin float64) float64 {
	return Round2(durationMin / distanceKm)
}

// Speed is kilometres per hour rounded to two decimals.
func Speed(distanceKm, durationMin float64) float64 {
	return Round2(distanceKm / (durationMin / 60))
}

// Round2 rounds half away from zero at two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// NewID derives an identifier from the last 10 digits of the Unix millisecond clock.
func NewID(now time.Time) string {
	return lastDigits(now.UnixMilli())
}

func lastDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) > 10 {
		s = s[len(s)-10:]
	}
	return s
}

// Metric returns the kind-specific derived value and its unit.
func (w Workout) Metric() (float64, string) {
	if w.Kind == KindRunning {
		return w.PaceMinPerKm, "min/km"
	}
	return w.SpeedKmPerH, "km/h"
}

// Detail returns the kind-specific input value, its icon and unit.
func (w Workout) Detail() (float64, string, string) {
	if w.Kind == KindRunning {
		return w.CadenceSpm, "🦶🏼", "spm"
	}
	return w.ElevationGainM, "⛰", "m"
}

// Valid reports whether a record satisfies the creation invariants.
func (w Workout) Valid() bool {
	if strings.TrimSpace(w.ID) == "" {
		return false
	}
	if _, ok := ParseKind(string(w.Kind)); !ok {
		return false
	}
	return w.DistanceKm > 0 && w.DurationMin > 0
}
