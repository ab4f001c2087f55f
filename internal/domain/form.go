package domain

import (
	"math"
	"strconv"
	"strings"
)

// FormInput carries the raw field values of the entry form.
type FormInput struct {
	Type      string
	Distance  string
	Duration  string
	Cadence   string
	Elevation string
}

type parsedForm struct {
	kind      Kind
	distance  float64
	duration  float64
	cadence   float64
	elevation float64
}

// Validate coerces the fields and applies the submission rule:
// distance > 0, duration > 0, and either a non-empty finite elevation or a positive cadence.
// That check does not depend on the selected type, but the selected type's own field
// (cadence for running, elevation for cycling) must also be a number.
func (in FormInput) Validate() error {
	_, err := in.parse()
	return err
}

func (in FormInput) parse() (parsedForm, error) {
	kind, ok := ParseKind(in.Type)
	if !ok {
		return parsedForm{}, ErrValidationFailed
	}
	form := parsedForm{
		kind:      kind,
		distance:  coerceNumber(in.Distance),
		duration:  coerceNumber(in.Duration),
		cadence:   coerceNumber(in.Cadence),
		elevation: coerceNumber(in.Elevation),
	}

	elevationOK := in.Elevation != "" && finite(form.elevation)
	if !(form.distance > 0 && form.duration > 0 && (elevationOK || form.cadence > 0)) {
		return parsedForm{}, ErrValidationFailed
	}
	// The stored field of the selected kind must be a real number.
	if (kind == KindRunning && !finite(form.cadence)) || (kind == KindCycling && !finite(form.elevation)) {
		return parsedForm{}, ErrValidationFailed
	}
	return form, nil
}

// coerceNumber follows unary-plus semantics: blank is zero, garbage is NaN.
// Infinities are reported as NaN so no non-finite value reaches a workout.
func coerceNumber(raw string) float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || !finite(v) {
		return math.NaN()
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
