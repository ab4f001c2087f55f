package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"

	"github.com/avrumiMuller/Mapty/internal/domain"
	"github.com/avrumiMuller/Mapty/internal/view"
)

// PositionRequest delivers the client's geolocation result.
type PositionRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Denied    bool     `json:"denied"`
	Reason    string   `json:"reason,omitempty"`
}

// Validate ensures a usable position was supplied.
func (r PositionRequest) Validate() error {
	if r.Latitude == nil || r.Longitude == nil {
		return errors.New("latitude and longitude are required")
	}
	if math.Abs(*r.Latitude) > 90 || math.Abs(*r.Longitude) > 180 {
		return errors.New("position out of range")
	}
	return nil
}

// ClickRequest is a map click.
type ClickRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// Validate ensures both coordinates were supplied and are in range.
func (r ClickRequest) Validate() error {
	if r.Lat == nil || r.Lng == nil {
		return errors.New("lat and lng are required")
	}
	if math.Abs(*r.Lat) > 90 || math.Abs(*r.Lng) > 180 {
		return errors.New("position out of range")
	}
	return nil
}

// FormValue accepts a JSON string or number and keeps its raw text, so the
// domain applies the same coercion a form field would.
type FormValue string

// UnmarshalJSON implements json.Unmarshaler.
func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = FormValue(n.String())
	return nil
}

// CreateWorkoutRequest mirrors the entry form fields.
type CreateWorkoutRequest struct {
	Type      string    `json:"type"`
	Distance  FormValue `json:"distance"`
	Duration  FormValue `json:"duration"`
	Cadence   FormValue `json:"cadence"`
	Elevation FormValue `json:"elevation"`
}

// FormInput converts the request into the tracker's form input.
func (r CreateWorkoutRequest) FormInput() domain.FormInput {
	return domain.FormInput{
		Type:      r.Type,
		Distance:  string(r.Distance),
		Duration:  string(r.Duration),
		Cadence:   string(r.Cadence),
		Elevation: string(r.Elevation),
	}
}

// WorkoutView is the API representation of a workout with its list rendering.
type WorkoutView struct {
	domain.Workout
	Entry view.ListEntry `json:"entry"`
}

// MarshalJSON flattens the workout fields next to the entry. The embedded
// Workout's own MarshalJSON would otherwise replace the whole object.
func (v WorkoutView) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(v.Workout)
	if err != nil {
		return nil, err
	}
	entry, err := json.Marshal(v.Entry)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(base)+len(entry)+10)
	out = append(out, base[:len(base)-1]...)
	out = append(out, `,"entry":`...)
	out = append(out, entry...)
	return append(out, '}'), nil
}

// ListWorkoutsResponse packages list results.
type ListWorkoutsResponse struct {
	Items []WorkoutView `json:"items"`
}

func toWorkoutView(w domain.Workout) WorkoutView {
	return WorkoutView{Workout: w, Entry: view.NewListEntry(w)}
}
