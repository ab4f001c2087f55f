package domain

import (
	"encoding/json"
	"fmt"
)

// EncodeWorkouts serialises the full list as a JSON array.
func EncodeWorkouts(workouts []Workout) ([]byte, error) {
	if workouts == nil {
		workouts = []Workout{}
	}
	return json.Marshal(workouts)
}

// DecodeWorkouts parses a stored list. Records that break the creation invariants
// are dropped and counted in the second return value.
func DecodeWorkouts(data []byte) ([]Workout, int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("decode workouts: %w", err)
	}

	out := make([]Workout, 0, len(raw))
	dropped := 0
	for _, item := range raw {
		var w Workout
		if err := json.Unmarshal(item, &w); err != nil || !w.Valid() {
			dropped++
			continue
		}
		out = append(out, w)
	}
	return out, dropped, nil
}
