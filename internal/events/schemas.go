package events

const workoutRecordedSchema = `{
  "type": "object",
  "title": "WorkoutRecorded",
  "properties": {
    "event_id": {"type": "string"},
    "workout_id": {"type": "string"},
    "type": {"type": "string", "enum": ["running", "cycling"]},
    "description": {"type": "string"},
    "recorded_at": {"type": "string", "format": "date-time"},
    "workout": {
      "type": "object",
      "properties": {
        "id": {"type": "string"},
        "date": {"type": "string", "format": "date-time"},
        "coords": {"type": "array", "items": {"type": "number"}, "minItems": 2, "maxItems": 2},
        "distance": {"type": "number"},
        "duration": {"type": "number"},
        "type": {"type": "string"},
        "description": {"type": "string"},
        "cadence": {"type": "number"},
        "pace": {"type": "number"},
        "elevationGain": {"type": "number"},
        "speed": {"type": "number"}
      },
      "required": ["id", "date", "coords", "distance", "duration", "type"]
    }
  },
  "required": ["event_id", "workout_id", "type", "recorded_at", "workout"],
  "additionalProperties": false
}`

// schemaCatalog maps event type to its registered JSON schema.
var schemaCatalog = map[string]string{
	EventWorkoutRecorded: workoutRecordedSchema,
}
