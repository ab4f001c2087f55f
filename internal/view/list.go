package view

import (
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/avrumiMuller/Mapty/internal/domain"
)

// Detail is one icon/value/unit cell of a list entry.
type Detail struct {
	Icon  string `json:"icon"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// ListEntry is a rendered workout row.
type ListEntry struct {
	WorkoutID string      `json:"workout_id"`
	Kind      domain.Kind `json:"kind"`
	Title     string      `json:"title"`
	Details   []Detail    `json:"details"`
	Text      string      `json:"text"`
}

// NewListEntry formats a workout for the list.
func NewListEntry(w domain.Workout) ListEntry {
	metric, metricUnit := w.Metric()
	detail, detailIcon, detailUnit := w.Detail()

	details := []Detail{
		{Icon: w.Kind.Icon(), Value: formatNumber(w.DistanceKm), Unit: "km"},
		{Icon: "⏱", Value: formatNumber(w.DurationMin), Unit: "min"},
		{Icon: "⚡️", Value: strconv.FormatFloat(metric, 'f', 2, 64), Unit: metricUnit},
		{Icon: detailIcon, Value: formatNumber(detail), Unit: detailUnit},
	}

	text := fmt.Sprintf("%s %s: %s %s, %s %s, %s %s, %s %s",
		w.Kind.Icon(), w.Description,
		details[0].Value, details[0].Unit,
		details[1].Value, details[1].Unit,
		details[2].Value, details[2].Unit,
		details[3].Value, details[3].Unit)

	return ListEntry{
		WorkoutID: w.ID,
		Kind:      w.Kind,
		Title:     w.Description,
		Details:   details,
		Text:      text,
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var listTemplate = template.Must(template.New("workouts").Parse(`{{range .}}<li class="workout workout--{{.Kind}}" data-id="{{.WorkoutID}}">
  <h2 class="workout__title">{{.Title}}</h2>
{{- range .Details}}
  <div class="workout__details">
    <span class="workout__icon">{{.Icon}}</span>
    <span class="workout__value">{{.Value}}</span>
    <span class="workout__unit">{{.Unit}}</span>
  </div>
{{- end}}
</li>
{{end}}`))

// RenderListHTML writes the entries as workout list items.
func RenderListHTML(w io.Writer, entries []ListEntry) error {
	return listTemplate.Execute(w, entries)
}
