package events

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSchemaRegistryReturnsExistingSchema(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/subjects/workout_events-value/versions/latest", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":7}`))
	}))
	defer srv.Close()

	id, err := NewSchemaRegistryClient(srv.URL+"/").EnsureSchema(context.Background(), "workout_events-value", workoutRecordedSchema)
	require.NoError(t, err)
	require.Equal(t, 7, id)
}

func TestSchemaRegistryRegistersUnknownSubject(t *testing.T) {
	var registered map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		require.Equal(t, "/subjects/workout_events-value/versions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&registered))
		_, _ = w.Write([]byte(`{"id":11}`))
	}))
	defer srv.Close()

	id, err := NewSchemaRegistryClient(srv.URL).EnsureSchema(context.Background(), "workout_events-value", workoutRecordedSchema)
	require.NoError(t, err)
	require.Equal(t, 11, id)
	require.Equal(t, "JSON", registered["schemaType"])
	require.JSONEq(t, workoutRecordedSchema, registered["schema"])
}

func TestSchemaRegistrySurfacesErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewSchemaRegistryClient(srv.URL).EnsureSchema(context.Background(), "s", "{}")
	require.ErrorContains(t, err, "boom")
}
