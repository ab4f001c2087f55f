// Package api exposes HTTP handlers for the workout tracker.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/avrumiMuller/Mapty/internal/domain"
	"github.com/avrumiMuller/Mapty/internal/view"
)

// Option configures optional behaviour for the Handler.
type Option func(*Handler)

// WithLogger overrides the handler logger.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// Handler coordinates HTTP requests with the tracker and its view surface.
type Handler struct {
	tracker *domain.Tracker
	surface *view.Surface
	logger  *zap.Logger
}

// NewHandler builds a Handler.
func NewHandler(tracker *domain.Tracker, surface *view.Surface, opts ...Option) *Handler {
	h := &Handler{tracker: tracker, surface: surface, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes wires endpoints to the router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/v1/map/position", h.position).Methods(http.MethodPost)
	r.HandleFunc("/v1/map/click", h.click).Methods(http.MethodPost)
	r.HandleFunc("/v1/form/type", h.toggleType).Methods(http.MethodPost)
	r.HandleFunc("/v1/workouts", h.listWorkouts).Methods(http.MethodGet)
	r.HandleFunc("/v1/workouts", h.createWorkout).Methods(http.MethodPost)
	r.HandleFunc("/v1/workouts", h.reset).Methods(http.MethodDelete)
	r.HandleFunc("/v1/workouts/{id}", h.getWorkout).Methods(http.MethodGet)
	r.HandleFunc("/v1/workouts/{id}/pan", h.panTo).Methods(http.MethodPost)
	r.HandleFunc("/v1/view", h.snapshot).Methods(http.MethodGet)
	r.HandleFunc("/v1/view/list", h.listHTML).Methods(http.MethodGet)
	r.HandleFunc("/v1/charts/distance", h.distanceChart).Methods(http.MethodGet)
	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) position(w http.ResponseWriter, r *http.Request) {
	var req PositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	if req.Denied {
		reason := strings.TrimSpace(req.Reason)
		if reason == "" {
			reason = "client denied geolocation"
		}
		h.writeDomainError(w, h.tracker.PositionDenied(reason))
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	h.tracker.LoadMap(domain.Coordinate{Lat: *req.Latitude, Lng: *req.Longitude})
	writeJSON(w, http.StatusOK, h.surface.Snapshot())
}

func (h *Handler) click(w http.ResponseWriter, r *http.Request) {
	var req ClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	if err := h.tracker.ShowForm(domain.Coordinate{Lat: *req.Lat, Lng: *req.Lng}); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.surface.Snapshot().Form)
}

func (h *Handler) toggleType(w http.ResponseWriter, r *http.Request) {
	h.tracker.ToggleTypeFields()
	writeJSON(w, http.StatusOK, h.surface.Snapshot().Form)
}

func (h *Handler) createWorkout(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	workout, err := h.tracker.Submit(r.Context(), req.FormInput())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWorkoutView(workout))
}

func (h *Handler) listWorkouts(w http.ResponseWriter, r *http.Request) {
	workouts := h.tracker.Workouts()
	resp := ListWorkoutsResponse{Items: make([]WorkoutView, 0, len(workouts))}
	for _, workout := range workouts {
		resp.Items = append(resp.Items, toWorkoutView(workout))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getWorkout(w http.ResponseWriter, r *http.Request) {
	workout, err := h.tracker.Workout(mux.Vars(r)["id"])
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkoutView(workout))
}

func (h *Handler) panTo(w http.ResponseWriter, r *http.Request) {
	if _, err := h.tracker.PanTo(mux.Vars(r)["id"]); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.surface.Snapshot().Map)
}

// reset clears storage and restarts the session. A failed geolocation afterwards
// leaves the map unloaded but the reset itself succeeded.
func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	if err := h.tracker.Reset(r.Context()); err != nil && !errors.Is(err, domain.ErrGeolocationDenied) {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.surface.Snapshot())
}

func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.surface.Snapshot())
}

func (h *Handler) listHTML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.RenderListHTML(w, h.surface.Snapshot().List); err != nil {
		h.logger.Error("render list", zap.Error(err))
	}
}

func (h *Handler) distanceChart(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.RenderDistanceChart(w, h.tracker.Workouts()); err != nil {
		h.logger.Error("render chart", zap.Error(err))
	}
}

func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidationFailed):
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", domain.MsgInvalidInputs)
	case errors.Is(err, domain.ErrGeolocationDenied):
		writeError(w, http.StatusFailedDependency, "geolocation_denied", domain.MsgPositionUnavailable)
	case errors.Is(err, domain.ErrMapNotReady):
		writeError(w, http.StatusConflict, "map_not_ready", err.Error())
	case errors.Is(err, domain.ErrNoPendingLocation):
		writeError(w, http.StatusConflict, "no_pending_location", err.Error())
	case errors.Is(err, domain.ErrWorkoutNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		h.logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
