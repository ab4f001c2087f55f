package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/avrumiMuller/Mapty/internal/domain"
	"github.com/avrumiMuller/Mapty/internal/events"
)

// MirrorHandler appends recorded workouts to a secondary store key.
type MirrorHandler struct {
	mu     sync.Mutex
	store  domain.Store
	key    string
	logger *zap.Logger
}

// NewMirrorHandler constructs a handler writing the mirrored list under key.
func NewMirrorHandler(store domain.Store, key string, logger *zap.Logger) *MirrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MirrorHandler{store: store, key: key, logger: logger}
}

// Handle implements Handler. Events other than workout.recorded are ignored, and
// workouts already present in the mirror are not appended twice.
func (h *MirrorHandler) Handle(ctx context.Context, msg Message) error {
	if msg.EventType != events.EventWorkoutRecorded {
		recordMirrored("ignored")
		return nil
	}

	var event events.WorkoutRecorded
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return fmt.Errorf("decode %s: %w", msg.EventType, err)
	}
	if !event.Workout.Valid() {
		return fmt.Errorf("decode %s: invalid workout %q", msg.EventType, event.WorkoutID)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	mirrored, err := h.load(ctx)
	if err != nil {
		return err
	}
	for _, w := range mirrored {
		if w.ID == event.Workout.ID {
			recordMirrored("duplicate")
			return nil
		}
	}

	data, err := domain.EncodeWorkouts(append(mirrored, event.Workout))
	if err != nil {
		return err
	}
	if err := h.store.Put(ctx, h.key, data); err != nil {
		return fmt.Errorf("mirror put: %w", err)
	}
	recordMirrored("appended")
	h.logger.Info("workout mirrored",
		zap.String("workout_id", event.Workout.ID),
		zap.String("event_id", msg.EventID),
		zap.Int("total", len(mirrored)+1))
	return nil
}

func (h *MirrorHandler) load(ctx context.Context) ([]domain.Workout, error) {
	data, err := h.store.Get(ctx, h.key)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mirror get: %w", err)
	}
	workouts, dropped, err := domain.DecodeWorkouts(data)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		h.logger.Warn("dropped invalid mirrored workouts", zap.Int("dropped", dropped))
	}
	return workouts, nil
}
