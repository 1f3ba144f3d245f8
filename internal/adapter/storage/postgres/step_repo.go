package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"payment-journey-tracker/internal/core/domain"

	"github.com/google/uuid"
)

// StepRepo implements ports.StepRepository.
// Steps are append-only; there is no update path.
type StepRepo struct {
	pool Pool
}

// NewStepRepo creates a new StepRepo.
func NewStepRepo(pool Pool) *StepRepo {
	return &StepRepo{pool: pool}
}

// Create appends a journey step.
func (r *StepRepo) Create(ctx context.Context, s *domain.JourneyStep) error {
	meta, err := json.Marshal(s.EventMetadata)
	if err != nil {
		return fmt.Errorf("marshal step metadata: %w", err)
	}

	query := `INSERT INTO journey_steps
		(id, instance_id, sequence, step_name, event_id, event_type, timestamp,
		duration_from_start_ms, duration_from_previous_ms, expected, on_time, event_metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err = r.pool.Exec(ctx, query,
		s.ID, s.InstanceID, s.Sequence, s.StepName, s.EventID, s.EventType, s.Timestamp,
		s.DurationFromStart, s.DurationFromPrev, s.Expected, s.OnTime, meta, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert journey step: %w", err)
	}
	return nil
}

// ListByInstance returns all steps of an instance in append order.
func (r *StepRepo) ListByInstance(ctx context.Context, instanceID uuid.UUID) ([]domain.JourneyStep, error) {
	query := `SELECT id, instance_id, sequence, step_name, event_id, event_type, timestamp,
		duration_from_start_ms, duration_from_previous_ms, expected, on_time, event_metadata, created_at
		FROM journey_steps WHERE instance_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, instanceID)
	if err != nil {
		return nil, fmt.Errorf("list journey steps: %w", err)
	}
	defer rows.Close()

	var steps []domain.JourneyStep
	for rows.Next() {
		s := domain.JourneyStep{}
		var meta []byte
		err := rows.Scan(
			&s.ID, &s.InstanceID, &s.Sequence, &s.StepName, &s.EventID, &s.EventType, &s.Timestamp,
			&s.DurationFromStart, &s.DurationFromPrev, &s.Expected, &s.OnTime, &meta, &s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan step row: %w", err)
		}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &s.EventMetadata); err != nil {
				return nil, fmt.Errorf("unmarshal step metadata: %w", err)
			}
		}
		steps = append(steps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate step rows: %w", err)
	}
	return steps, nil
}

// ExistsForEvent reports whether the instance already has a step for the event.
func (r *StepRepo) ExistsForEvent(ctx context.Context, instanceID uuid.UUID, eventID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM journey_steps WHERE instance_id = $1 AND event_id = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, instanceID, eventID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check step exists: %w", err)
	}
	return exists, nil
}
