package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"payment-journey-tracker/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// EventRepo implements ports.EventRepository.
type EventRepo struct {
	pool Pool
}

// NewEventRepo creates a new EventRepo.
func NewEventRepo(pool Pool) *EventRepo {
	return &EventRepo{pool: pool}
}

const eventColumns = `id, event_id, event_type, resource_type, resource_id, resource_uri, topic,
	event_timestamp, received_at, payload, payload_size, signature, signature_valid, source_ip,
	is_duplicate, duplicate_count, processing_state, processing_attempts, last_processing_error,
	processed_at, processing_duration_ms, quarantined_at, quarantine_reason`

// Create inserts a new webhook event row.
func (r *EventRepo) Create(ctx context.Context, e *domain.WebhookEvent) error {
	query := `INSERT INTO webhook_events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`

	_, err := r.pool.Exec(ctx, query,
		e.ID, e.EventID, e.EventType, e.ResourceType, e.ResourceID, e.ResourceURI, e.Topic,
		e.EventTimestamp, e.ReceivedAt, e.Payload, e.PayloadSize, e.Signature, e.SignatureValid, e.SourceIP,
		e.IsDuplicate, e.DuplicateCount, e.ProcessingState, e.ProcessingAttempts, e.LastProcessingError,
		e.ProcessedAt, e.ProcessingDurationMs, e.QuarantinedAt, e.QuarantineReason,
	)
	if err != nil {
		return fmt.Errorf("insert webhook event: %w", err)
	}
	return nil
}

// GetByID fetches an event by internal UUID.
func (r *EventRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WebhookEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM webhook_events WHERE id = $1`
	return r.scanEvent(r.pool.QueryRow(ctx, query, id))
}

// GetByEventID fetches an event by the provider-assigned identifier.
func (r *EventRepo) GetByEventID(ctx context.Context, eventID string) (*domain.WebhookEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM webhook_events WHERE event_id = $1`
	return r.scanEvent(r.pool.QueryRow(ctx, query, eventID))
}

// Update writes the mutable processing fields of an event row.
func (r *EventRepo) Update(ctx context.Context, e *domain.WebhookEvent) error {
	query := `UPDATE webhook_events SET
		processing_state = $1, processing_attempts = $2, last_processing_error = $3,
		processed_at = $4, processing_duration_ms = $5, quarantined_at = $6, quarantine_reason = $7,
		is_duplicate = $8, duplicate_count = $9
		WHERE id = $10`

	tag, err := r.pool.Exec(ctx, query,
		e.ProcessingState, e.ProcessingAttempts, e.LastProcessingError,
		e.ProcessedAt, e.ProcessingDurationMs, e.QuarantinedAt, e.QuarantineReason,
		e.IsDuplicate, e.DuplicateCount, e.ID,
	)
	if err != nil {
		return fmt.Errorf("update webhook event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("webhook event not found: %s", e.ID)
	}
	return nil
}

// MarkDuplicate increments the duplicate counter on the stored row and
// returns the new count.
func (r *EventRepo) MarkDuplicate(ctx context.Context, eventID string) (int, error) {
	query := `UPDATE webhook_events
		SET is_duplicate = TRUE, duplicate_count = duplicate_count + 1
		WHERE event_id = $1
		RETURNING duplicate_count`

	var count int
	if err := r.pool.QueryRow(ctx, query, eventID).Scan(&count); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("webhook event not found: %s", eventID)
		}
		return 0, fmt.Errorf("mark duplicate: %w", err)
	}
	return count, nil
}

// ListRecentByResource returns events for a resource received after since,
// newest first, capped at limit.
func (r *EventRepo) ListRecentByResource(ctx context.Context, resourceID string, since time.Time, limit int) ([]domain.WebhookEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM webhook_events
		WHERE resource_id = $1 AND received_at >= $2
		ORDER BY received_at DESC
		LIMIT $3`

	rows, err := r.pool.Query(ctx, query, resourceID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent events: %w", err)
	}
	defer rows.Close()

	var events []domain.WebhookEvent
	for rows.Next() {
		e := domain.WebhookEvent{}
		if err := scanEventFields(rows, &e); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event rows: %w", err)
	}
	return events, nil
}

func (r *EventRepo) scanEvent(row pgx.Row) (*domain.WebhookEvent, error) {
	e := &domain.WebhookEvent{}
	if err := scanEventFields(row, e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan webhook event: %w", err)
	}
	return e, nil
}

func scanEventFields(row pgx.Row, e *domain.WebhookEvent) error {
	return row.Scan(
		&e.ID, &e.EventID, &e.EventType, &e.ResourceType, &e.ResourceID, &e.ResourceURI, &e.Topic,
		&e.EventTimestamp, &e.ReceivedAt, &e.Payload, &e.PayloadSize, &e.Signature, &e.SignatureValid, &e.SourceIP,
		&e.IsDuplicate, &e.DuplicateCount, &e.ProcessingState, &e.ProcessingAttempts, &e.LastProcessingError,
		&e.ProcessedAt, &e.ProcessingDurationMs, &e.QuarantinedAt, &e.QuarantineReason,
	)
}
