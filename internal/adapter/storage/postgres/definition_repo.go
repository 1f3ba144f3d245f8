package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"payment-journey-tracker/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DefinitionRepo implements ports.DefinitionRepository.
// Config, thresholds, and tags are stored as jsonb.
type DefinitionRepo struct {
	pool Pool
}

// NewDefinitionRepo creates a new DefinitionRepo.
func NewDefinitionRepo(pool Pool) *DefinitionRepo {
	return &DefinitionRepo{pool: pool}
}

// Upsert inserts or replaces a definition keyed by (name, version).
func (r *DefinitionRepo) Upsert(ctx context.Context, d *domain.JourneyDefinition) error {
	cfg, err := json.Marshal(d.Config)
	if err != nil {
		return fmt.Errorf("marshal journey config: %w", err)
	}
	thresholds, err := json.Marshal(d.Thresholds)
	if err != nil {
		return fmt.Errorf("marshal journey thresholds: %w", err)
	}
	tags, err := json.Marshal(d.Tags)
	if err != nil {
		return fmt.Errorf("marshal journey tags: %w", err)
	}

	query := `INSERT INTO journey_definitions
		(id, name, version, category, active, tags, config, thresholds, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (name, version) DO UPDATE SET
			category = EXCLUDED.category, active = EXCLUDED.active, tags = EXCLUDED.tags,
			config = EXCLUDED.config, thresholds = EXCLUDED.thresholds, updated_at = EXCLUDED.updated_at`

	_, err = r.pool.Exec(ctx, query,
		d.ID, d.Name, d.Version, d.Category, d.Active, tags, cfg, thresholds, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert journey definition: %w", err)
	}
	return nil
}

// GetByID fetches a definition by UUID.
func (r *DefinitionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.JourneyDefinition, error) {
	query := `SELECT id, name, version, category, active, tags, config, thresholds, created_at, updated_at
		FROM journey_definitions WHERE id = $1`

	d, err := scanDefinition(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}

// ListActive returns all active definitions.
func (r *DefinitionRepo) ListActive(ctx context.Context) ([]domain.JourneyDefinition, error) {
	query := `SELECT id, name, version, category, active, tags, config, thresholds, created_at, updated_at
		FROM journey_definitions WHERE active = TRUE ORDER BY name, version`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active definitions: %w", err)
	}
	defer rows.Close()

	var defs []domain.JourneyDefinition
	for rows.Next() {
		d, err := scanDefinition(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate definition rows: %w", err)
	}
	return defs, nil
}

func scanDefinition(row pgx.Row) (*domain.JourneyDefinition, error) {
	d := &domain.JourneyDefinition{}
	var tags, cfg, thresholds []byte
	err := row.Scan(&d.ID, &d.Name, &d.Version, &d.Category, &d.Active,
		&tags, &cfg, &thresholds, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cfg, &d.Config); err != nil {
		return nil, fmt.Errorf("unmarshal journey config: %w", err)
	}
	if err := json.Unmarshal(thresholds, &d.Thresholds); err != nil {
		return nil, fmt.Errorf("unmarshal journey thresholds: %w", err)
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &d.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal journey tags: %w", err)
		}
	}
	return d, nil
}
