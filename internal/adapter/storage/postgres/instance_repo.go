package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"payment-journey-tracker/internal/core/domain"
	"payment-journey-tracker/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InstanceRepo implements ports.InstanceRepository.
type InstanceRepo struct {
	pool Pool
}

// NewInstanceRepo creates a new InstanceRepo.
func NewInstanceRepo(pool Pool) *InstanceRepo {
	return &InstanceRepo{pool: pool}
}

const instanceColumns = `id, definition_id, definition_version, resource_id, resource_type,
	resource_metadata, status, start_time, last_event_time, end_time, current_step_index,
	completed_steps, progress_pct, total_duration_ms, estimated_end, confidence_score,
	risk_score, risk_factors, notes, created_at, updated_at`

// Create inserts a new journey instance.
func (r *InstanceRepo) Create(ctx context.Context, i *domain.JourneyInstance) error {
	meta, steps, factors, err := marshalInstanceJSON(i)
	if err != nil {
		return err
	}

	query := `INSERT INTO journey_instances (` + instanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	_, err = r.pool.Exec(ctx, query,
		i.ID, i.DefinitionID, i.DefinitionVersion, i.ResourceID, i.ResourceType,
		meta, i.Status, i.StartTime, i.LastEventTime, i.EndTime, i.CurrentStepIndex,
		steps, i.ProgressPct, i.TotalDurationMs, i.EstimatedEnd, i.ConfidenceScore,
		i.RiskScore, factors, i.Notes, i.CreatedAt, i.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert journey instance: %w", err)
	}
	return nil
}

// GetByID fetches an instance by UUID.
func (r *InstanceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.JourneyInstance, error) {
	query := `SELECT ` + instanceColumns + ` FROM journey_instances WHERE id = $1`

	i, err := scanInstance(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return i, nil
}

// Update writes all mutable fields of an instance row.
func (r *InstanceRepo) Update(ctx context.Context, i *domain.JourneyInstance) error {
	meta, steps, factors, err := marshalInstanceJSON(i)
	if err != nil {
		return err
	}

	query := `UPDATE journey_instances SET
		resource_metadata = $1, status = $2, last_event_time = $3, end_time = $4,
		current_step_index = $5, completed_steps = $6, progress_pct = $7, total_duration_ms = $8,
		estimated_end = $9, confidence_score = $10, risk_score = $11, risk_factors = $12,
		notes = $13, updated_at = $14
		WHERE id = $15`

	tag, err := r.pool.Exec(ctx, query,
		meta, i.Status, i.LastEventTime, i.EndTime,
		i.CurrentStepIndex, steps, i.ProgressPct, i.TotalDurationMs,
		i.EstimatedEnd, i.ConfidenceScore, i.RiskScore, factors,
		i.Notes, i.UpdatedAt, i.ID,
	)
	if err != nil {
		return fmt.Errorf("update journey instance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("journey instance not found: %s", i.ID)
	}
	return nil
}

// ListOpenByDefinitionAndResource returns active/stuck instances of one
// definition for one resource.
func (r *InstanceRepo) ListOpenByDefinitionAndResource(ctx context.Context, definitionID uuid.UUID, resourceID string) ([]domain.JourneyInstance, error) {
	query := `SELECT ` + instanceColumns + ` FROM journey_instances
		WHERE definition_id = $1 AND resource_id = $2 AND status IN ('active', 'stuck')
		ORDER BY start_time`

	return r.queryInstances(ctx, query, definitionID, resourceID)
}

// ListOpenByResource returns active/stuck instances of any definition for one
// resource.
func (r *InstanceRepo) ListOpenByResource(ctx context.Context, resourceID string) ([]domain.JourneyInstance, error) {
	query := `SELECT ` + instanceColumns + ` FROM journey_instances
		WHERE resource_id = $1 AND status IN ('active', 'stuck')
		ORDER BY start_time`

	return r.queryInstances(ctx, query, resourceID)
}

// List fetches instances with filtering and pagination.
func (r *InstanceRepo) List(ctx context.Context, params ports.InstanceListParams) ([]domain.JourneyInstance, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.DefinitionID != nil {
		conditions = append(conditions, fmt.Sprintf("definition_id = $%d", argIdx))
		args = append(args, *params.DefinitionID)
		argIdx++
	}
	if params.ResourceID != nil {
		conditions = append(conditions, fmt.Sprintf("resource_id = $%d", argIdx))
		args = append(args, *params.ResourceID)
		argIdx++
	}
	if params.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *params.Status)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM journey_instances %s", where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count journey instances: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT `+instanceColumns+` FROM journey_instances %s
		ORDER BY start_time DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	instances, err := r.queryInstances(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	return instances, total, nil
}

// GetStats retrieves aggregate instance counts by status.
func (r *InstanceRepo) GetStats(ctx context.Context) (*ports.InstanceStats, error) {
	query := `SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE status = 'active') AS active,
		COUNT(*) FILTER (WHERE status = 'stuck') AS stuck,
		COUNT(*) FILTER (WHERE status = 'completed') AS completed,
		COUNT(*) FILTER (WHERE status = 'failed') AS failed,
		COUNT(*) FILTER (WHERE status = 'abandoned') AS abandoned
		FROM journey_instances`

	stats := &ports.InstanceStats{}
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.Total, &stats.Active, &stats.Stuck,
		&stats.Completed, &stats.Failed, &stats.Abandoned,
	)
	if err != nil {
		return nil, fmt.Errorf("get instance stats: %w", err)
	}
	return stats, nil
}

func (r *InstanceRepo) queryInstances(ctx context.Context, query string, args ...any) ([]domain.JourneyInstance, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query journey instances: %w", err)
	}
	defer rows.Close()

	var instances []domain.JourneyInstance
	for rows.Next() {
		i, err := scanInstance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan instance row: %w", err)
		}
		instances = append(instances, *i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate instance rows: %w", err)
	}
	return instances, nil
}

func marshalInstanceJSON(i *domain.JourneyInstance) (meta, steps, factors []byte, err error) {
	if meta, err = json.Marshal(i.ResourceMetadata); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal resource metadata: %w", err)
	}
	if steps, err = json.Marshal(i.CompletedSteps); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal completed steps: %w", err)
	}
	if factors, err = json.Marshal(i.RiskFactors); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal risk factors: %w", err)
	}
	return meta, steps, factors, nil
}

func scanInstance(row pgx.Row) (*domain.JourneyInstance, error) {
	i := &domain.JourneyInstance{}
	var meta, steps, factors []byte
	err := row.Scan(
		&i.ID, &i.DefinitionID, &i.DefinitionVersion, &i.ResourceID, &i.ResourceType,
		&meta, &i.Status, &i.StartTime, &i.LastEventTime, &i.EndTime, &i.CurrentStepIndex,
		&steps, &i.ProgressPct, &i.TotalDurationMs, &i.EstimatedEnd, &i.ConfidenceScore,
		&i.RiskScore, &factors, &i.Notes, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &i.ResourceMetadata); err != nil {
			return nil, fmt.Errorf("unmarshal resource metadata: %w", err)
		}
	}
	if len(steps) > 0 {
		if err := json.Unmarshal(steps, &i.CompletedSteps); err != nil {
			return nil, fmt.Errorf("unmarshal completed steps: %w", err)
		}
	}
	if len(factors) > 0 {
		if err := json.Unmarshal(factors, &i.RiskFactors); err != nil {
			return nil, fmt.Errorf("unmarshal risk factors: %w", err)
		}
	}
	return i, nil
}
