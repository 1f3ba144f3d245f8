package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"payment-journey-tracker/internal/core/domain"
	"payment-journey-tracker/internal/core/ports"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInstance() *domain.JourneyInstance {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.JourneyInstance{
		ID:                uuid.New(),
		DefinitionID:      uuid.New(),
		DefinitionVersion: 1,
		ResourceID:        "transfer-1",
		ResourceType:      domain.ResourceTypeTransfer,
		ResourceMetadata:  map[string]string{"resource_uri": "https://api.example.com/transfers/transfer-1"},
		Status:            domain.InstanceStatusActive,
		StartTime:         now.Add(-10 * time.Minute),
		LastEventTime:     now.Add(-5 * time.Minute),
		CurrentStepIndex:  1,
		CompletedSteps:    []string{"Transfer Pending"},
		ProgressPct:       50,
		ConfidenceScore:   50,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func instanceColumnNames() []string {
	return []string{
		"id", "definition_id", "definition_version", "resource_id", "resource_type",
		"resource_metadata", "status", "start_time", "last_event_time", "end_time", "current_step_index",
		"completed_steps", "progress_pct", "total_duration_ms", "estimated_end", "confidence_score",
		"risk_score", "risk_factors", "notes", "created_at", "updated_at",
	}
}

func instanceRow(t *testing.T, i *domain.JourneyInstance) *pgxmock.Rows {
	t.Helper()
	meta, err := json.Marshal(i.ResourceMetadata)
	require.NoError(t, err)
	steps, err := json.Marshal(i.CompletedSteps)
	require.NoError(t, err)
	factors, err := json.Marshal(i.RiskFactors)
	require.NoError(t, err)

	return pgxmock.NewRows(instanceColumnNames()).AddRow(
		i.ID, i.DefinitionID, i.DefinitionVersion, i.ResourceID, i.ResourceType,
		meta, i.Status, i.StartTime, i.LastEventTime, i.EndTime, i.CurrentStepIndex,
		steps, i.ProgressPct, i.TotalDurationMs, i.EstimatedEnd, i.ConfidenceScore,
		i.RiskScore, factors, i.Notes, i.CreatedAt, i.UpdatedAt,
	)
}

func TestInstanceRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInstanceRepo(mock)
	i := newTestInstance()

	mock.ExpectExec("INSERT INTO journey_instances").
		WithArgs(i.ID, i.DefinitionID, i.DefinitionVersion, i.ResourceID, i.ResourceType,
			pgxmock.AnyArg(), i.Status, i.StartTime, i.LastEventTime, i.EndTime, i.CurrentStepIndex,
			pgxmock.AnyArg(), i.ProgressPct, i.TotalDurationMs, i.EstimatedEnd, i.ConfidenceScore,
			i.RiskScore, pgxmock.AnyArg(), i.Notes, i.CreatedAt, i.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), i)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstanceRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInstanceRepo(mock)
	i := newTestInstance()

	mock.ExpectQuery("SELECT .+ FROM journey_instances WHERE id").
		WithArgs(i.ID).
		WillReturnRows(instanceRow(t, i))

	result, err := repo.GetByID(context.Background(), i.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, i.ID, result.ID)
	assert.Equal(t, i.ResourceMetadata, result.ResourceMetadata)
	assert.Equal(t, i.CompletedSteps, result.CompletedSteps)
	assert.Equal(t, i.Status, result.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstanceRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInstanceRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM journey_instances WHERE id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(instanceColumnNames()))

	result, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstanceRepo_Update(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInstanceRepo(mock)
	i := newTestInstance()
	i.Status = domain.InstanceStatusStuck
	i.RiskScore = 75
	i.RiskFactors = []string{"no qualifying event for 60 minutes"}

	mock.ExpectExec("UPDATE journey_instances SET").
		WithArgs(pgxmock.AnyArg(), i.Status, i.LastEventTime, i.EndTime,
			i.CurrentStepIndex, pgxmock.AnyArg(), i.ProgressPct, i.TotalDurationMs,
			i.EstimatedEnd, i.ConfidenceScore, i.RiskScore, pgxmock.AnyArg(),
			i.Notes, i.UpdatedAt, i.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.Update(context.Background(), i)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstanceRepo_Update_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInstanceRepo(mock)
	i := newTestInstance()

	mock.ExpectExec("UPDATE journey_instances SET").
		WithArgs(pgxmock.AnyArg(), i.Status, i.LastEventTime, i.EndTime,
			i.CurrentStepIndex, pgxmock.AnyArg(), i.ProgressPct, i.TotalDurationMs,
			i.EstimatedEnd, i.ConfidenceScore, i.RiskScore, pgxmock.AnyArg(),
			i.Notes, i.UpdatedAt, i.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.Update(context.Background(), i)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstanceRepo_ListOpenByResource(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInstanceRepo(mock)
	i := newTestInstance()

	mock.ExpectQuery("SELECT .+ FROM journey_instances").
		WithArgs(i.ResourceID).
		WillReturnRows(instanceRow(t, i))

	result, err := repo.ListOpenByResource(context.Background(), i.ResourceID)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, i.ID, result[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstanceRepo_List_FiltersAndPaginates(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInstanceRepo(mock)
	i := newTestInstance()
	status := domain.InstanceStatusActive

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(status).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))
	mock.ExpectQuery("SELECT .+ FROM journey_instances").
		WithArgs(status, 20, 0).
		WillReturnRows(instanceRow(t, i))

	result, total, err := repo.List(context.Background(), ports.InstanceListParams{
		Status:   &status,
		Page:     1,
		PageSize: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	require.Len(t, result, 1)
	assert.Equal(t, i.ID, result[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstanceRepo_GetStats(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInstanceRepo(mock)

	mock.ExpectQuery("SELECT").
		WillReturnRows(pgxmock.NewRows([]string{"total", "active", "stuck", "completed", "failed", "abandoned"}).
			AddRow(int64(10), int64(4), int64(1), int64(3), int64(1), int64(1)))

	stats, err := repo.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.Total)
	assert.Equal(t, int64(4), stats.Active)
	assert.Equal(t, int64(1), stats.Stuck)
	assert.NoError(t, mock.ExpectationsWereMet())
}
