package domain

import (
	"time"

	"github.com/google/uuid"
)

// InstanceStatus is the lifecycle state of a journey instance.
// Transitions are one-directional: active -> {completed, failed, abandoned},
// or active -> stuck -> {active, completed, failed, abandoned}.
// No transition leaves a terminal state.
type InstanceStatus string

const (
	InstanceStatusActive    InstanceStatus = "active"
	InstanceStatusStuck     InstanceStatus = "stuck"
	InstanceStatusCompleted InstanceStatus = "completed"
	InstanceStatusFailed    InstanceStatus = "failed"
	InstanceStatusAbandoned InstanceStatus = "abandoned"
)

// JourneyInstance is one run of a journey definition against one resource.
// DefinitionVersion pins the version captured at creation so in-flight
// instances are unaffected by later definition edits.
type JourneyInstance struct {
	ID                uuid.UUID         `json:"id"`
	DefinitionID      uuid.UUID         `json:"definition_id"`
	DefinitionVersion int               `json:"definition_version"`
	ResourceID        string            `json:"resource_id"`
	ResourceType      ResourceType      `json:"resource_type"`
	ResourceMetadata  map[string]string `json:"resource_metadata,omitempty"`
	Status            InstanceStatus    `json:"status"`
	StartTime         time.Time         `json:"start_time"`
	LastEventTime     time.Time         `json:"last_event_time"`
	EndTime           *time.Time        `json:"end_time,omitempty"`
	CurrentStepIndex  int               `json:"current_step_index"`
	CompletedSteps    []string          `json:"completed_steps"`
	ProgressPct       float64           `json:"progress_percentage"`
	TotalDurationMs   *int64            `json:"total_duration_ms,omitempty"`
	EstimatedEnd      *time.Time        `json:"estimated_completion_time,omitempty"`
	ConfidenceScore   int               `json:"confidence_score"` // 0-100
	RiskScore         int               `json:"risk_score"`       // 0-100
	RiskFactors       []string          `json:"risk_factors,omitempty"`
	Notes             *string           `json:"notes,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// IsTerminal returns true once the instance can no longer change state.
func (i *JourneyInstance) IsTerminal() bool {
	return i.Status == InstanceStatusCompleted ||
		i.Status == InstanceStatusFailed ||
		i.Status == InstanceStatusAbandoned
}

// IsOpen returns true for instances that still accept events.
func (i *JourneyInstance) IsOpen() bool {
	return i.Status == InstanceStatusActive || i.Status == InstanceStatusStuck
}

// StartedStepName is the synthetic name recorded for the creation step.
const StartedStepName = "Journey Started"

// OutOfOrderSequence is the sentinel sequence for steps recorded out of band:
// the event arrived with a timestamp before the instance's last event, so it
// is logged for audit without advancing the instance timeline.
const OutOfOrderSequence = -1

// JourneyStep is an append-only log entry of one event applied to one
// instance. Steps are immutable once written.
type JourneyStep struct {
	ID                 uuid.UUID         `json:"id"`
	InstanceID         uuid.UUID         `json:"instance_id"`
	Sequence           int               `json:"sequence"`
	StepName           string            `json:"step_name"`
	EventID            string            `json:"event_id"`
	EventType          string            `json:"event_type"`
	Timestamp          time.Time         `json:"timestamp"`
	DurationFromStart  int64             `json:"duration_from_start_ms"`
	DurationFromPrev   int64             `json:"duration_from_previous_ms"`
	Expected           bool              `json:"expected"`
	OnTime             bool              `json:"on_time"`
	EventMetadata      map[string]string `json:"event_metadata,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
}

// ConflictSeverity classifies repeated-event conflicts on an instance.
// Only high-severity conflicts cause the event to be rejected for the
// instance; lower severities are accepted and logged.
type ConflictSeverity string

const (
	ConflictSeverityLow    ConflictSeverity = "low"
	ConflictSeverityMedium ConflictSeverity = "medium"
	ConflictSeverityHigh   ConflictSeverity = "high"
)
