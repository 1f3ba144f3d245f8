package dto

import (
	"time"

	"payment-journey-tracker/internal/core/domain"
)

// JourneyInstanceResponse is the API view of one journey instance.
type JourneyInstanceResponse struct {
	ID                string            `json:"id"`
	DefinitionID      string            `json:"definition_id"`
	DefinitionVersion int               `json:"definition_version"`
	ResourceID        string            `json:"resource_id"`
	ResourceType      string            `json:"resource_type"`
	ResourceMetadata  map[string]string `json:"resource_metadata,omitempty"`
	Status            string            `json:"status"`
	StartTime         time.Time         `json:"start_time"`
	LastEventTime     time.Time         `json:"last_event_time"`
	EndTime           *time.Time        `json:"end_time,omitempty"`
	CurrentStepIndex  int               `json:"current_step_index"`
	CompletedSteps    []string          `json:"completed_steps"`
	ProgressPct       float64           `json:"progress_percentage"`
	TotalDurationMs   *int64            `json:"total_duration_ms,omitempty"`
	EstimatedEnd      *time.Time        `json:"estimated_completion_time,omitempty"`
	ConfidenceScore   int               `json:"confidence_score"`
	RiskScore         int               `json:"risk_score"`
	RiskFactors       []string          `json:"risk_factors,omitempty"`
	Notes             *string           `json:"notes,omitempty"`
}

// FromInstance maps a domain instance to its API view.
func FromInstance(inst *domain.JourneyInstance) JourneyInstanceResponse {
	return JourneyInstanceResponse{
		ID:                inst.ID.String(),
		DefinitionID:      inst.DefinitionID.String(),
		DefinitionVersion: inst.DefinitionVersion,
		ResourceID:        inst.ResourceID,
		ResourceType:      string(inst.ResourceType),
		ResourceMetadata:  inst.ResourceMetadata,
		Status:            string(inst.Status),
		StartTime:         inst.StartTime,
		LastEventTime:     inst.LastEventTime,
		EndTime:           inst.EndTime,
		CurrentStepIndex:  inst.CurrentStepIndex,
		CompletedSteps:    inst.CompletedSteps,
		ProgressPct:       inst.ProgressPct,
		TotalDurationMs:   inst.TotalDurationMs,
		EstimatedEnd:      inst.EstimatedEnd,
		ConfidenceScore:   inst.ConfidenceScore,
		RiskScore:         inst.RiskScore,
		RiskFactors:       inst.RiskFactors,
		Notes:             inst.Notes,
	}
}

// JourneyStepResponse is the API view of one recorded step.
type JourneyStepResponse struct {
	ID                string            `json:"id"`
	Sequence          int               `json:"sequence"`
	StepName          string            `json:"step_name"`
	EventID           string            `json:"event_id"`
	EventType         string            `json:"event_type"`
	Timestamp         time.Time         `json:"timestamp"`
	DurationFromStart int64             `json:"duration_from_start_ms"`
	DurationFromPrev  int64             `json:"duration_from_previous_ms"`
	Expected          bool              `json:"expected"`
	OnTime            bool              `json:"on_time"`
	EventMetadata     map[string]string `json:"event_metadata,omitempty"`
}

// FromStep maps a domain step to its API view.
func FromStep(step *domain.JourneyStep) JourneyStepResponse {
	return JourneyStepResponse{
		ID:                step.ID.String(),
		Sequence:          step.Sequence,
		StepName:          step.StepName,
		EventID:           step.EventID,
		EventType:         step.EventType,
		Timestamp:         step.Timestamp,
		DurationFromStart: step.DurationFromStart,
		DurationFromPrev:  step.DurationFromPrev,
		Expected:          step.Expected,
		OnTime:            step.OnTime,
		EventMetadata:     step.EventMetadata,
	}
}

// JourneyListResponse is a paginated instance listing.
type JourneyListResponse struct {
	Items      []JourneyInstanceResponse `json:"items"`
	Total      int64                     `json:"total"`
	Page       int                       `json:"page"`
	PageSize   int                       `json:"page_size"`
	TotalPages int                       `json:"total_pages"`
}

// JourneyStepsResponse carries the ordered step history of one instance.
type JourneyStepsResponse struct {
	InstanceID string                `json:"instance_id"`
	Steps      []JourneyStepResponse `json:"steps"`
}

// JourneyStatsResponse carries aggregate instance counts.
type JourneyStatsResponse struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Stuck     int64 `json:"stuck"`
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
	Abandoned int64 `json:"abandoned"`
}
