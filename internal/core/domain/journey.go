package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ConflictResolution governs what happens when a start event arrives while
// instances are already active for the same (definition, resource) pair.
type ConflictResolution string

const (
	// ConflictNewest abandons existing active instances before starting a new one.
	ConflictNewest ConflictResolution = "newest"
	// ConflictOldest keeps the existing instance and skips the new start.
	ConflictOldest ConflictResolution = "oldest"
	// ConflictParallel allows up to MaxActivePerResource concurrent instances.
	ConflictParallel ConflictResolution = "parallel"
)

// EventMatcher matches an event against a journey trigger.
// ResourceType is optional ("" matches any); Conditions are field-level
// equality checks against the event payload.
type EventMatcher struct {
	EventType    string         `json:"event_type" yaml:"event_type"`
	ResourceType ResourceType   `json:"resource_type,omitempty" yaml:"resource_type,omitempty"`
	Conditions   map[string]any `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}

// Matches reports whether the matcher applies to the event.
// payload carries the decoded envelope body for condition evaluation.
func (m EventMatcher) Matches(ev *WebhookEvent, payload map[string]any) bool {
	if m.EventType != ev.EventType {
		return false
	}
	if m.ResourceType != "" && m.ResourceType != ev.ResourceType {
		return false
	}
	for field, want := range m.Conditions {
		got, ok := payload[field]
		if !ok || fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

// ExpectedStep is a named, optionally time-bounded point in a journey.
// Min/MaxMinutes bound elapsed time from journey start; a nil bound is
// always satisfied in that direction.
type ExpectedStep struct {
	Name       string `json:"name" yaml:"name"`
	EventType  string `json:"event_type" yaml:"event_type"`
	Required   bool   `json:"required" yaml:"required"`
	MinMinutes *int   `json:"min_minutes,omitempty" yaml:"min_minutes,omitempty"`
	MaxMinutes *int   `json:"max_minutes,omitempty" yaml:"max_minutes,omitempty"`
	Retryable  bool   `json:"retryable" yaml:"retryable"`
}

// OnTime evaluates the step's timing window against elapsed time from start.
func (s ExpectedStep) OnTime(elapsed time.Duration) bool {
	minutes := elapsed.Minutes()
	if s.MinMinutes != nil && minutes < float64(*s.MinMinutes) {
		return false
	}
	if s.MaxMinutes != nil && minutes > float64(*s.MaxMinutes) {
		return false
	}
	return true
}

// JourneyConfig is the data-driven state machine description for a journey.
type JourneyConfig struct {
	StartEvents          []EventMatcher     `json:"start_events" yaml:"start_events"`
	EndEvents            []EventMatcher     `json:"end_events" yaml:"end_events"`
	FailureEvents        []EventMatcher     `json:"failure_events,omitempty" yaml:"failure_events,omitempty"`
	ExpectedSteps        []ExpectedStep     `json:"expected_steps,omitempty" yaml:"expected_steps,omitempty"`
	TimeoutMinutes       *int               `json:"timeout_minutes,omitempty" yaml:"timeout_minutes,omitempty"`
	AllowMultipleActive  bool               `json:"allow_multiple_active" yaml:"allow_multiple_active"` // declarative; Validate requires agreement with ConflictResolution
	MaxActivePerResource int                `json:"max_active_per_resource" yaml:"max_active_per_resource"`
	ConflictResolution   ConflictResolution `json:"conflict_resolution" yaml:"conflict_resolution"`
}

// ReferencesEventType reports whether the config mentions the event type as
// a start, end, failure, or expected-step matcher.
func (c *JourneyConfig) ReferencesEventType(eventType string) bool {
	for _, m := range c.StartEvents {
		if m.EventType == eventType {
			return true
		}
	}
	for _, m := range c.EndEvents {
		if m.EventType == eventType {
			return true
		}
	}
	for _, m := range c.FailureEvents {
		if m.EventType == eventType {
			return true
		}
	}
	for _, s := range c.ExpectedSteps {
		if s.EventType == eventType {
			return true
		}
	}
	return false
}

// EventTypes lists every event type the config declares, in declaration
// order, duplicates included.
func (c *JourneyConfig) EventTypes() []string {
	types := make([]string, 0, len(c.StartEvents)+len(c.EndEvents)+len(c.FailureEvents)+len(c.ExpectedSteps))
	for _, m := range c.StartEvents {
		types = append(types, m.EventType)
	}
	for _, m := range c.EndEvents {
		types = append(types, m.EventType)
	}
	for _, m := range c.FailureEvents {
		types = append(types, m.EventType)
	}
	for _, s := range c.ExpectedSteps {
		types = append(types, s.EventType)
	}
	return types
}

// FindExpectedStep returns the first expected step matching the event type,
// or nil if none is declared for it.
func (c *JourneyConfig) FindExpectedStep(eventType string) *ExpectedStep {
	for i := range c.ExpectedSteps {
		if c.ExpectedSteps[i].EventType == eventType {
			return &c.ExpectedSteps[i]
		}
	}
	return nil
}

// Validate checks structural soundness of a journey config at load time
// rather than interpreting malformed definitions ad hoc at match time.
func (c *JourneyConfig) Validate() error {
	if len(c.StartEvents) == 0 {
		return fmt.Errorf("at least one start event is required")
	}
	if len(c.EndEvents) == 0 {
		return fmt.Errorf("at least one end event is required")
	}
	switch c.ConflictResolution {
	case ConflictNewest, ConflictOldest, ConflictParallel:
	case "":
		return fmt.Errorf("conflict_resolution is required")
	default:
		return fmt.Errorf("unknown conflict_resolution %q", c.ConflictResolution)
	}
	if c.ConflictResolution == ConflictParallel && c.MaxActivePerResource <= 0 {
		return fmt.Errorf("parallel conflict resolution requires max_active_per_resource > 0")
	}
	if c.AllowMultipleActive && c.ConflictResolution != ConflictParallel {
		return fmt.Errorf("allow_multiple_active requires parallel conflict resolution")
	}
	seen := make(map[string]bool, len(c.ExpectedSteps))
	for _, s := range c.ExpectedSteps {
		if s.Name == "" || s.EventType == "" {
			return fmt.Errorf("expected steps need both name and event_type")
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate expected step %q", s.Name)
		}
		seen[s.Name] = true
		if s.MinMinutes != nil && s.MaxMinutes != nil && *s.MinMinutes > *s.MaxMinutes {
			return fmt.Errorf("step %q: min_minutes exceeds max_minutes", s.Name)
		}
	}
	return nil
}

// JourneyThresholds are SLA targets evaluated by dashboards.
type JourneyThresholds struct {
	TargetMinutes        *int     `json:"target_minutes,omitempty" yaml:"target_minutes,omitempty"`
	WarningMinutes       *int     `json:"warning_minutes,omitempty" yaml:"warning_minutes,omitempty"`
	CriticalMinutes      *int     `json:"critical_minutes,omitempty" yaml:"critical_minutes,omitempty"`
	TargetCompletionRate *float64 `json:"target_completion_rate,omitempty" yaml:"target_completion_rate,omitempty"`
	MaxFailureRate       *float64 `json:"max_failure_rate,omitempty" yaml:"max_failure_rate,omitempty"`
}

// JourneyDefinition is versioned, immutable-once-published configuration.
// Version is monotonic per name; normally one version is active per name.
type JourneyDefinition struct {
	ID         uuid.UUID         `json:"id"`
	Name       string            `json:"name"`
	Version    int               `json:"version"`
	Category   string            `json:"category,omitempty"`
	Active     bool              `json:"active"`
	Tags       []string          `json:"tags,omitempty"`
	Config     JourneyConfig     `json:"config"`
	Thresholds JourneyThresholds `json:"thresholds"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
