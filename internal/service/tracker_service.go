package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"payment-journey-tracker/internal/core/domain"
	"payment-journey-tracker/internal/core/ports"
	"payment-journey-tracker/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// abandonmentCutoff force-terminates instances with no event at all for
	// this long, regardless of definition.
	abandonmentCutoff = 7 * 24 * time.Hour
	// defaultStuckThresholdMinutes applies when a definition declares no
	// timeout.
	defaultStuckThresholdMinutes = 1440
	// defaultStepMaxMinutes substitutes for unbounded steps in completion
	// prediction.
	defaultStepMaxMinutes = 60
	// stuckRiskScore is assigned when inactivity flags an instance.
	stuckRiskScore = 75
)

// TrackerService implements ports.JourneyTracker: it matches processed
// events against active journey definitions and drives per-resource state
// machine instances.
type TrackerService struct {
	defRepo  ports.DefinitionRepository
	instRepo ports.InstanceRepository
	stepRepo ports.StepRepository
	locks    *keyedMutex
	clock    ports.Clock
	log      zerolog.Logger
}

// NewTrackerService creates a journey tracker.
func NewTrackerService(
	defRepo ports.DefinitionRepository,
	instRepo ports.InstanceRepository,
	stepRepo ports.StepRepository,
	clock ports.Clock,
	log zerolog.Logger,
) *TrackerService {
	return &TrackerService{
		defRepo:  defRepo,
		instRepo: instRepo,
		stepRepo: stepRepo,
		locks:    newKeyedMutex(),
		clock:    clock,
		log:      log,
	}
}

// ProcessEvent runs the tracking flow for one processed event: applicable
// definitions are handled independently (one definition's failure never
// blocks another), then a resource-scoped inactivity sweep runs across all
// definitions.
func (s *TrackerService) ProcessEvent(ctx context.Context, event *domain.WebhookEvent, pctx *domain.ProcessingContext) error {
	if event.ResourceID == nil || *event.ResourceID == "" {
		s.log.Debug().Str("event_type", event.EventType).Msg("tracker: event has no resource, nothing to track")
		return nil
	}
	resourceID := *event.ResourceID

	defs, err := s.defRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("load definitions: %w", err)
	}
	payload := pctx.PayloadFields()

	// Concurrent events for the same resource serialize here so two
	// read-then-write instance updates cannot clobber each other.
	unlock := s.locks.Lock(resourceID)
	defer unlock()

	var errs []error
	defsByID := make(map[uuid.UUID]*domain.JourneyDefinition, len(defs))
	for i := range defs {
		def := &defs[i]
		defsByID[def.ID] = def
		if !def.Config.ReferencesEventType(event.EventType) {
			continue
		}
		if err := s.processDefinition(ctx, def, event, payload, resourceID); err != nil {
			s.log.Error().Err(err).
				Str("definition", def.Name).
				Str("event_id", event.EventID).
				Msg("tracker: definition processing failed, continuing with others")
			errs = append(errs, fmt.Errorf("definition %s: %w", def.Name, err))
		}
	}

	if err := s.sweepResource(ctx, resourceID, defsByID); err != nil {
		errs = append(errs, fmt.Errorf("sweep %s: %w", resourceID, err))
	}

	return errors.Join(errs...)
}

// processDefinition handles start-event matching plus updates of all open
// instances of one definition for the event's resource.
func (s *TrackerService) processDefinition(ctx context.Context, def *domain.JourneyDefinition, event *domain.WebhookEvent, payload map[string]any, resourceID string) error {
	if matchAny(def.Config.StartEvents, event, payload) {
		if err := s.handleStart(ctx, def, event, payload, resourceID); err != nil {
			return err
		}
	}

	instances, err := s.instRepo.ListOpenByDefinitionAndResource(ctx, def.ID, resourceID)
	if err != nil {
		return fmt.Errorf("load open instances: %w", err)
	}
	for i := range instances {
		if err := s.updateInstance(ctx, def, &instances[i], event, payload); err != nil {
			return err
		}
	}
	return nil
}

// handleStart evaluates conflict resolution and creates a new instance when
// permitted.
func (s *TrackerService) handleStart(ctx context.Context, def *domain.JourneyDefinition, event *domain.WebhookEvent, payload map[string]any, resourceID string) error {
	existing, err := s.instRepo.ListOpenByDefinitionAndResource(ctx, def.ID, resourceID)
	if err != nil {
		return fmt.Errorf("load existing instances: %w", err)
	}

	switch def.Config.ConflictResolution {
	case domain.ConflictOldest:
		if len(existing) > 0 {
			s.log.Info().
				Str("definition", def.Name).
				Str("resource_id", resourceID).
				Msg("tracker: start skipped, an instance is already active (oldest wins)")
			return nil
		}
	case domain.ConflictNewest:
		for i := range existing {
			if err := s.abandonInstance(ctx, def, &existing[i], "superseded by a newer journey start"); err != nil {
				return err
			}
		}
	case domain.ConflictParallel:
		if len(existing) >= def.Config.MaxActivePerResource {
			metrics.JourneyConflicts.WithLabelValues(string(domain.ConflictSeverityMedium)).Inc()
			s.log.Warn().
				Str("definition", def.Name).
				Str("resource_id", resourceID).
				Int("active", len(existing)).
				Int("cap", def.Config.MaxActivePerResource).
				Msg("tracker: start rejected, per-resource cap reached")
			return nil
		}
	}

	now := s.clock.Now()
	inst := &domain.JourneyInstance{
		ID:                uuid.New(),
		DefinitionID:      def.ID,
		DefinitionVersion: def.Version,
		ResourceID:        resourceID,
		ResourceType:      event.ResourceType,
		ResourceMetadata: map[string]string{
			"resource_uri": event.ResourceURI,
			"start_topic":  event.Topic,
		},
		Status:           domain.InstanceStatusActive,
		StartTime:        event.EventTimestamp,
		LastEventTime:    event.EventTimestamp,
		CurrentStepIndex: 0,
		CompletedSteps:   []string{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	s.refreshPrediction(def, inst)

	if err := s.instRepo.Create(ctx, inst); err != nil {
		return fmt.Errorf("create instance: %w", err)
	}

	step := &domain.JourneyStep{
		ID:         uuid.New(),
		InstanceID: inst.ID,
		Sequence:   0,
		StepName:   domain.StartedStepName,
		EventID:    event.EventID,
		EventType:  event.EventType,
		Timestamp:  event.EventTimestamp,
		Expected:   true,
		OnTime:     true,
		CreatedAt:  now,
	}
	if err := s.stepRepo.Create(ctx, step); err != nil {
		return fmt.Errorf("record start step: %w", err)
	}

	metrics.JourneysStarted.WithLabelValues(def.Name).Inc()
	s.log.Info().
		Str("definition", def.Name).
		Str("resource_id", resourceID).
		Str("instance_id", inst.ID.String()).
		Msg("tracker: journey started")
	return nil
}

// updateInstance applies one event to one open instance: out-of-order and
// conflict handling, timing evaluation, step recording, state transition,
// prediction refresh, and stuck detection.
func (s *TrackerService) updateInstance(ctx context.Context, def *domain.JourneyDefinition, inst *domain.JourneyInstance, event *domain.WebhookEvent, payload map[string]any) error {
	// Idempotent application: a (instance, event) pair records at most one
	// step, so the same delivery never advances an instance twice.
	exists, err := s.stepRepo.ExistsForEvent(ctx, inst.ID, event.EventID)
	if err != nil {
		return fmt.Errorf("check step exists: %w", err)
	}
	if exists {
		return nil
	}

	now := s.clock.Now()

	// Out-of-order arrivals are logged for audit without advancing the
	// authoritative timeline.
	if event.EventTimestamp.Before(inst.LastEventTime) {
		metrics.OutOfOrderEvents.Inc()
		step := s.buildStep(def, inst, event, domain.OutOfOrderSequence, now)
		step.EventMetadata = map[string]string{"outOfOrder": "true"}
		if err := s.stepRepo.Create(ctx, step); err != nil {
			return fmt.Errorf("record out-of-order step: %w", err)
		}
		s.log.Warn().
			Str("instance_id", inst.ID.String()).
			Str("event_id", event.EventID).
			Time("event_time", event.EventTimestamp).
			Time("last_event_time", inst.LastEventTime).
			Msg("tracker: out-of-order event recorded without state change")
		return nil
	}

	// Conflict detection: a repeated event type on the same instance is a
	// conflict unless the matching expected step is explicitly retryable.
	severity, conflicted, err := s.detectConflict(ctx, def, inst, event)
	if err != nil {
		return err
	}
	if conflicted {
		metrics.JourneyConflicts.WithLabelValues(string(severity)).Inc()
		if severity == domain.ConflictSeverityHigh {
			step := s.buildStep(def, inst, event, domain.OutOfOrderSequence, now)
			step.EventMetadata = map[string]string{"conflict": "true", "severity": string(severity)}
			if err := s.stepRepo.Create(ctx, step); err != nil {
				return fmt.Errorf("record conflict step: %w", err)
			}
			s.log.Warn().
				Str("instance_id", inst.ID.String()).
				Str("event_type", event.EventType).
				Msg("tracker: high-severity conflict, event rejected for instance")
			return nil
		}
		s.log.Info().
			Str("instance_id", inst.ID.String()).
			Str("event_type", event.EventType).
			Str("severity", string(severity)).
			Msg("tracker: conflict accepted")
	}

	step := s.buildStep(def, inst, event, inst.CurrentStepIndex+1, now)
	if err := s.stepRepo.Create(ctx, step); err != nil {
		return fmt.Errorf("record step: %w", err)
	}

	inst.CurrentStepIndex++
	inst.LastEventTime = event.EventTimestamp
	if step.Expected && !contains(inst.CompletedSteps, step.StepName) {
		inst.CompletedSteps = append(inst.CompletedSteps, step.StepName)
	}

	switch {
	case matchAny(def.Config.EndEvents, event, payload):
		s.finishInstance(def, inst, event, domain.InstanceStatusCompleted)
		inst.ProgressPct = 100
	case matchAny(def.Config.FailureEvents, event, payload):
		s.finishInstance(def, inst, event, domain.InstanceStatusFailed)
	default:
		if total := len(def.Config.ExpectedSteps); total > 0 {
			inst.ProgressPct = float64(len(inst.CompletedSteps)) / float64(total) * 100
		}
		// A successful in-order update on a stuck instance revives it.
		if inst.Status == domain.InstanceStatusStuck {
			inst.Status = domain.InstanceStatusActive
		}
	}

	if inst.Status == domain.InstanceStatusActive {
		s.refreshPrediction(def, inst)
	}
	s.detectStuck(def, inst, now)

	inst.UpdatedAt = now
	if err := s.instRepo.Update(ctx, inst); err != nil {
		return fmt.Errorf("update instance: %w", err)
	}
	return nil
}

// buildStep assembles a step record with timing evaluation against the
// definition's expected steps.
func (s *TrackerService) buildStep(def *domain.JourneyDefinition, inst *domain.JourneyInstance, event *domain.WebhookEvent, sequence int, now time.Time) *domain.JourneyStep {
	fromStart := event.EventTimestamp.Sub(inst.StartTime)
	fromPrev := event.EventTimestamp.Sub(inst.LastEventTime)

	stepName := event.EventType
	expected := false
	onTime := true
	if es := def.Config.FindExpectedStep(event.EventType); es != nil {
		stepName = es.Name
		expected = true
		onTime = es.OnTime(fromStart)
	}

	return &domain.JourneyStep{
		ID:                uuid.New(),
		InstanceID:        inst.ID,
		Sequence:          sequence,
		StepName:          stepName,
		EventID:           event.EventID,
		EventType:         event.EventType,
		Timestamp:         event.EventTimestamp,
		DurationFromStart: fromStart.Milliseconds(),
		DurationFromPrev:  fromPrev.Milliseconds(),
		Expected:          expected,
		OnTime:            onTime,
		CreatedAt:         now,
	}
}

// detectConflict classifies a repeated event type on an instance.
// Severity: repeating a start event is high (it implies restart semantics),
// repeating a required expected step is medium, anything else low.
// Explicitly retryable expected steps are exempt.
func (s *TrackerService) detectConflict(ctx context.Context, def *domain.JourneyDefinition, inst *domain.JourneyInstance, event *domain.WebhookEvent) (domain.ConflictSeverity, bool, error) {
	if es := def.Config.FindExpectedStep(event.EventType); es != nil && es.Retryable {
		return "", false, nil
	}

	steps, err := s.stepRepo.ListByInstance(ctx, inst.ID)
	if err != nil {
		return "", false, fmt.Errorf("load steps: %w", err)
	}
	repeated := false
	for _, st := range steps {
		if st.EventType == event.EventType {
			repeated = true
			break
		}
	}
	if !repeated {
		return "", false, nil
	}

	for _, m := range def.Config.StartEvents {
		if m.EventType == event.EventType {
			return domain.ConflictSeverityHigh, true, nil
		}
	}
	if es := def.Config.FindExpectedStep(event.EventType); es != nil && es.Required {
		return domain.ConflictSeverityMedium, true, nil
	}
	return domain.ConflictSeverityLow, true, nil
}

// finishInstance stamps terminal fields for completion or failure.
func (s *TrackerService) finishInstance(def *domain.JourneyDefinition, inst *domain.JourneyInstance, event *domain.WebhookEvent, status domain.InstanceStatus) {
	end := event.EventTimestamp
	total := end.Sub(inst.StartTime).Milliseconds()
	inst.Status = status
	inst.EndTime = &end
	inst.TotalDurationMs = &total
	inst.EstimatedEnd = nil

	metrics.JourneysFinished.WithLabelValues(def.Name, string(status)).Inc()
	s.log.Info().
		Str("definition", def.Name).
		Str("instance_id", inst.ID.String()).
		Str("status", string(status)).
		Int64("total_duration_ms", total).
		Msg("tracker: journey finished")
}

// refreshPrediction recomputes the completion estimate for an active
// instance with declared steps remaining. Estimate: sum of each remaining
// step's max window (default 60 minutes when unbounded); confidence:
// max(50, round(progress * 0.8)).
func (s *TrackerService) refreshPrediction(def *domain.JourneyDefinition, inst *domain.JourneyInstance) {
	remaining := 0
	remainingMinutes := 0
	for _, es := range def.Config.ExpectedSteps {
		if contains(inst.CompletedSteps, es.Name) {
			continue
		}
		remaining++
		if es.MaxMinutes != nil {
			remainingMinutes += *es.MaxMinutes
		} else {
			remainingMinutes += defaultStepMaxMinutes
		}
	}
	if remaining == 0 {
		return
	}

	eta := s.clock.Now().Add(time.Duration(remainingMinutes) * time.Minute)
	inst.EstimatedEnd = &eta
	confidence := int(math.Round(inst.ProgressPct * 0.8))
	if confidence < 50 {
		confidence = 50
	}
	inst.ConfidenceScore = confidence
}

// detectStuck flags an active instance whose inactivity exceeds the
// definition's threshold (half the declared timeout, or 24h by default).
func (s *TrackerService) detectStuck(def *domain.JourneyDefinition, inst *domain.JourneyInstance, now time.Time) {
	if inst.Status != domain.InstanceStatusActive {
		return
	}

	thresholdMinutes := float64(defaultStuckThresholdMinutes)
	if def != nil && def.Config.TimeoutMinutes != nil {
		thresholdMinutes = float64(*def.Config.TimeoutMinutes) * 0.5
	}

	inactive := now.Sub(inst.LastEventTime)
	if inactive.Minutes() <= thresholdMinutes {
		return
	}

	inst.Status = domain.InstanceStatusStuck
	inst.RiskScore = stuckRiskScore
	inst.RiskFactors = append(inst.RiskFactors,
		fmt.Sprintf("no qualifying event for %d minutes", int(inactive.Minutes())))
	metrics.JourneysStuck.Inc()
	s.log.Warn().
		Str("instance_id", inst.ID.String()).
		Str("resource_id", inst.ResourceID).
		Int("inactive_minutes", int(inactive.Minutes())).
		Msg("tracker: instance stuck")
}

// sweepResource force-terminates long-inactive instances for a resource and
// applies stuck detection across all definitions, not just the matching one.
func (s *TrackerService) sweepResource(ctx context.Context, resourceID string, defsByID map[uuid.UUID]*domain.JourneyDefinition) error {
	instances, err := s.instRepo.ListOpenByResource(ctx, resourceID)
	if err != nil {
		return fmt.Errorf("load open instances: %w", err)
	}

	now := s.clock.Now()
	for i := range instances {
		inst := &instances[i]
		def := defsByID[inst.DefinitionID]

		if now.Sub(inst.LastEventTime) > abandonmentCutoff {
			name := "unknown"
			if def != nil {
				name = def.Name
			}
			if err := s.abandonInstanceNamed(ctx, name, inst, "no activity within the abandonment window"); err != nil {
				return err
			}
			continue
		}

		before := inst.Status
		s.detectStuck(def, inst, now)
		if inst.Status != before {
			inst.UpdatedAt = now
			if err := s.instRepo.Update(ctx, inst); err != nil {
				return fmt.Errorf("update swept instance: %w", err)
			}
		}
	}
	return nil
}

func (s *TrackerService) abandonInstance(ctx context.Context, def *domain.JourneyDefinition, inst *domain.JourneyInstance, reason string) error {
	return s.abandonInstanceNamed(ctx, def.Name, inst, reason)
}

func (s *TrackerService) abandonInstanceNamed(ctx context.Context, defName string, inst *domain.JourneyInstance, reason string) error {
	now := s.clock.Now()
	total := now.Sub(inst.StartTime).Milliseconds()
	inst.Status = domain.InstanceStatusAbandoned
	inst.EndTime = &now
	inst.TotalDurationMs = &total
	inst.EstimatedEnd = nil
	inst.Notes = &reason
	inst.UpdatedAt = now
	if err := s.instRepo.Update(ctx, inst); err != nil {
		return fmt.Errorf("abandon instance: %w", err)
	}

	metrics.JourneysFinished.WithLabelValues(defName, string(domain.InstanceStatusAbandoned)).Inc()
	s.log.Info().
		Str("definition", defName).
		Str("instance_id", inst.ID.String()).
		Str("reason", reason).
		Msg("tracker: journey abandoned")
	return nil
}

func matchAny(matchers []domain.EventMatcher, event *domain.WebhookEvent, payload map[string]any) bool {
	for _, m := range matchers {
		if m.Matches(event, payload) {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
