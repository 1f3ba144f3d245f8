package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"payment-journey-tracker/internal/core/domain"
	"payment-journey-tracker/internal/core/ports"
	"payment-journey-tracker/internal/metrics"
	"payment-journey-tracker/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// enrichmentWindow bounds the recent-event lookup per resource.
	enrichmentWindow = 24 * time.Hour
	// enrichmentLimit caps how many recent events are attached to a context.
	enrichmentLimit = 50
)

// PipelineOptions sizes the worker pool and retry policy.
type PipelineOptions struct {
	Workers     int
	QueueSize   int
	MaxAttempts int
	MaxEventAge time.Duration
}

// PipelineService implements ports.EventPipeline: a fixed-size worker pool
// with a bounded queue, per-event enrichment, processor dispatch, journey
// tracking, and retry-with-backoff into quarantine.
type PipelineService struct {
	eventRepo    ports.EventRepository
	instanceRepo ports.InstanceRepository
	processors   []ports.ResourceProcessor
	tracker      ports.JourneyTracker
	clock        ports.Clock
	log          zerolog.Logger
	opts         PipelineOptions

	queue    chan uuid.UUID
	wg       sync.WaitGroup
	mu       sync.Mutex
	draining bool
}

// NewPipelineService creates a pipeline. Call Start to launch the workers.
func NewPipelineService(
	eventRepo ports.EventRepository,
	instanceRepo ports.InstanceRepository,
	processors []ports.ResourceProcessor,
	tracker ports.JourneyTracker,
	clock ports.Clock,
	log zerolog.Logger,
	opts PipelineOptions,
) *PipelineService {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 1024
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.MaxEventAge <= 0 {
		opts.MaxEventAge = 24 * time.Hour
	}
	return &PipelineService{
		eventRepo:    eventRepo,
		instanceRepo: instanceRepo,
		processors:   processors,
		tracker:      tracker,
		clock:        clock,
		log:          log,
		opts:         opts,
		queue:        make(chan uuid.UUID, opts.QueueSize),
	}
}

// Start launches the worker goroutines.
func (s *PipelineService) Start(ctx context.Context) {
	for i := 0; i < s.opts.Workers; i++ {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.run(ctx)
		}()
	}
	s.log.Info().
		Int("workers", s.opts.Workers).
		Int("queue_size", s.opts.QueueSize).
		Msg("pipeline started")
}

func (s *PipelineService) run(ctx context.Context) {
	for {
		select {
		case id, ok := <-s.queue:
			if !ok {
				return
			}
			if err := s.ProcessEvent(ctx, id); err != nil {
				s.log.Debug().Err(err).Str("id", id.String()).Msg("pipeline: event finished with error state")
			}
			metrics.QueueUtilization.Set(float64(len(s.queue)) / float64(cap(s.queue)))
		case <-ctx.Done():
			return
		}
	}
}

// Enqueue hands an event off without blocking. Returns false when the queue
// is full or the pipeline is draining; the event stays recoverable in the
// store either way.
func (s *PipelineService) Enqueue(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draining {
		return false
	}
	select {
	case s.queue <- id:
		metrics.QueueUtilization.Set(float64(len(s.queue)) / float64(cap(s.queue)))
		return true
	default:
		return false
	}
}

// Drain stops intake and waits for queued work to finish.
func (s *PipelineService) Drain() {
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true
	close(s.queue)
	s.mu.Unlock()
	s.wg.Wait()
	s.log.Info().Msg("pipeline drained")
}

// ProcessEvent runs the full processing flow for one stored event:
// enrich, dispatch to a resource processor, invoke the journey tracker,
// and record the outcome. Failures go through the retry policy.
func (s *PipelineService) ProcessEvent(ctx context.Context, id uuid.UUID) error {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event == nil {
		return apperror.ErrEventNotFound(id.String())
	}
	if event.IsTerminal() {
		// Duplicates and quarantined events never reprocess.
		return nil
	}

	start := s.clock.Now()
	event.ProcessingState = domain.ProcessingStateProcessing
	event.ProcessingAttempts++
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return err
	}

	pctx := domain.NewProcessingContext()
	if fields := decodePayload(event.Payload); fields != nil {
		pctx.SetPayloadFields(fields)
	}

	if err := s.process(ctx, event, pctx); err != nil {
		return s.handleFailure(ctx, event, err)
	}

	// Journey tracking is best-effort relative to the core domain-state
	// mutation; tracker errors never fail the event.
	if err := s.tracker.ProcessEvent(ctx, event, pctx); err != nil {
		s.log.Error().Err(err).
			Str("event_id", event.EventID).
			Msg("pipeline: journey tracking failed, event still completes")
	}

	now := s.clock.Now()
	durationMs := now.Sub(start).Milliseconds()
	event.ProcessingState = domain.ProcessingStateCompleted
	event.ProcessedAt = &now
	event.ProcessingDurationMs = &durationMs
	event.LastProcessingError = nil
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return err
	}

	metrics.EventsProcessed.WithLabelValues(string(domain.ProcessingStateCompleted)).Inc()
	metrics.ProcessingDuration.Observe(float64(durationMs))
	s.log.Info().
		Str("event_id", event.EventID).
		Str("event_type", event.EventType).
		Int64("duration_ms", durationMs).
		Msg("pipeline: event processed")
	return nil
}

// process enriches the context and dispatches to the first matching
// resource processor.
func (s *PipelineService) process(ctx context.Context, event *domain.WebhookEvent, pctx *domain.ProcessingContext) error {
	if event.ResourceID != nil {
		since := s.clock.Now().Add(-enrichmentWindow)
		recent, err := s.eventRepo.ListRecentByResource(ctx, *event.ResourceID, since, enrichmentLimit)
		if err != nil {
			return fmt.Errorf("enrich recent events: %w", err)
		}
		pctx.SetRecentEvents(recent)

		open, err := s.instanceRepo.ListOpenByResource(ctx, *event.ResourceID)
		if err != nil {
			return fmt.Errorf("enrich open instances: %w", err)
		}
		pctx.SetActiveInstances(open)
	}

	for _, p := range s.processors {
		if !p.CanProcess(event) {
			continue
		}
		if err := p.Process(ctx, event, pctx); err != nil {
			return fmt.Errorf("processor %s: %w", p.Name(), err)
		}
		return nil
	}

	s.log.Debug().
		Str("event_type", event.EventType).
		Str("resource_type", string(event.ResourceType)).
		Msg("pipeline: no processor matched, continuing")
	return nil
}

// handleFailure applies the retry policy: exponential backoff while
// attempts remain and the error is retryable, quarantine otherwise.
func (s *PipelineService) handleFailure(ctx context.Context, event *domain.WebhookEvent, cause error) error {
	errMsg := cause.Error()
	event.LastProcessingError = &errMsg

	if s.isRetryable(event, cause) && event.ProcessingAttempts < s.opts.MaxAttempts {
		event.ProcessingState = domain.ProcessingStateQueued
		if err := s.eventRepo.Update(ctx, event); err != nil {
			return err
		}

		delay := time.Duration(math.Pow(2, float64(event.ProcessingAttempts))) * time.Second
		metrics.EventRetries.Inc()
		s.log.Warn().Err(cause).
			Str("event_id", event.EventID).
			Int("attempt", event.ProcessingAttempts).
			Dur("retry_in", delay).
			Msg("pipeline: retrying event")

		id := event.ID
		time.AfterFunc(delay, func() {
			if !s.Enqueue(id) {
				s.log.Warn().Str("id", id.String()).Msg("pipeline: retry enqueue rejected")
			}
		})
		return cause
	}

	now := s.clock.Now()
	reason := fmt.Sprintf("quarantined after %d attempts: %s", event.ProcessingAttempts, errMsg)
	event.ProcessingState = domain.ProcessingStateQuarantined
	event.QuarantinedAt = &now
	event.QuarantineReason = &reason
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return err
	}

	metrics.EventsProcessed.WithLabelValues(string(domain.ProcessingStateQuarantined)).Inc()
	s.log.Error().Err(cause).
		Str("event_id", event.EventID).
		Int("attempts", event.ProcessingAttempts).
		Msg("pipeline: event quarantined, operator intervention required")
	return apperror.ErrEventQuarantined()
}

// isRetryable treats validation-style errors and stale events as permanent.
func (s *PipelineService) isRetryable(event *domain.WebhookEvent, err error) bool {
	if strings.Contains(strings.ToLower(err.Error()), "validation") {
		return false
	}
	if s.clock.Now().Sub(event.EventTimestamp) > s.opts.MaxEventAge {
		return false
	}
	return true
}

func decodePayload(payload []byte) map[string]any {
	if len(payload) == 0 {
		return nil
	}
	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil
	}
	return fields
}
