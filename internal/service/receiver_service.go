package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"payment-journey-tracker/internal/core/domain"
	"payment-journey-tracker/internal/core/ports"
	"payment-journey-tracker/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// envelopeSchema describes the provider's event envelope. Violations are
// logged, never fatal: downstream fields are optional and malformed events
// are still recorded for forensic recovery.
const envelopeSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["id", "topic"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"resourceId": {"type": "string"},
		"topic": {"type": "string", "minLength": 1},
		"timestamp": {"type": "string"},
		"_links": {
			"type": "object",
			"properties": {
				"resource": {
					"type": "object",
					"properties": {"href": {"type": "string"}}
				}
			}
		}
	}
}`

// maxStoredErrorPayload caps the raw body kept on failed-webhook records.
const maxStoredErrorPayload = 4096

// eventEnvelope is the provider's webhook body.
type eventEnvelope struct {
	ID         string `json:"id"`
	ResourceID string `json:"resourceId"`
	Topic      string `json:"topic"`
	Timestamp  string `json:"timestamp"`
	Links      struct {
		Resource struct {
			Href string `json:"href"`
		} `json:"resource"`
	} `json:"_links"`
}

// receiverService implements ports.WebhookReceiver.
type receiverService struct {
	eventRepo ports.EventRepository
	dedup     ports.DedupService
	breaker   *CircuitBreaker
	pipeline  ports.EventPipeline
	sigSvc    ports.SignatureService
	secret    string
	schema    *jsonschema.Schema
	clock     ports.Clock
	log       zerolog.Logger
}

// NewReceiverService creates the webhook ingress service.
func NewReceiverService(
	eventRepo ports.EventRepository,
	dedup ports.DedupService,
	breaker *CircuitBreaker,
	pipeline ports.EventPipeline,
	sigSvc ports.SignatureService,
	secret string,
	clock ports.Clock,
	log zerolog.Logger,
) (ports.WebhookReceiver, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(envelopeSchema))
	if err != nil {
		return nil, fmt.Errorf("parsing envelope schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("envelope.json", doc); err != nil {
		return nil, fmt.Errorf("adding envelope schema: %w", err)
	}
	schema, err := compiler.Compile("envelope.json")
	if err != nil {
		return nil, fmt.Errorf("compiling envelope schema: %w", err)
	}

	return &receiverService{
		eventRepo: eventRepo,
		dedup:     dedup,
		breaker:   breaker,
		pipeline:  pipeline,
		sigSvc:    sigSvc,
		secret:    secret,
		schema:    schema,
		clock:     clock,
		log:       log,
	}, nil
}

// HandleWebhook validates, deduplicates, persists, and hands off one inbound
// event. It always acknowledges: internal failures are captured as stored
// failed-webhook records so the provider's retry policy cannot amplify an
// outage into a delivery storm.
func (s *receiverService) HandleWebhook(ctx context.Context, req ports.WebhookRequest) ports.WebhookAck {
	start := s.clock.Now()
	metrics.EventsReceived.Inc()

	var env eventEnvelope
	if err := json.Unmarshal(req.Body, &env); err != nil {
		s.log.Warn().Err(err).Int("body_size", len(req.Body)).Msg("webhook: unparseable envelope")
		return s.ackFailure(ctx, req, start, fmt.Errorf("parse envelope: %w", err))
	}

	s.validateEnvelope(req.Body)

	event := s.buildEvent(&env, req)
	event.SignatureValid = s.verifySignature(req)

	duplicate, count, err := s.dedup.IsDuplicate(ctx, event.EventID)
	if err != nil {
		s.log.Error().Err(err).Str("event_id", event.EventID).Msg("webhook: dedup check failed")
		return s.ackFailure(ctx, req, start, err)
	}

	if duplicate {
		metrics.EventsDuplicate.Inc()
		if err := s.breaker.Execute(ctx, func(ctx context.Context) error {
			_, err := s.eventRepo.MarkDuplicate(ctx, event.EventID)
			return err
		}); err != nil {
			s.log.Error().Err(err).Str("event_id", event.EventID).Msg("webhook: failed to record duplicate arrival")
		}
		s.log.Info().
			Str("event_id", event.EventID).
			Int("duplicate_count", count).
			Msg("webhook: duplicate delivery ignored")
		return ports.WebhookAck{
			Received:         true,
			EventID:          event.EventID,
			Duplicate:        true,
			ProcessingTimeMs: s.clock.Now().Sub(start).Milliseconds(),
		}
	}

	if err := s.breaker.Execute(ctx, func(ctx context.Context) error {
		return s.eventRepo.Create(ctx, event)
	}); err != nil {
		metrics.EventsPersistFailed.Inc()
		// Roll back the dedup counter: nothing was persisted, so the
		// provider's retry must not be classified as a duplicate.
		if ferr := s.dedup.Forget(ctx, event.EventID); ferr != nil {
			s.log.Warn().Err(ferr).Str("event_id", event.EventID).Msg("webhook: failed to roll back dedup counter")
		}
		s.log.Error().Err(err).Str("event_id", event.EventID).Msg("webhook: persist failed")
		return s.ackFailure(ctx, req, start, err)
	}

	if s.breaker.IsOpen() {
		metrics.EventsDropped.Inc()
		s.log.Warn().Str("event_id", event.EventID).Msg("webhook: handoff skipped, event stays in received state")
	} else {
		// Persist the queued state before handing off: a worker can finish
		// the event inside the handoff window, and a write after Enqueue
		// would regress its terminal state.
		event.ProcessingState = domain.ProcessingStateQueued
		if err := s.eventRepo.Update(ctx, event); err != nil {
			s.log.Warn().Err(err).Str("event_id", event.EventID).Msg("webhook: failed to mark event queued")
		}
		if !s.pipeline.Enqueue(event.ID) {
			event.ProcessingState = domain.ProcessingStateReceived
			if err := s.eventRepo.Update(ctx, event); err != nil {
				s.log.Warn().Err(err).Str("event_id", event.EventID).Msg("webhook: failed to return dropped event to received state")
			}
			metrics.EventsDropped.Inc()
			s.log.Warn().Str("event_id", event.EventID).Msg("webhook: queue full, event stays in received state")
		}
	}

	return ports.WebhookAck{
		Received:         true,
		EventID:          event.EventID,
		ProcessingTimeMs: s.clock.Now().Sub(start).Milliseconds(),
	}
}

// buildEvent assembles the durable event record from the envelope and
// transport metadata. Missing fields degrade rather than fail.
func (s *receiverService) buildEvent(env *eventEnvelope, req ports.WebhookRequest) *domain.WebhookEvent {
	now := s.clock.Now()

	eventID := env.ID
	if eventID == "" {
		eventID = "missing-" + uuid.NewString()
	}

	eventTime := now
	if env.Timestamp != "" {
		if ts, err := time.Parse(time.RFC3339, env.Timestamp); err == nil {
			eventTime = ts
		} else {
			s.log.Warn().Str("timestamp", env.Timestamp).Msg("webhook: unparseable event timestamp, using receipt time")
		}
	}

	var resourceID *string
	if env.ResourceID != "" {
		resourceID = &env.ResourceID
	} else if id := domain.ResourceIDFromURI(env.Links.Resource.Href); id != "" {
		resourceID = &id
	}

	return &domain.WebhookEvent{
		ID:              uuid.New(),
		EventID:         eventID,
		EventType:       domain.NormalizeTopic(env.Topic),
		ResourceType:    domain.InferResourceType(env.Links.Resource.Href),
		ResourceID:      resourceID,
		ResourceURI:     env.Links.Resource.Href,
		Topic:           env.Topic,
		EventTimestamp:  eventTime,
		ReceivedAt:      now,
		Payload:         req.Body,
		PayloadSize:     len(req.Body),
		Signature:       req.Signature,
		SourceIP:        req.SourceIP,
		ProcessingState: domain.ProcessingStateReceived,
	}
}

// validateEnvelope runs the JSON schema check; failures are warnings only.
func (s *receiverService) validateEnvelope(body []byte) {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return // the caller already handles unparseable bodies
	}
	if err := s.schema.Validate(inst); err != nil {
		s.log.Warn().Err(err).Msg("webhook: envelope failed schema validation, continuing")
	}
}

// verifySignature checks the HMAC over the raw body. Events with a missing
// or invalid signature are still processed; the result is recorded for
// audit. Revisit before trusting this data for anything security-sensitive.
func (s *receiverService) verifySignature(req ports.WebhookRequest) bool {
	if s.secret == "" || req.Signature == "" {
		s.log.Warn().Bool("signature_present", req.Signature != "").Msg("webhook: signature not verifiable")
		return false
	}
	valid := s.sigSvc.Verify(s.secret, req.Body, req.Signature)
	if !valid {
		s.log.Warn().Str("source_ip", req.SourceIP).Msg("webhook: invalid signature, processing anyway")
	}
	return valid
}

// ackFailure persists a best-effort failed-webhook record and returns the
// error acknowledgement. The raw body is truncated to bound storage.
func (s *receiverService) ackFailure(ctx context.Context, req ports.WebhookRequest, start time.Time, cause error) ports.WebhookAck {
	requestID := uuid.NewString()

	body := req.Body
	if len(body) > maxStoredErrorPayload {
		body = body[:maxStoredErrorPayload]
	}
	errMsg := cause.Error()

	record := &domain.WebhookEvent{
		ID:                  uuid.New(),
		EventID:             "failed-" + requestID,
		EventType:           "unknown",
		ResourceType:        domain.ResourceTypeUnknown,
		Topic:               "unknown",
		EventTimestamp:      s.clock.Now(),
		ReceivedAt:          s.clock.Now(),
		Payload:             body,
		PayloadSize:         len(req.Body),
		Signature:           req.Signature,
		SourceIP:            req.SourceIP,
		ProcessingState:     domain.ProcessingStateFailed,
		LastProcessingError: &errMsg,
	}

	if err := s.breaker.Execute(ctx, func(ctx context.Context) error {
		return s.eventRepo.Create(ctx, record)
	}); err != nil {
		// Last resort: the log line is the only surviving copy of the body.
		s.log.Error().
			Err(err).
			Str("request_id", requestID).
			Str("payload", string(body)).
			Msg("webhook: failed to store failure record, payload preserved in log only")
	}

	return ports.WebhookAck{
		Received:         true,
		Error:            true,
		RequestID:        requestID,
		ProcessingTimeMs: s.clock.Now().Sub(start).Milliseconds(),
	}
}
