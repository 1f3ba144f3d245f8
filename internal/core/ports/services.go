package ports

import (
	"context"
	"time"

	"payment-journey-tracker/internal/core/domain"

	"github.com/google/uuid"
)

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// SignatureService handles HMAC-SHA256 signing and verification of webhook
// payloads.
type SignatureService interface {
	Sign(secretKey string, payload []byte) string
	Verify(secretKey string, payload []byte, signature string) bool
}

// DedupService decides whether an event has been seen before.
// The returned count is 0 for a first arrival and increments per duplicate.
type DedupService interface {
	IsDuplicate(ctx context.Context, eventID string) (bool, int, error)
	// Forget discards the dedup state for an event whose arrival was never
	// durably persisted, so the provider's retry is treated as new.
	Forget(ctx context.Context, eventID string) error
}

// WebhookRequest is the transport-level view of an inbound webhook.
type WebhookRequest struct {
	Body      []byte
	Signature string // raw signature header value
	SourceIP  string
}

// WebhookAck is the acknowledgement body returned to the provider.
// Received is true for every input that could be read at all; internal
// failures surface only as Error+RequestID.
type WebhookAck struct {
	Received         bool   `json:"received"`
	EventID          string `json:"eventId,omitempty"`
	Duplicate        bool   `json:"duplicate,omitempty"`
	ProcessingTimeMs int64  `json:"processingTime"`
	Error            bool   `json:"error,omitempty"`
	RequestID        string `json:"requestId,omitempty"`
}

// WebhookReceiver validates, deduplicates, persists, and hands off inbound
// provider events.
type WebhookReceiver interface {
	HandleWebhook(ctx context.Context, req WebhookRequest) WebhookAck
}

// EventPipeline orchestrates asynchronous event processing.
type EventPipeline interface {
	// Enqueue hands an event off for processing without blocking.
	// Returns false if the queue is full (the event stays queued in the
	// store for later recovery).
	Enqueue(id uuid.UUID) bool
	// ProcessEvent runs the full enrichment/dispatch/tracking flow for one
	// stored event.
	ProcessEvent(ctx context.Context, id uuid.UUID) error
	// Drain stops intake and waits for in-flight work to finish.
	Drain()
}

// ResourceProcessor translates a raw event into domain-state mutations for
// one resource family. Processors are consulted in registration order; the
// first CanProcess match wins.
type ResourceProcessor interface {
	Name() string
	CanProcess(event *domain.WebhookEvent) bool
	Process(ctx context.Context, event *domain.WebhookEvent, pctx *domain.ProcessingContext) error
}

// JourneyTracker consumes processed events and drives journey state machines.
type JourneyTracker interface {
	ProcessEvent(ctx context.Context, event *domain.WebhookEvent, pctx *domain.ProcessingContext) error
}

// HealthChecker checks external dependency health.
type HealthChecker interface {
	// Ping verifies connectivity. Returns nil if healthy.
	Ping(ctx context.Context) error
	// Name returns the dependency name (e.g., "postgresql", "redis").
	Name() string
}
