package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ResourceType identifies the provider-side entity an event refers to.
type ResourceType string

const (
	ResourceTypeTransfer      ResourceType = "transfer"
	ResourceTypeCustomer      ResourceType = "customer"
	ResourceTypeFundingSource ResourceType = "funding_source"
	ResourceTypeAccount       ResourceType = "account"
	ResourceTypeUnknown       ResourceType = "unknown"
)

// ProcessingState is the pipeline lifecycle state of an event.
type ProcessingState string

const (
	ProcessingStateReceived    ProcessingState = "received"
	ProcessingStateQueued      ProcessingState = "queued"
	ProcessingStateProcessing  ProcessingState = "processing"
	ProcessingStateCompleted   ProcessingState = "completed"
	ProcessingStateFailed      ProcessingState = "failed"
	ProcessingStateQuarantined ProcessingState = "quarantined"
)

// WebhookEvent is a durably recorded provider notification.
// Events are created on receipt (even malformed ones, for forensic recovery)
// and mutated only by the pipeline as processing advances. EventID is unique
// in the store; repeat deliveries update duplicate bookkeeping on the
// original row instead of inserting a second one.
type WebhookEvent struct {
	ID             uuid.UUID    `json:"id"`
	EventID        string       `json:"event_id"` // provider-assigned, globally unique
	EventType      string       `json:"event_type"`
	ResourceType   ResourceType `json:"resource_type"`
	ResourceID     *string      `json:"resource_id,omitempty"`
	ResourceURI    string       `json:"resource_uri,omitempty"`
	Topic          string       `json:"topic"` // raw provider topic
	EventTimestamp time.Time    `json:"event_timestamp"`
	ReceivedAt     time.Time    `json:"received_at"`
	Payload        []byte       `json:"-"`
	PayloadSize    int          `json:"payload_size"`
	Signature      string       `json:"-"`
	SignatureValid bool         `json:"signature_valid"`
	SourceIP       string       `json:"source_ip,omitempty"`

	IsDuplicate    bool `json:"is_duplicate"`
	DuplicateCount int  `json:"duplicate_count"`

	ProcessingState      ProcessingState `json:"processing_state"`
	ProcessingAttempts   int             `json:"processing_attempts"`
	LastProcessingError  *string         `json:"last_processing_error,omitempty"`
	ProcessedAt          *time.Time      `json:"processed_at,omitempty"`
	ProcessingDurationMs *int64          `json:"processing_duration_ms,omitempty"`
	QuarantinedAt        *time.Time      `json:"quarantined_at,omitempty"`
	QuarantineReason     *string         `json:"quarantine_reason,omitempty"`
}

// IsTerminal returns true if the event reached a final processing state.
func (e *WebhookEvent) IsTerminal() bool {
	return e.ProcessingState == ProcessingStateCompleted ||
		e.ProcessingState == ProcessingStateFailed ||
		e.ProcessingState == ProcessingStateQuarantined
}

// NormalizeTopic maps a raw provider topic to the canonical event type.
// A topic of the form customer_<rest> with more than two underscore-delimited
// segments drops the leading customer segment:
// customer_bank_transfer_completed -> bank_transfer_completed.
// All other topics pass through unchanged.
func NormalizeTopic(topic string) string {
	parts := strings.Split(topic, "_")
	if len(parts) > 2 && parts[0] == "customer" {
		return strings.Join(parts[1:], "_")
	}
	return topic
}

// InferResourceType derives the resource type from a resource URL path.
// Convention: /transfers/{id} -> transfer, /customers/{id} -> customer,
// /funding-sources/{id} -> funding_source, /accounts/{id} -> account.
func InferResourceType(resourceURI string) ResourceType {
	switch {
	case strings.Contains(resourceURI, "/transfers/"):
		return ResourceTypeTransfer
	case strings.Contains(resourceURI, "/customers/"):
		return ResourceTypeCustomer
	case strings.Contains(resourceURI, "/funding-sources/"):
		return ResourceTypeFundingSource
	case strings.Contains(resourceURI, "/accounts/"):
		return ResourceTypeAccount
	default:
		return ResourceTypeUnknown
	}
}

// ResourceIDFromURI extracts the trailing path segment of a resource URL.
// Returns "" when the URI is empty or has no path segment.
func ResourceIDFromURI(resourceURI string) string {
	trimmed := strings.TrimRight(resourceURI, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 || idx == len(trimmed)-1 {
		return ""
	}
	return trimmed[idx+1:]
}
