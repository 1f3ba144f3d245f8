package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransferStatus is the canonical status of a tracked provider transfer.
type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusProcessed TransferStatus = "processed"
	TransferStatusCompleted TransferStatus = "completed"
	TransferStatusFailed    TransferStatus = "failed"
	TransferStatusCancelled TransferStatus = "cancelled"
	TransferStatusReturned  TransferStatus = "returned"
	TransferStatusUnknown   TransferStatus = "unknown"
)

// transferStatusByEventType is the fixed event-type -> status lookup applied
// by the transfer processor. Unmapped event types map to unknown rather than
// raising an error.
var transferStatusByEventType = map[string]TransferStatus{
	"transfer_created":        TransferStatusPending,
	"transfer_pending":        TransferStatusPending,
	"transfer_processed":      TransferStatusProcessed,
	"transfer_completed":      TransferStatusCompleted,
	"transfer_failed":         TransferStatusFailed,
	"transfer_cancelled":      TransferStatusCancelled,
	"transfer_returned":       TransferStatusReturned,
	"bank_transfer_created":   TransferStatusPending,
	"bank_transfer_completed": TransferStatusCompleted,
	"bank_transfer_failed":    TransferStatusFailed,
	"bank_transfer_cancelled": TransferStatusCancelled,
}

// TransferStatusForEvent maps a normalized event type to a canonical status.
func TransferStatusForEvent(eventType string) TransferStatus {
	if s, ok := transferStatusByEventType[eventType]; ok {
		return s
	}
	return TransferStatusUnknown
}

// ProviderTransaction is the domain record mutated by the transfer processor.
// AuditTrail accumulates the event IDs applied to the record, oldest first.
type ProviderTransaction struct {
	ID            uuid.UUID      `json:"id"`
	TransferID    string         `json:"transfer_id"` // provider transfer identifier, unique
	CustomerID    *string        `json:"customer_id,omitempty"`
	Status        TransferStatus `json:"status"`
	FailureReason *string        `json:"failure_reason,omitempty"`
	FailureCode   *string        `json:"failure_code,omitempty"`
	AuditTrail    []string       `json:"audit_trail"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
}

// CustomerEventLink relates a customer identifier to an event that referenced
// it. The tracker subsystem does not own a customer table; these links are
// the only customer-side record it writes.
type CustomerEventLink struct {
	ID         uuid.UUID `json:"id"`
	CustomerID string    `json:"customer_id"`
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	CreatedAt  time.Time `json:"created_at"`
}
