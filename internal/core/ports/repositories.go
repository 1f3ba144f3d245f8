package ports

import (
	"context"
	"time"

	"payment-journey-tracker/internal/core/domain"

	"github.com/google/uuid"
)

// EventRepository defines persistence operations for webhook events.
type EventRepository interface {
	Create(ctx context.Context, event *domain.WebhookEvent) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WebhookEvent, error)
	GetByEventID(ctx context.Context, eventID string) (*domain.WebhookEvent, error)
	// Update writes all mutable processing fields of the event row.
	Update(ctx context.Context, event *domain.WebhookEvent) error
	// MarkDuplicate flags the stored row for eventID as duplicated and
	// increments its arrival counter, returning the new duplicate count.
	MarkDuplicate(ctx context.Context, eventID string) (int, error)
	// ListRecentByResource returns events for a resource received after
	// since, newest first, capped at limit.
	ListRecentByResource(ctx context.Context, resourceID string, since time.Time, limit int) ([]domain.WebhookEvent, error)
}

// DefinitionRepository defines persistence for journey definitions.
type DefinitionRepository interface {
	// Upsert inserts or replaces a definition keyed by (name, version).
	Upsert(ctx context.Context, def *domain.JourneyDefinition) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.JourneyDefinition, error)
	ListActive(ctx context.Context) ([]domain.JourneyDefinition, error)
}

// InstanceListParams holds filter + pagination for listing instances.
type InstanceListParams struct {
	DefinitionID *uuid.UUID
	ResourceID   *string
	Status       *domain.InstanceStatus
	Page         int
	PageSize     int
}

// InstanceStats holds aggregate instance counts for dashboards.
type InstanceStats struct {
	Total     int64
	Active    int64
	Stuck     int64
	Completed int64
	Failed    int64
	Abandoned int64
}

// InstanceRepository defines persistence for journey instances.
type InstanceRepository interface {
	Create(ctx context.Context, inst *domain.JourneyInstance) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.JourneyInstance, error)
	Update(ctx context.Context, inst *domain.JourneyInstance) error
	// ListOpenByDefinitionAndResource returns active and stuck instances of
	// one definition for one resource.
	ListOpenByDefinitionAndResource(ctx context.Context, definitionID uuid.UUID, resourceID string) ([]domain.JourneyInstance, error)
	// ListOpenByResource returns active and stuck instances of any
	// definition for one resource (abandonment sweep scope).
	ListOpenByResource(ctx context.Context, resourceID string) ([]domain.JourneyInstance, error)
	List(ctx context.Context, params InstanceListParams) ([]domain.JourneyInstance, int64, error)
	GetStats(ctx context.Context) (*InstanceStats, error)
}

// StepRepository defines persistence for journey steps.
type StepRepository interface {
	Create(ctx context.Context, step *domain.JourneyStep) error
	ListByInstance(ctx context.Context, instanceID uuid.UUID) ([]domain.JourneyStep, error)
	// ExistsForEvent reports whether the instance already recorded a step
	// for the event (idempotent step application).
	ExistsForEvent(ctx context.Context, instanceID uuid.UUID, eventID string) (bool, error)
}

// TransactionRepository defines persistence for provider transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.ProviderTransaction) error
	GetByTransferID(ctx context.Context, transferID string) (*domain.ProviderTransaction, error)
	Update(ctx context.Context, tx *domain.ProviderTransaction) error
}

// CustomerLinkRepository defines persistence for customer/event relations.
type CustomerLinkRepository interface {
	Create(ctx context.Context, link *domain.CustomerEventLink) error
	ListByCustomer(ctx context.Context, customerID string) ([]domain.CustomerEventLink, error)
}
