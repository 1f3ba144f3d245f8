package service

import (
	"context"
	"fmt"
	"strings"

	"payment-journey-tracker/internal/core/domain"
	"payment-journey-tracker/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CustomerProcessor resolves the customer behind customer events and records
// a customer/event relation. This subsystem owns no customer table; the
// relation entries are its only customer-side writes.
type CustomerProcessor struct {
	linkRepo ports.CustomerLinkRepository
	clock    ports.Clock
	log      zerolog.Logger
}

// NewCustomerProcessor creates a customer event processor.
func NewCustomerProcessor(linkRepo ports.CustomerLinkRepository, clock ports.Clock, log zerolog.Logger) *CustomerProcessor {
	return &CustomerProcessor{linkRepo: linkRepo, clock: clock, log: log}
}

// Name identifies the processor in logs.
func (p *CustomerProcessor) Name() string { return "customer" }

// CanProcess matches customer resources and customer-flavored event types.
func (p *CustomerProcessor) CanProcess(event *domain.WebhookEvent) bool {
	return event.ResourceType == domain.ResourceTypeCustomer ||
		strings.Contains(event.EventType, "customer")
}

// Process extracts the customer identifier, stores it on the context, and
// records the relation entry.
func (p *CustomerProcessor) Process(ctx context.Context, event *domain.WebhookEvent, pctx *domain.ProcessingContext) error {
	customerID := p.customerID(event)
	if customerID == "" {
		customerID, _ = customerIDFromPayload(pctx)
	}
	if customerID == "" {
		return fmt.Errorf("validation: customer event %s carries no customer identifier", event.EventID)
	}

	pctx.SetCustomerID(customerID)

	link := &domain.CustomerEventLink{
		ID:         uuid.New(),
		CustomerID: customerID,
		EventID:    event.EventID,
		EventType:  event.EventType,
		CreatedAt:  p.clock.Now(),
	}
	if err := p.linkRepo.Create(ctx, link); err != nil {
		return fmt.Errorf("record customer link: %w", err)
	}

	p.log.Debug().
		Str("customer_id", customerID).
		Str("event_type", event.EventType).
		Msg("customer processor: relation recorded")
	return nil
}

func (p *CustomerProcessor) customerID(event *domain.WebhookEvent) string {
	if event.ResourceType == domain.ResourceTypeCustomer {
		if event.ResourceID != nil && *event.ResourceID != "" {
			return *event.ResourceID
		}
		return domain.ResourceIDFromURI(event.ResourceURI)
	}
	// Customer-flavored event on another resource: the customer reference
	// lives in the payload if anywhere.
	return ""
}

var _ ports.ResourceProcessor = (*CustomerProcessor)(nil)
