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

// TransferProcessor translates transfer events into provider transaction
// mutations: status mapping, failure details, and an audit trail of applied
// events.
type TransferProcessor struct {
	txRepo ports.TransactionRepository
	clock  ports.Clock
	log    zerolog.Logger
}

// NewTransferProcessor creates a transfer event processor.
func NewTransferProcessor(txRepo ports.TransactionRepository, clock ports.Clock, log zerolog.Logger) *TransferProcessor {
	return &TransferProcessor{txRepo: txRepo, clock: clock, log: log}
}

// Name identifies the processor in logs.
func (p *TransferProcessor) Name() string { return "transfer" }

// CanProcess matches transfer resources and transfer-flavored event types.
func (p *TransferProcessor) CanProcess(event *domain.WebhookEvent) bool {
	return event.ResourceType == domain.ResourceTypeTransfer ||
		strings.Contains(event.EventType, "transfer")
}

// Process finds-or-creates the transaction for the event's transfer, applies
// the status mapping, and records the event on the audit trail.
func (p *TransferProcessor) Process(ctx context.Context, event *domain.WebhookEvent, pctx *domain.ProcessingContext) error {
	transferID := p.transferID(event)
	if transferID == "" {
		return fmt.Errorf("validation: transfer event %s carries no transfer identifier", event.EventID)
	}

	now := p.clock.Now()
	tx, err := p.txRepo.GetByTransferID(ctx, transferID)
	if err != nil {
		return fmt.Errorf("lookup transaction: %w", err)
	}
	created := tx == nil
	if created {
		tx = &domain.ProviderTransaction{
			ID:         uuid.New(),
			TransferID: transferID,
			Status:     domain.TransferStatusPending,
			CreatedAt:  now,
		}
	}

	status := domain.TransferStatusForEvent(event.EventType)
	tx.Status = status
	tx.UpdatedAt = now

	switch status {
	case domain.TransferStatusCompleted:
		tx.CompletedAt = &now
	case domain.TransferStatusFailed, domain.TransferStatusReturned:
		reason, code := failureDetails(event, pctx)
		tx.FailureReason = &reason
		if code != "" {
			tx.FailureCode = &code
		}
	}

	if customerID, ok := customerIDFromPayload(pctx); ok {
		tx.CustomerID = &customerID
		pctx.SetCustomerID(customerID)
	}

	// Audit trail keeps every applied event, oldest first.
	tx.AuditTrail = append(tx.AuditTrail, event.EventID)

	if created {
		err = p.txRepo.Create(ctx, tx)
	} else {
		err = p.txRepo.Update(ctx, tx)
	}
	if err != nil {
		return fmt.Errorf("write transaction: %w", err)
	}

	pctx.SetTransactionID(tx.ID)
	p.log.Debug().
		Str("transfer_id", transferID).
		Str("status", string(status)).
		Bool("created", created).
		Msg("transfer processor: transaction updated")
	return nil
}

// transferID prefers the event's resource id, falling back to the resource
// URI path segment.
func (p *TransferProcessor) transferID(event *domain.WebhookEvent) string {
	if event.ResourceID != nil && *event.ResourceID != "" {
		return *event.ResourceID
	}
	return domain.ResourceIDFromURI(event.ResourceURI)
}

func failureDetails(event *domain.WebhookEvent, pctx *domain.ProcessingContext) (reason, code string) {
	reason = fmt.Sprintf("transfer %s", event.EventType)
	fields := pctx.PayloadFields()
	if fields == nil {
		return reason, ""
	}
	if r, ok := fields["failureReason"].(string); ok && r != "" {
		reason = r
	}
	if c, ok := fields["failureCode"].(string); ok {
		code = c
	}
	return reason, code
}

func customerIDFromPayload(pctx *domain.ProcessingContext) (string, bool) {
	fields := pctx.PayloadFields()
	if fields == nil {
		return "", false
	}
	if id, ok := fields["customerId"].(string); ok && id != "" {
		return id, true
	}
	return "", false
}

var _ ports.ResourceProcessor = (*TransferProcessor)(nil)
