package domain

import "github.com/google/uuid"

// ProcessingContext is the transient per-event bag used to pass derived data
// from enrichment and resource processors to the journey tracker. It is owned
// by exactly one processing invocation and discarded afterwards; it is never
// persisted and needs no internal locking.
type ProcessingContext struct {
	values map[string]any
}

// NewProcessingContext creates an empty context.
func NewProcessingContext() *ProcessingContext {
	return &ProcessingContext{values: make(map[string]any)}
}

// Set stores an arbitrary derived value.
func (c *ProcessingContext) Set(key string, value any) {
	c.values[key] = value
}

// Get returns a stored value and whether it was present.
func (c *ProcessingContext) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

const (
	ctxKeyTransactionID   = "transaction_id"
	ctxKeyCustomerID      = "customer_id"
	ctxKeyRecentEvents    = "recent_events"
	ctxKeyActiveInstances = "active_instances"
	ctxKeyPayload         = "payload"
)

// SetTransactionID records the affected domain transaction.
func (c *ProcessingContext) SetTransactionID(id uuid.UUID) { c.values[ctxKeyTransactionID] = id }

// TransactionID returns the affected domain transaction, if resolved.
func (c *ProcessingContext) TransactionID() (uuid.UUID, bool) {
	id, ok := c.values[ctxKeyTransactionID].(uuid.UUID)
	return id, ok
}

// SetCustomerID records the customer resolved for this event.
func (c *ProcessingContext) SetCustomerID(id string) { c.values[ctxKeyCustomerID] = id }

// CustomerID returns the resolved customer, if any.
func (c *ProcessingContext) CustomerID() (string, bool) {
	id, ok := c.values[ctxKeyCustomerID].(string)
	return id, ok
}

// SetRecentEvents attaches the enrichment window of recent events for the
// event's resource.
func (c *ProcessingContext) SetRecentEvents(events []WebhookEvent) {
	c.values[ctxKeyRecentEvents] = events
}

// RecentEvents returns the enrichment window, if attached.
func (c *ProcessingContext) RecentEvents() []WebhookEvent {
	events, _ := c.values[ctxKeyRecentEvents].([]WebhookEvent)
	return events
}

// SetActiveInstances attaches currently-open journey instances for the
// event's resource.
func (c *ProcessingContext) SetActiveInstances(instances []JourneyInstance) {
	c.values[ctxKeyActiveInstances] = instances
}

// ActiveInstances returns the attached open instances, if any.
func (c *ProcessingContext) ActiveInstances() []JourneyInstance {
	instances, _ := c.values[ctxKeyActiveInstances].([]JourneyInstance)
	return instances
}

// SetPayloadFields attaches the decoded envelope body for matcher condition
// evaluation.
func (c *ProcessingContext) SetPayloadFields(fields map[string]any) {
	c.values[ctxKeyPayload] = fields
}

// PayloadFields returns the decoded envelope body, or nil.
func (c *ProcessingContext) PayloadFields() map[string]any {
	fields, _ := c.values[ctxKeyPayload].(map[string]any)
	return fields
}
