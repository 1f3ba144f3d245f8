package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"payment-journey-tracker/internal/core/domain"
	"payment-journey-tracker/internal/core/ports"

	"github.com/google/uuid"
)

// --- In-Memory Event Repo ---

type inMemoryEventRepo struct {
	mu     sync.RWMutex
	events map[uuid.UUID]*domain.WebhookEvent
}

func newInMemoryEventRepo() *inMemoryEventRepo {
	return &inMemoryEventRepo{events: make(map[uuid.UUID]*domain.WebhookEvent)}
}

func (r *inMemoryEventRepo) Create(ctx context.Context, e *domain.WebhookEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.events {
		if existing.EventID == e.EventID {
			return fmt.Errorf("event_id already exists")
		}
	}
	cp := *e
	r.events[e.ID] = &cp
	return nil
}

func (r *inMemoryEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WebhookEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *inMemoryEventRepo) GetByEventID(ctx context.Context, eventID string) (*domain.WebhookEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.events {
		if e.EventID == eventID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryEventRepo) Update(ctx context.Context, e *domain.WebhookEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[e.ID]; !ok {
		return fmt.Errorf("event not found")
	}
	cp := *e
	r.events[e.ID] = &cp
	return nil
}

func (r *inMemoryEventRepo) MarkDuplicate(ctx context.Context, eventID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.EventID == eventID {
			e.IsDuplicate = true
			e.DuplicateCount++
			return e.DuplicateCount, nil
		}
	}
	return 0, fmt.Errorf("event not found")
}

func (r *inMemoryEventRepo) ListRecentByResource(ctx context.Context, resourceID string, since time.Time, limit int) ([]domain.WebhookEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.WebhookEvent
	for _, e := range r.events {
		if e.ResourceID != nil && *e.ResourceID == resourceID && !e.ReceivedAt.Before(since) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReceivedAt.After(out[j].ReceivedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- In-Memory Definition Repo ---

type inMemoryDefinitionRepo struct {
	mu   sync.RWMutex
	defs map[uuid.UUID]*domain.JourneyDefinition
}

func newInMemoryDefinitionRepo() *inMemoryDefinitionRepo {
	return &inMemoryDefinitionRepo{defs: make(map[uuid.UUID]*domain.JourneyDefinition)}
}

func (r *inMemoryDefinitionRepo) Upsert(ctx context.Context, def *domain.JourneyDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *def
	r.defs[def.ID] = &cp
	return nil
}

func (r *inMemoryDefinitionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.JourneyDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.defs[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *inMemoryDefinitionRepo) ListActive(ctx context.Context) ([]domain.JourneyDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.JourneyDefinition
	for _, d := range r.defs {
		if d.Active {
			out = append(out, *d)
		}
	}
	return out, nil
}

// --- In-Memory Instance Repo ---

type inMemoryInstanceRepo struct {
	mu        sync.RWMutex
	instances map[uuid.UUID]*domain.JourneyInstance
}

func newInMemoryInstanceRepo() *inMemoryInstanceRepo {
	return &inMemoryInstanceRepo{instances: make(map[uuid.UUID]*domain.JourneyInstance)}
}

func (r *inMemoryInstanceRepo) Create(ctx context.Context, i *domain.JourneyInstance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *i
	r.instances[i.ID] = &cp
	return nil
}

func (r *inMemoryInstanceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.JourneyInstance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.instances[id]
	if !ok {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}

func (r *inMemoryInstanceRepo) Update(ctx context.Context, i *domain.JourneyInstance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.instances[i.ID]; !ok {
		return fmt.Errorf("instance not found")
	}
	cp := *i
	r.instances[i.ID] = &cp
	return nil
}

func (r *inMemoryInstanceRepo) ListOpenByDefinitionAndResource(ctx context.Context, definitionID uuid.UUID, resourceID string) ([]domain.JourneyInstance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.JourneyInstance
	for _, i := range r.instances {
		if i.DefinitionID == definitionID && i.ResourceID == resourceID && i.IsOpen() {
			out = append(out, *i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].StartTime.Before(out[b].StartTime) })
	return out, nil
}

func (r *inMemoryInstanceRepo) ListOpenByResource(ctx context.Context, resourceID string) ([]domain.JourneyInstance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.JourneyInstance
	for _, i := range r.instances {
		if i.ResourceID == resourceID && i.IsOpen() {
			out = append(out, *i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].StartTime.Before(out[b].StartTime) })
	return out, nil
}

func (r *inMemoryInstanceRepo) List(ctx context.Context, params ports.InstanceListParams) ([]domain.JourneyInstance, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []domain.JourneyInstance
	for _, i := range r.instances {
		if params.DefinitionID != nil && i.DefinitionID != *params.DefinitionID {
			continue
		}
		if params.ResourceID != nil && i.ResourceID != *params.ResourceID {
			continue
		}
		if params.Status != nil && i.Status != *params.Status {
			continue
		}
		matched = append(matched, *i)
	}
	sort.Slice(matched, func(a, b int) bool { return matched[a].StartTime.After(matched[b].StartTime) })

	total := int64(len(matched))
	offset := (params.Page - 1) * params.PageSize
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + params.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *inMemoryInstanceRepo) GetStats(ctx context.Context) (*ports.InstanceStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := &ports.InstanceStats{}
	for _, i := range r.instances {
		stats.Total++
		switch i.Status {
		case domain.InstanceStatusActive:
			stats.Active++
		case domain.InstanceStatusStuck:
			stats.Stuck++
		case domain.InstanceStatusCompleted:
			stats.Completed++
		case domain.InstanceStatusFailed:
			stats.Failed++
		case domain.InstanceStatusAbandoned:
			stats.Abandoned++
		}
	}
	return stats, nil
}

// --- In-Memory Step Repo ---

type inMemoryStepRepo struct {
	mu    sync.RWMutex
	steps []domain.JourneyStep
}

func newInMemoryStepRepo() *inMemoryStepRepo { return &inMemoryStepRepo{} }

func (r *inMemoryStepRepo) Create(ctx context.Context, step *domain.JourneyStep) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, *step)
	return nil
}

func (r *inMemoryStepRepo) ListByInstance(ctx context.Context, instanceID uuid.UUID) ([]domain.JourneyStep, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.JourneyStep
	for _, s := range r.steps {
		if s.InstanceID == instanceID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *inMemoryStepRepo) ExistsForEvent(ctx context.Context, instanceID uuid.UUID, eventID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.steps {
		if s.InstanceID == instanceID && s.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

// --- In-Memory Transaction Repo ---

type inMemoryTransactionRepo struct {
	mu  sync.RWMutex
	txs map[string]*domain.ProviderTransaction
}

func newInMemoryTransactionRepo() *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{txs: make(map[string]*domain.ProviderTransaction)}
}

func (r *inMemoryTransactionRepo) Create(ctx context.Context, tx *domain.ProviderTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *tx
	r.txs[tx.TransferID] = &cp
	return nil
}

func (r *inMemoryTransactionRepo) GetByTransferID(ctx context.Context, transferID string) (*domain.ProviderTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tx, ok := r.txs[transferID]
	if !ok {
		return nil, nil
	}
	cp := *tx
	return &cp, nil
}

func (r *inMemoryTransactionRepo) Update(ctx context.Context, tx *domain.ProviderTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.txs[tx.TransferID]; !ok {
		return fmt.Errorf("transaction not found")
	}
	cp := *tx
	r.txs[tx.TransferID] = &cp
	return nil
}

// --- In-Memory Customer Link Repo ---

type inMemoryCustomerLinkRepo struct {
	mu    sync.RWMutex
	links []domain.CustomerEventLink
}

func newInMemoryCustomerLinkRepo() *inMemoryCustomerLinkRepo {
	return &inMemoryCustomerLinkRepo{}
}

func (r *inMemoryCustomerLinkRepo) Create(ctx context.Context, link *domain.CustomerEventLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links = append(r.links, *link)
	return nil
}

func (r *inMemoryCustomerLinkRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.CustomerEventLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.CustomerEventLink
	for _, l := range r.links {
		if l.CustomerID == customerID {
			out = append(out, l)
		}
	}
	return out, nil
}
