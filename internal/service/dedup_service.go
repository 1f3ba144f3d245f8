package service

import (
	"context"

	"payment-journey-tracker/internal/adapter/storage/redis"
	"payment-journey-tracker/internal/core/ports"

	"github.com/rs/zerolog"
)

// dedupService implements ports.DedupService as a two-tier check: a fast
// Redis arrival counter, falling back to the durable event store on a
// fast-tier miss so duplicates survive restarts and cache eviction. The
// durable store is authoritative; the fast tier is advisory.
type dedupService struct {
	store     *redis.DedupStore
	eventRepo ports.EventRepository
	log       zerolog.Logger
}

// NewDedupService creates a two-tier deduplication service.
func NewDedupService(store *redis.DedupStore, eventRepo ports.EventRepository, log zerolog.Logger) ports.DedupService {
	return &dedupService{
		store:     store,
		eventRepo: eventRepo,
		log:       log,
	}
}

// IsDuplicate reports whether the event has been seen before and how many
// duplicate arrivals preceded this call. A first arrival returns (false, 0);
// each repeat increments the count.
func (s *dedupService) IsDuplicate(ctx context.Context, eventID string) (bool, int, error) {
	n, err := s.store.Incr(ctx, eventID)
	if err != nil {
		return false, 0, err
	}
	if n > 1 {
		return true, int(n - 1), nil
	}

	// Fast-tier first sighting: the counter may have been evicted or the
	// process restarted, so consult the durable store.
	stored, err := s.eventRepo.GetByEventID(ctx, eventID)
	if err != nil {
		// The increment above must not outlive a failed check: a dangling
		// counter would turn the retry into a false duplicate.
		if ferr := s.store.Forget(ctx, eventID); ferr != nil {
			s.log.Warn().Err(ferr).Str("event_id", eventID).Msg("dedup: failed to roll back counter")
		}
		return false, 0, err
	}
	if stored == nil {
		return false, 0, nil
	}

	// Known durably: rebuild the fast-tier counter from the stored count.
	count := stored.DuplicateCount + 1
	if err := s.store.Seed(ctx, eventID, int64(count)+1); err != nil {
		s.log.Warn().Err(err).Str("event_id", eventID).Msg("dedup: failed to reseed fast tier")
	}
	return true, count, nil
}

// Forget clears the fast-tier counter for an event. Callers invoke this when
// the arrival that IsDuplicate counted was never persisted, so the event's
// next delivery is classified as a first arrival again.
func (s *dedupService) Forget(ctx context.Context, eventID string) error {
	return s.store.Forget(ctx, eventID)
}
