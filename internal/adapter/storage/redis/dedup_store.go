package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// DedupStore is the fast, advisory tier of duplicate detection: a per-event
// arrival counter with a TTL window. The durable event store stays
// authoritative across restarts; counters older than the TTL expire, which
// bounds memory without guaranteeing duplicate detection beyond the window.
type DedupStore struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewDedupStore creates a Redis-backed dedup counter store.
func NewDedupStore(client *goredis.Client, ttl time.Duration) *DedupStore {
	return &DedupStore{
		client: client,
		prefix: "dedup:",
		ttl:    ttl,
	}
}

// Incr increments the arrival counter for an event and returns the new
// value. 1 means this tier has not seen the event before.
func (s *DedupStore) Incr(ctx context.Context, eventID string) (int64, error) {
	key := s.prefix + eventID
	n, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis dedup incr: %w", err)
	}
	if n == 1 {
		// First sighting in this tier; start the eviction window.
		if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
			return n, fmt.Errorf("redis dedup expire: %w", err)
		}
	}
	return n, nil
}

// Seed installs a counter value, used to rebuild the fast tier from the
// durable duplicate count after a restart or eviction. It overwrites the
// fresh counter the preceding Incr created.
func (s *DedupStore) Seed(ctx context.Context, eventID string, count int64) error {
	key := s.prefix + eventID
	if err := s.client.Set(ctx, key, count, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis dedup seed: %w", err)
	}
	return nil
}

// Forget removes the counter for an event, so its next arrival counts as a
// first sighting. Used when the arrival that created the counter was never
// durably persisted; leaving the counter in place would classify the
// provider's retry as a duplicate of a row that does not exist.
func (s *DedupStore) Forget(ctx context.Context, eventID string) error {
	if err := s.client.Del(ctx, s.prefix+eventID).Err(); err != nil {
		return fmt.Errorf("redis dedup forget: %w", err)
	}
	return nil
}
