package postgres

import (
	"context"
	"fmt"

	"payment-journey-tracker/internal/core/domain"
)

// CustomerLinkRepo implements ports.CustomerLinkRepository.
type CustomerLinkRepo struct {
	pool Pool
}

// NewCustomerLinkRepo creates a new CustomerLinkRepo.
func NewCustomerLinkRepo(pool Pool) *CustomerLinkRepo {
	return &CustomerLinkRepo{pool: pool}
}

// Create inserts a customer/event relation. Repeat deliveries of the same
// event are tolerated via ON CONFLICT DO NOTHING.
func (r *CustomerLinkRepo) Create(ctx context.Context, l *domain.CustomerEventLink) error {
	query := `INSERT INTO customer_event_links (id, customer_id, event_id, event_type, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (customer_id, event_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query, l.ID, l.CustomerID, l.EventID, l.EventType, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert customer event link: %w", err)
	}
	return nil
}

// ListByCustomer returns all event relations for a customer, newest first.
func (r *CustomerLinkRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.CustomerEventLink, error) {
	query := `SELECT id, customer_id, event_id, event_type, created_at
		FROM customer_event_links WHERE customer_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list customer event links: %w", err)
	}
	defer rows.Close()

	var links []domain.CustomerEventLink
	for rows.Next() {
		l := domain.CustomerEventLink{}
		if err := rows.Scan(&l.ID, &l.CustomerID, &l.EventID, &l.EventType, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan link row: %w", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate link rows: %w", err)
	}
	return links, nil
}
