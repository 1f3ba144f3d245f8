package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"payment-journey-tracker/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionRepository for provider
// transactions owned by the transfer processor.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create inserts a new provider transaction.
func (r *TransactionRepo) Create(ctx context.Context, t *domain.ProviderTransaction) error {
	trail, err := json.Marshal(t.AuditTrail)
	if err != nil {
		return fmt.Errorf("marshal audit trail: %w", err)
	}

	query := `INSERT INTO provider_transactions
		(id, transfer_id, customer_id, status, failure_reason, failure_code, audit_trail,
		created_at, updated_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = r.pool.Exec(ctx, query,
		t.ID, t.TransferID, t.CustomerID, t.Status, t.FailureReason, t.FailureCode, trail,
		t.CreatedAt, t.UpdatedAt, t.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert provider transaction: %w", err)
	}
	return nil
}

// GetByTransferID fetches a transaction by provider transfer identifier.
func (r *TransactionRepo) GetByTransferID(ctx context.Context, transferID string) (*domain.ProviderTransaction, error) {
	query := `SELECT id, transfer_id, customer_id, status, failure_reason, failure_code, audit_trail,
		created_at, updated_at, completed_at
		FROM provider_transactions WHERE transfer_id = $1`

	t := &domain.ProviderTransaction{}
	var trail []byte
	err := r.pool.QueryRow(ctx, query, transferID).Scan(
		&t.ID, &t.TransferID, &t.CustomerID, &t.Status, &t.FailureReason, &t.FailureCode, &trail,
		&t.CreatedAt, &t.UpdatedAt, &t.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get provider transaction: %w", err)
	}
	if len(trail) > 0 {
		if err := json.Unmarshal(trail, &t.AuditTrail); err != nil {
			return nil, fmt.Errorf("unmarshal audit trail: %w", err)
		}
	}
	return t, nil
}

// Update writes the mutable fields of a provider transaction.
func (r *TransactionRepo) Update(ctx context.Context, t *domain.ProviderTransaction) error {
	trail, err := json.Marshal(t.AuditTrail)
	if err != nil {
		return fmt.Errorf("marshal audit trail: %w", err)
	}

	query := `UPDATE provider_transactions SET
		customer_id = $1, status = $2, failure_reason = $3, failure_code = $4,
		audit_trail = $5, updated_at = $6, completed_at = $7
		WHERE id = $8`

	tag, err := r.pool.Exec(ctx, query,
		t.CustomerID, t.Status, t.FailureReason, t.FailureCode,
		trail, t.UpdatedAt, t.CompletedAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update provider transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("provider transaction not found: %s", t.ID)
	}
	return nil
}
