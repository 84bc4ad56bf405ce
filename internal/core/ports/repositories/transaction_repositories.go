package repositories

import (
	"context"

	"github.com/finzen-app/finzen_backend/internal/core/domain"
)

// TransactionRepository defines persistence operations for transactions.
// The store exposes equality filters only; all grouping and summing happens
// in the service layer over the fetched set.
type TransactionRepository interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	// FindTransactionsByOwner returns every transaction whose ownerID matches.
	// An empty ownerID returns the system-wide set (admin reporting only).
	FindTransactionsByOwner(ctx context.Context, ownerID string) ([]domain.Transaction, error)
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
	DeleteTransaction(ctx context.Context, transactionID string) error
}
