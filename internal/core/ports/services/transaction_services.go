package services

import (
	"context"

	"github.com/finzen-app/finzen_backend/internal/core/domain"
	"github.com/finzen-app/finzen_backend/internal/dto"
)

// TransactionSvcFacade exposes transaction CRUD and the reporting reshapes.
// Every operation except Create is idempotent-safe.
type TransactionSvcFacade interface {
	// List returns the owner's transactions sorted by date descending.
	// An empty ownerID returns the system-wide set (admin reporting only).
	List(ctx context.Context, ownerID string) ([]domain.Transaction, error)
	Create(ctx context.Context, req dto.CreateTransactionRequest, ownerID string) (*domain.Transaction, error)
	GetByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	Update(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	Delete(ctx context.Context, transactionID string) error

	// AggregateByCategory groups by (category, kind) and sorts by total descending.
	AggregateByCategory(ctx context.Context, ownerID string) ([]domain.CategoryTotal, error)
	// SummarizeByKind sums per kind; kinds with no matching transactions are
	// omitted from the result rather than reported as zero.
	SummarizeByKind(ctx context.Context, ownerID string) ([]domain.KindTotal, error)
	// AggregateByDate groups by calendar date ascending.
	AggregateByDate(ctx context.Context, ownerID string) ([]domain.DateTotal, error)
}
