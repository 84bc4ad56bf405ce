package services

import (
	"context"

	"github.com/finzen-app/finzen_backend/internal/core/domain"
)

// ReportingSvcFacade builds the admin cross-user consolidations.
type ReportingSvcFacade interface {
	// ConsolidateByUser rolls up counts, totals and balance per user.
	// Cost is O(users x transactions-per-user); acceptable at small scale.
	ConsolidateByUser(ctx context.Context) ([]domain.UserConsolidation, error)
	// SystemTotals is a single pass over all users and all transactions.
	SystemTotals(ctx context.Context) (*domain.SystemTotals, error)
	// ListAllWithOwners joins every transaction with its owner's display name.
	ListAllWithOwners(ctx context.Context) ([]domain.OwnedTransaction, error)
}
