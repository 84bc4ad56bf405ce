package services

import (
	"context"
	"fmt"

	"github.com/finzen-app/finzen_backend/internal/core/domain"
	portsrepo "github.com/finzen-app/finzen_backend/internal/core/ports/repositories"
	portssvc "github.com/finzen-app/finzen_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// consolidationFanout bounds the concurrent per-user fetches. The whole
// consolidation is O(users x transactions-per-user) either way; this only
// keeps the latency of the admin view reasonable at small scale.
const consolidationFanout = 4

// reportingService implements the admin-facing ReportingSvcFacade.
type reportingService struct {
	userRepo portsrepo.UserRepository
	txnRepo  portsrepo.TransactionRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(userRepo portsrepo.UserRepository, txnRepo portsrepo.TransactionRepository) portssvc.ReportingSvcFacade {
	return &reportingService{userRepo: userRepo, txnRepo: txnRepo}
}

// Ensure reportingService implements the facade
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func sumByKind(txns []domain.Transaction) (income, expense decimal.Decimal) {
	income, expense = decimal.Zero, decimal.Zero
	for _, txn := range txns {
		switch txn.Kind {
		case domain.KindIncome:
			income = income.Add(txn.Amount)
		case domain.KindExpense:
			expense = expense.Add(txn.Amount)
		}
	}
	return income, expense
}

func (s *reportingService) ConsolidateByUser(ctx context.Context) ([]domain.UserConsolidation, error) {
	users, err := s.userRepo.FindUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users for consolidation: %w", err)
	}

	// Each goroutine writes its own index; no shared state beyond the slice.
	rows := make([]domain.UserConsolidation, len(users))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(consolidationFanout)
	for i, user := range users {
		g.Go(func() error {
			txns, err := s.txnRepo.FindTransactionsByOwner(gctx, user.UserID)
			if err != nil {
				return fmt.Errorf("failed to fetch transactions for user %s: %w", user.UserID, err)
			}
			income, expense := sumByKind(txns)

			rows[i] = domain.UserConsolidation{
				UserID:           user.UserID,
				Name:             user.Name,
				LoginName:        user.LoginName,
				TransactionCount: len(txns),
				IncomeTotal:      income,
				ExpenseTotal:     expense,
				Balance:          income.Sub(expense),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return rows, nil
}

func (s *reportingService) SystemTotals(ctx context.Context) (*domain.SystemTotals, error) {
	users, err := s.userRepo.FindUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users for system totals: %w", err)
	}
	txns, err := s.txnRepo.FindTransactionsByOwner(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for system totals: %w", err)
	}

	income, expense := sumByKind(txns)
	return &domain.SystemTotals{
		UserCount:        len(users),
		TransactionCount: len(txns),
		IncomeTotal:      income,
		ExpenseTotal:     expense,
	}, nil
}

func (s *reportingService) ListAllWithOwners(ctx context.Context) ([]domain.OwnedTransaction, error) {
	users, err := s.userRepo.FindUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	txns, err := s.txnRepo.FindTransactionsByOwner(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	namesByID := make(map[string]string, len(users))
	for _, user := range users {
		namesByID[user.UserID] = user.Name
	}

	owned := make([]domain.OwnedTransaction, len(txns))
	for i, txn := range txns {
		name, ok := namesByID[txn.OwnerID]
		if !ok {
			name = "unknown user"
		}
		owned[i] = domain.OwnedTransaction{Transaction: txn, OwnerName: name}
	}
	return owned, nil
}
