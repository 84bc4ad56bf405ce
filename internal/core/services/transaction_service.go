package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/finzen-app/finzen_backend/internal/apperrors"
	"github.com/finzen-app/finzen_backend/internal/core/domain"
	portsrepo "github.com/finzen-app/finzen_backend/internal/core/ports/repositories"
	portssvc "github.com/finzen-app/finzen_backend/internal/core/ports/services"
	"github.com/finzen-app/finzen_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transactionService implements the TransactionSvcFacade.
// Aggregations are computed application-side over the full owner-scoped set:
// the store is limited to equality filters, acceptable at the target volumes.
type transactionService struct {
	txnRepo portsrepo.TransactionRepository
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(txnRepo portsrepo.TransactionRepository) portssvc.TransactionSvcFacade {
	return &transactionService{txnRepo: txnRepo}
}

// Ensure transactionService implements the facade
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

const dateLayout = "2006-01-02"

// parseAmount validates that raw parses to a strictly positive decimal.
func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil || !amount.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("amount must be a positive number: %w", apperrors.ErrValidation)
	}
	return amount, nil
}

// parseKind validates the expense/income discriminator.
func parseKind(raw string) (domain.TransactionKind, error) {
	kind := domain.TransactionKind(raw)
	if !kind.IsValid() {
		return "", fmt.Errorf("kind must be '%s' or '%s': %w", domain.KindExpense, domain.KindIncome, apperrors.ErrValidation)
	}
	return kind, nil
}

func parseDate(raw string) (time.Time, error) {
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be a valid %s date: %w", dateLayout, apperrors.ErrValidation)
	}
	return date, nil
}

func (s *transactionService) List(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.FindTransactionsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	// Date descending; the stable sort keeps the store-assigned order for ties.
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.After(txns[j].Date)
	})
	return txns, nil
}

func (s *transactionService) Create(ctx context.Context, req dto.CreateTransactionRequest, ownerID string) (*domain.Transaction, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner is required: %w", apperrors.ErrValidation)
	}

	// Required-field check in declaration order; the first missing field wins.
	required := []struct{ name, value string }{
		{"kind", req.Kind},
		{"category", req.Category},
		{"description", req.Description},
		{"amount", req.Amount},
		{"date", req.Date},
	}
	for _, field := range required {
		if field.value == "" {
			return nil, fmt.Errorf("%s is required: %w", field.name, apperrors.ErrValidation)
		}
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	kind, err := parseKind(req.Kind)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Kind:          kind,
		Category:      req.Category,
		Description:   req.Description,
		Amount:        amount,
		Date:          date,
		OwnerID:       ownerID,
		CreatedAt:     time.Now(),
	}
	if req.PaymentMethod != "" {
		pm := req.PaymentMethod
		txn.PaymentMethod = &pm
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return &txn, nil
}

func (s *transactionService) GetByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) Update(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	existing, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	// Re-validate amount/kind with the create rules before touching anything,
	// so a bad patch leaves the stored record unchanged.
	if req.Amount != "" {
		amount, err := parseAmount(req.Amount)
		if err != nil {
			return nil, err
		}
		existing.Amount = amount
	}
	if req.Kind != "" {
		kind, err := parseKind(req.Kind)
		if err != nil {
			return nil, err
		}
		existing.Kind = kind
	}
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			return nil, err
		}
		existing.Date = date
	}
	if req.Category != "" {
		existing.Category = req.Category
	}
	if req.Description != "" {
		existing.Description = req.Description
	}
	if req.PaymentMethod != "" {
		pm := req.PaymentMethod
		existing.PaymentMethod = &pm
	}

	if err := s.txnRepo.UpdateTransaction(ctx, *existing); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return existing, nil
}

func (s *transactionService) Delete(ctx context.Context, transactionID string) error {
	// Existence check first so a missing record reports NotFound, not a
	// zero-row delete.
	if _, err := s.txnRepo.FindTransactionByID(ctx, transactionID); err != nil {
		return err
	}
	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

func (s *transactionService) AggregateByCategory(ctx context.Context, ownerID string) ([]domain.CategoryTotal, error) {
	txns, err := s.txnRepo.FindTransactionsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by category: %w", err)
	}

	type groupKey struct {
		category string
		kind     domain.TransactionKind
	}
	totals := map[groupKey]decimal.Decimal{}
	order := []groupKey{}
	for _, txn := range txns {
		key := groupKey{category: txn.Category, kind: txn.Kind}
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] = totals[key].Add(txn.Amount)
	}

	groups := make([]domain.CategoryTotal, 0, len(order))
	for _, key := range order {
		groups = append(groups, domain.CategoryTotal{
			Category: key.category,
			Kind:     key.kind,
			Total:    totals[key],
		})
	}

	// Total descending; ties keep first-seen order, stable per run.
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Total.GreaterThan(groups[j].Total)
	})
	return groups, nil
}

func (s *transactionService) SummarizeByKind(ctx context.Context, ownerID string) ([]domain.KindTotal, error) {
	txns, err := s.txnRepo.FindTransactionsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize by kind: %w", err)
	}

	expenseTotal := decimal.Zero
	incomeTotal := decimal.Zero
	for _, txn := range txns {
		switch txn.Kind {
		case domain.KindExpense:
			expenseTotal = expenseTotal.Add(txn.Amount)
		case domain.KindIncome:
			incomeTotal = incomeTotal.Add(txn.Amount)
		}
	}

	// A kind with no matching transactions is omitted rather than reported
	// as zero; clients depend on this shape.
	summary := []domain.KindTotal{}
	if expenseTotal.IsPositive() {
		summary = append(summary, domain.KindTotal{Kind: domain.KindExpense, Total: expenseTotal})
	}
	if incomeTotal.IsPositive() {
		summary = append(summary, domain.KindTotal{Kind: domain.KindIncome, Total: incomeTotal})
	}
	return summary, nil
}

func (s *transactionService) AggregateByDate(ctx context.Context, ownerID string) ([]domain.DateTotal, error) {
	txns, err := s.txnRepo.FindTransactionsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by date: %w", err)
	}

	byDate := map[string]*domain.DateTotal{}
	for _, txn := range txns {
		date := txn.DateString()
		row, ok := byDate[date]
		if !ok {
			row = &domain.DateTotal{
				Date:         date,
				ExpenseTotal: decimal.Zero,
				IncomeTotal:  decimal.Zero,
			}
			byDate[date] = row
		}
		switch txn.Kind {
		case domain.KindExpense:
			row.ExpenseTotal = row.ExpenseTotal.Add(txn.Amount)
		case domain.KindIncome:
			row.IncomeTotal = row.IncomeTotal.Add(txn.Amount)
		}
	}

	rows := make([]domain.DateTotal, 0, len(byDate))
	for _, row := range byDate {
		rows = append(rows, *row)
	}
	// YYYY-MM-DD sorts lexicographically in date order.
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Date < rows[j].Date
	})
	return rows, nil
}
