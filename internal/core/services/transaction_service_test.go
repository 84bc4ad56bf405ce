package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/finzen-app/finzen_backend/internal/apperrors"
	"github.com/finzen-app/finzen_backend/internal/core/domain"
	portssvc "github.com/finzen-app/finzen_backend/internal/core/ports/services"
	"github.com/finzen-app/finzen_backend/internal/core/services"
	"github.com/finzen-app/finzen_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- In-memory TransactionRepository stub ---

type stubTxnRepo struct {
	txns    map[string]domain.Transaction
	order   []string
	saveErr error
}

func newStubTxnRepo() *stubTxnRepo {
	return &stubTxnRepo{txns: map[string]domain.Transaction{}}
}

func (r *stubTxnRepo) SaveTransaction(_ context.Context, txn domain.Transaction) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.txns[txn.TransactionID] = txn
	r.order = append(r.order, txn.TransactionID)
	return nil
}

func (r *stubTxnRepo) FindTransactionByID(_ context.Context, id string) (*domain.Transaction, error) {
	txn, ok := r.txns[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &txn, nil
}

func (r *stubTxnRepo) FindTransactionsByOwner(_ context.Context, ownerID string) ([]domain.Transaction, error) {
	out := []domain.Transaction{}
	for _, id := range r.order {
		txn, ok := r.txns[id]
		if !ok {
			continue
		}
		if ownerID == "" || txn.OwnerID == ownerID {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (r *stubTxnRepo) UpdateTransaction(_ context.Context, txn domain.Transaction) error {
	if _, ok := r.txns[txn.TransactionID]; !ok {
		return fmt.Errorf("transaction not found: %w", apperrors.ErrNotFound)
	}
	r.txns[txn.TransactionID] = txn
	return nil
}

func (r *stubTxnRepo) DeleteTransaction(_ context.Context, id string) error {
	if _, ok := r.txns[id]; !ok {
		return fmt.Errorf("transaction not found: %w", apperrors.ErrNotFound)
	}
	delete(r.txns, id)
	return nil
}

func validCreateReq() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		Kind:        "expense",
		Category:    "Alimentación",
		Description: "Lunch",
		Amount:      "15.50",
		Date:        "2024-03-01",
	}
}

func TestTransactionService_Create_RequiredFieldOrder(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dto.CreateTransactionRequest)
		wantMsg string
	}{
		{"missing kind", func(r *dto.CreateTransactionRequest) { r.Kind = "" }, "kind is required"},
		{"missing category", func(r *dto.CreateTransactionRequest) { r.Category = "" }, "category is required"},
		{"missing description", func(r *dto.CreateTransactionRequest) { r.Description = "" }, "description is required"},
		{"missing amount", func(r *dto.CreateTransactionRequest) { r.Amount = "" }, "amount is required"},
		{"missing date", func(r *dto.CreateTransactionRequest) { r.Date = "" }, "date is required"},
		{"all missing reports kind first", func(r *dto.CreateTransactionRequest) { *r = dto.CreateTransactionRequest{} }, "kind is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := services.NewTransactionService(newStubTxnRepo())
			req := validCreateReq()
			tt.mutate(&req)

			_, err := svc.Create(context.Background(), req, "U1")
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestTransactionService_Create_AmountValidation(t *testing.T) {
	tests := []struct {
		name   string
		amount string
	}{
		{"zero", "0"},
		{"negative", "-5"},
		{"non-numeric", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := services.NewTransactionService(newStubTxnRepo())
			req := validCreateReq()
			req.Amount = tt.amount

			_, err := svc.Create(context.Background(), req, "U1")
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestTransactionService_Create_KindValidation(t *testing.T) {
	svc := services.NewTransactionService(newStubTxnRepo())
	req := validCreateReq()
	req.Kind = "transfer"

	_, err := svc.Create(context.Background(), req, "U1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestTransactionService_CreateThenGetByID_RoundTrip(t *testing.T) {
	svc := services.NewTransactionService(newStubTxnRepo())
	req := validCreateReq()
	req.PaymentMethod = "cash"

	created, err := svc.Create(context.Background(), req, "U1")
	require.NoError(t, err)
	assert.NotEmpty(t, created.TransactionID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := svc.GetByID(context.Background(), created.TransactionID)
	require.NoError(t, err)

	assert.Equal(t, domain.KindExpense, got.Kind)
	assert.Equal(t, "Alimentación", got.Category)
	assert.Equal(t, "Lunch", got.Description)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("15.50")))
	assert.Equal(t, "2024-03-01", got.DateString())
	require.NotNil(t, got.PaymentMethod)
	assert.Equal(t, "cash", *got.PaymentMethod)
	assert.Equal(t, "U1", got.OwnerID)
}

func TestTransactionService_GetByID_NotFound(t *testing.T) {
	svc := services.NewTransactionService(newStubTxnRepo())

	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTransactionService_Update_InvalidAmountLeavesRecordUnchanged(t *testing.T) {
	repo := newStubTxnRepo()
	svc := services.NewTransactionService(repo)

	created, err := svc.Create(context.Background(), validCreateReq(), "U1")
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.TransactionID, dto.UpdateTransactionRequest{Amount: "-5"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	got, err := svc.GetByID(context.Background(), created.TransactionID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("15.50")))
}

func TestTransactionService_Update_MergesPatchFields(t *testing.T) {
	svc := services.NewTransactionService(newStubTxnRepo())

	created, err := svc.Create(context.Background(), validCreateReq(), "U1")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.TransactionID, dto.UpdateTransactionRequest{
		Amount:   "20",
		Category: "Transporte",
	})
	require.NoError(t, err)

	assert.True(t, updated.Amount.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, "Transporte", updated.Category)
	// Untouched fields keep their stored values.
	assert.Equal(t, "Lunch", updated.Description)
	assert.Equal(t, domain.KindExpense, updated.Kind)
	// Owner and creation timestamp are never patched.
	assert.Equal(t, created.OwnerID, updated.OwnerID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestTransactionService_Update_NotFound(t *testing.T) {
	svc := services.NewTransactionService(newStubTxnRepo())

	_, err := svc.Update(context.Background(), "missing", dto.UpdateTransactionRequest{Amount: "10"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTransactionService_DeleteThenGetByID_NotFound(t *testing.T) {
	svc := services.NewTransactionService(newStubTxnRepo())

	created, err := svc.Create(context.Background(), validCreateReq(), "U1")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.TransactionID))

	_, err = svc.GetByID(context.Background(), created.TransactionID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), created.TransactionID), apperrors.ErrNotFound)
}

func seedTxn(t *testing.T, svc portssvc.TransactionSvcFacade, owner, kind, category, amount, date string) {
	t.Helper()
	_, err := svc.Create(context.Background(), dto.CreateTransactionRequest{
		Kind:        kind,
		Category:    category,
		Description: "seed",
		Amount:      amount,
		Date:        date,
	}, owner)
	require.NoError(t, err)
}

func TestTransactionService_List_SortedByDateDescAndOwnerScoped(t *testing.T) {
	svc := services.NewTransactionService(newStubTxnRepo())
	seedTxn(t, svc, "U1", "expense", "Transporte", "10", "2024-03-01")
	seedTxn(t, svc, "U1", "income", "Salario", "100", "2024-03-15")
	seedTxn(t, svc, "U1", "expense", "Salud", "30", "2024-02-10")
	seedTxn(t, svc, "U2", "expense", "Otros", "99", "2024-03-20")

	txns, err := svc.List(context.Background(), "U1")
	require.NoError(t, err)
	require.Len(t, txns, 3)

	assert.Equal(t, "2024-03-15", txns[0].DateString())
	assert.Equal(t, "2024-03-01", txns[1].DateString())
	assert.Equal(t, "2024-02-10", txns[2].DateString())
	for _, txn := range txns {
		assert.Equal(t, "U1", txn.OwnerID)
	}

	// Admin path: no owner filter returns everything.
	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestTransactionService_AggregateByCategory_SplitsByKindAndSortsByTotal(t *testing.T) {
	svc := services.NewTransactionService(newStubTxnRepo())
	seedTxn(t, svc, "U1", "expense", "Transporte", "10", "2024-03-01")
	seedTxn(t, svc, "U1", "income", "Transporte", "5", "2024-03-02")
	seedTxn(t, svc, "U1", "expense", "Alimentación", "40", "2024-03-03")

	groups, err := svc.AggregateByCategory(context.Background(), "U1")
	require.NoError(t, err)
	// Same category with different kinds stays in two separate groups.
	require.Len(t, groups, 3)

	assert.Equal(t, "Alimentación", groups[0].Category)
	assert.True(t, groups[0].Total.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, "Transporte", groups[1].Category)
	assert.Equal(t, domain.KindExpense, groups[1].Kind)
	assert.Equal(t, "Transporte", groups[2].Category)
	assert.Equal(t, domain.KindIncome, groups[2].Kind)
}

func TestTransactionService_SummarizeByKind_OmitsAbsentKind(t *testing.T) {
	svc := services.NewTransactionService(newStubTxnRepo())
	created, err := svc.Create(context.Background(), validCreateReq(), "U1")
	require.NoError(t, err)
	assert.True(t, created.Amount.Equal(decimal.RequireFromString("15.50")))

	summary, err := svc.SummarizeByKind(context.Background(), "U1")
	require.NoError(t, err)

	// Only the expense entry is present; there is no zero income entry.
	require.Len(t, summary, 1)
	assert.Equal(t, domain.KindExpense, summary[0].Kind)
	assert.True(t, summary[0].Total.Equal(decimal.RequireFromString("15.50")))
}

func TestTransactionService_SummarizeByKind_EmptyOwnerHasNoEntries(t *testing.T) {
	svc := services.NewTransactionService(newStubTxnRepo())

	summary, err := svc.SummarizeByKind(context.Background(), "U1")
	require.NoError(t, err)
	assert.Empty(t, summary)
}

func TestTransactionService_CategoryTotalsMatchKindSummary(t *testing.T) {
	svc := services.NewTransactionService(newStubTxnRepo())
	seedTxn(t, svc, "U1", "expense", "Transporte", "10.25", "2024-03-01")
	seedTxn(t, svc, "U1", "expense", "Alimentación", "20.75", "2024-03-02")
	seedTxn(t, svc, "U1", "income", "Salario", "100", "2024-03-03")
	seedTxn(t, svc, "U2", "income", "Freelance", "55", "2024-03-04")

	groups, err := svc.AggregateByCategory(context.Background(), "U1")
	require.NoError(t, err)
	summary, err := svc.SummarizeByKind(context.Background(), "U1")
	require.NoError(t, err)

	groupSum := decimal.Zero
	for _, g := range groups {
		groupSum = groupSum.Add(g.Total)
	}
	summarySum := decimal.Zero
	for _, s := range summary {
		summarySum = summarySum.Add(s.Total)
	}
	assert.True(t, groupSum.Equal(summarySum), "group totals %s != summary totals %s", groupSum, summarySum)
}

func TestTransactionService_AggregateByDate_AscendingWithPerKindSums(t *testing.T) {
	svc := services.NewTransactionService(newStubTxnRepo())
	seedTxn(t, svc, "U1", "expense", "Transporte", "10", "2024-03-02")
	seedTxn(t, svc, "U1", "income", "Salario", "100", "2024-03-01")
	seedTxn(t, svc, "U1", "expense", "Salud", "5", "2024-03-02")

	rows, err := svc.AggregateByDate(context.Background(), "U1")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2024-03-01", rows[0].Date)
	assert.True(t, rows[0].IncomeTotal.Equal(decimal.NewFromInt(100)))
	assert.True(t, rows[0].ExpenseTotal.IsZero())

	assert.Equal(t, "2024-03-02", rows[1].Date)
	assert.True(t, rows[1].ExpenseTotal.Equal(decimal.NewFromInt(15)))
	assert.True(t, rows[1].IncomeTotal.IsZero())
}

func TestTransactionService_Create_UpstreamFailurePropagates(t *testing.T) {
	repo := newStubTxnRepo()
	repo.saveErr = fmt.Errorf("connection reset: %w", apperrors.ErrUpstream)
	svc := services.NewTransactionService(repo)

	_, err := svc.Create(context.Background(), validCreateReq(), "U1")
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestTransactionService_Create_AssignsCreationTimestamp(t *testing.T) {
	svc := services.NewTransactionService(newStubTxnRepo())
	before := time.Now()

	created, err := svc.Create(context.Background(), validCreateReq(), "U1")
	require.NoError(t, err)

	assert.False(t, created.CreatedAt.Before(before))
	assert.False(t, created.CreatedAt.After(time.Now()))
}
