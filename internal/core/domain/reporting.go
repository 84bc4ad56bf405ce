package domain

import "github.com/shopspring/decimal"

// CategoryTotal is one aggregation group keyed by (category, kind).
// The same category label appears once per kind that uses it.
type CategoryTotal struct {
	Category string          `json:"category"`
	Kind     TransactionKind `json:"kind"`
	Total    decimal.Decimal `json:"total"`
}

// KindTotal is the per-kind sum in a summary. A kind with no matching
// transactions is omitted from the summary slice rather than reported as zero.
type KindTotal struct {
	Kind  TransactionKind `json:"kind"`
	Total decimal.Decimal `json:"total"`
}

// DateTotal is the per-day rollup used by the time-series report.
type DateTotal struct {
	Date         string          `json:"date"` // YYYY-MM-DD
	ExpenseTotal decimal.Decimal `json:"expenseTotal"`
	IncomeTotal  decimal.Decimal `json:"incomeTotal"`
}

// OwnedTransaction is a transaction joined with its owner's display name for
// the admin all-transactions view.
type OwnedTransaction struct {
	Transaction
	OwnerName string `json:"ownerName"`
}

// UserConsolidation is the admin-facing per-user rollup.
type UserConsolidation struct {
	UserID           string          `json:"userID"`
	Name             string          `json:"name"`
	LoginName        string          `json:"loginName"`
	TransactionCount int             `json:"transactionCount"`
	IncomeTotal      decimal.Decimal `json:"incomeTotal"`
	ExpenseTotal     decimal.Decimal `json:"expenseTotal"`
	Balance          decimal.Decimal `json:"balance"` // incomeTotal - expenseTotal
}

// SystemTotals is the single-pass whole-system report.
type SystemTotals struct {
	UserCount        int             `json:"userCount"`
	TransactionCount int             `json:"transactionCount"`
	IncomeTotal      decimal.Decimal `json:"incomeTotal"`
	ExpenseTotal     decimal.Decimal `json:"expenseTotal"`
}
