package dto

import (
	"github.com/finzen-app/finzen_backend/internal/core/domain"
)

// CategoryTotalResponse is one (category, kind) aggregation group.
type CategoryTotalResponse struct {
	Category string `json:"category"`
	Kind     string `json:"kind"`
	Total    string `json:"total"`
}

// DateTotalResponse is one day of the time-series report.
type DateTotalResponse struct {
	Date         string `json:"date"`
	ExpenseTotal string `json:"expenseTotal"`
	IncomeTotal  string `json:"incomeTotal"`
}

// ReportsResponse is the /reportes page object. The category chart shows
// expenses only; totals come from the kind summary, absent kinds as "0".
type ReportsResponse struct {
	ExpensesByCategory []CategoryTotalResponse `json:"expensesByCategory"`
	IncomeTotal        string                  `json:"incomeTotal"`
	ExpenseTotal       string                  `json:"expenseTotal"`
	ByDate             []DateTotalResponse     `json:"byDate"`
}

// ToCategoryTotalResponses converts aggregation groups preserving order.
func ToCategoryTotalResponses(groups []domain.CategoryTotal) []CategoryTotalResponse {
	out := make([]CategoryTotalResponse, len(groups))
	for i, g := range groups {
		out[i] = CategoryTotalResponse{
			Category: g.Category,
			Kind:     string(g.Kind),
			Total:    g.Total.String(),
		}
	}
	return out
}

// ToDateTotalResponses converts the per-day rollups preserving order.
func ToDateTotalResponses(rows []domain.DateTotal) []DateTotalResponse {
	out := make([]DateTotalResponse, len(rows))
	for i, r := range rows {
		out[i] = DateTotalResponse{
			Date:         r.Date,
			ExpenseTotal: r.ExpenseTotal.String(),
			IncomeTotal:  r.IncomeTotal.String(),
		}
	}
	return out
}

// ConsolidationResponse is one row of the admin per-user rollup.
type ConsolidationResponse struct {
	UserID           string `json:"userID"`
	Name             string `json:"name"`
	LoginName        string `json:"loginName"`
	TransactionCount int    `json:"transactionCount"`
	IncomeTotal      string `json:"incomeTotal"`
	ExpenseTotal     string `json:"expenseTotal"`
	Balance          string `json:"balance"`
}

// ToConsolidationResponses converts the rollup rows preserving order.
func ToConsolidationResponses(rows []domain.UserConsolidation) []ConsolidationResponse {
	out := make([]ConsolidationResponse, len(rows))
	for i, r := range rows {
		out[i] = ConsolidationResponse{
			UserID:           r.UserID,
			Name:             r.Name,
			LoginName:        r.LoginName,
			TransactionCount: r.TransactionCount,
			IncomeTotal:      r.IncomeTotal.String(),
			ExpenseTotal:     r.ExpenseTotal.String(),
			Balance:          r.Balance.String(),
		}
	}
	return out
}

// SystemTotalsResponse is the admin general report.
type SystemTotalsResponse struct {
	UserCount        int    `json:"userCount"`
	TransactionCount int    `json:"transactionCount"`
	IncomeTotal      string `json:"incomeTotal"`
	ExpenseTotal     string `json:"expenseTotal"`
}

// ToSystemTotalsResponse converts the whole-system rollup.
func ToSystemTotalsResponse(t *domain.SystemTotals) SystemTotalsResponse {
	return SystemTotalsResponse{
		UserCount:        t.UserCount,
		TransactionCount: t.TransactionCount,
		IncomeTotal:      t.IncomeTotal.String(),
		ExpenseTotal:     t.ExpenseTotal.String(),
	}
}
