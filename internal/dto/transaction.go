package dto

import (
	"github.com/finzen-app/finzen_backend/internal/core/domain"
)

// CreateTransactionRequest carries the create-form fields. Amount and date
// arrive as strings exactly as the form posts them; the service parses and
// validates (positive decimal, YYYY-MM-DD).
type CreateTransactionRequest struct {
	Kind          string `json:"kind" form:"kind" binding:"omitempty,txkind"`
	Category      string `json:"category" form:"category"`
	Description   string `json:"description" form:"description"`
	Amount        string `json:"amount" form:"amount"`
	Date          string `json:"date" form:"date"`
	PaymentMethod string `json:"paymentMethod" form:"paymentMethod"`
}

// UpdateTransactionRequest carries the edit-form fields. Empty fields keep
// the stored value; id, owner and createdAt are never patched.
type UpdateTransactionRequest struct {
	Kind          string `json:"kind" form:"kind" binding:"omitempty,txkind"`
	Category      string `json:"category" form:"category"`
	Description   string `json:"description" form:"description"`
	Amount        string `json:"amount" form:"amount"`
	Date          string `json:"date" form:"date"`
	PaymentMethod string `json:"paymentMethod" form:"paymentMethod"`
}

// TransactionResponse is the view object for one transaction. The date is
// rendered as YYYY-MM-DD; amount keeps decimal string precision.
type TransactionResponse struct {
	TransactionID string `json:"transactionID"`
	Kind          string `json:"kind"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	Amount        string `json:"amount"`
	Date          string `json:"date"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	OwnerID       string `json:"ownerID"`
	OwnerName     string `json:"ownerName,omitempty"`
}

// ToTransactionResponse converts a domain transaction to its view object.
func ToTransactionResponse(t domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID: t.TransactionID,
		Kind:          string(t.Kind),
		Category:      t.Category,
		Description:   t.Description,
		Amount:        t.Amount.String(),
		Date:          t.DateString(),
		OwnerID:       t.OwnerID,
	}
	if t.PaymentMethod != nil {
		resp.PaymentMethod = *t.PaymentMethod
	}
	return resp
}

// ToTransactionResponses converts a slice preserving order.
func ToTransactionResponses(ts []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(ts))
	for i, t := range ts {
		out[i] = ToTransactionResponse(t)
	}
	return out
}

// ListTransactionsResponse is the /index page object.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	OwnerName    string                `json:"ownerName"`
}

// CreateFormResponse is the /crear page object: the advisory category catalog.
type CreateFormResponse struct {
	Categories map[string][]string `json:"categories"`
}

// NewCreateFormResponse builds the create-form catalog from the domain lists.
func NewCreateFormResponse() CreateFormResponse {
	cats := make(map[string][]string, len(domain.SuggestedCategories))
	for kind, list := range domain.SuggestedCategories {
		cats[string(kind)] = list
	}
	return CreateFormResponse{Categories: cats}
}
