package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind discriminates between an expense and an income record.
type TransactionKind string

const (
	KindExpense TransactionKind = "expense"
	KindIncome  TransactionKind = "income"
)

// IsValid reports whether the kind is one of the two known values.
func (k TransactionKind) IsValid() bool {
	return k == KindExpense || k == KindIncome
}

// Transaction represents a single expense or income record owned by a user.
// Amount is always strictly positive; the sign is carried by Kind.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	Kind          TransactionKind `json:"kind"`
	Category      string          `json:"category"`    // Free text; the catalog below is advisory only
	Description   string          `json:"description"` // Required, non-empty
	Amount        decimal.Decimal `json:"amount"`      // Invariant: amount > 0
	Date          time.Time       `json:"date"`        // Calendar date, no time-of-day semantics
	PaymentMethod *string         `json:"paymentMethod,omitempty"`
	OwnerID       string          `json:"ownerID"`   // FK -> User.userID
	CreatedAt     time.Time       `json:"createdAt"` // Server-assigned, immutable
}

// DateString renders the transaction date the way it is displayed and grouped.
func (t Transaction) DateString() string {
	return t.Date.Format("2006-01-02")
}

// SuggestedCategories is the fixed advisory category catalog per kind.
// It is offered to clients on the create form and never enforced server-side.
var SuggestedCategories = map[TransactionKind][]string{
	KindExpense: {
		"Alimentación",
		"Transporte",
		"Vivienda",
		"Entretenimiento",
		"Salud",
		"Educación",
		"Otros",
	},
	KindIncome: {
		"Salario",
		"Freelance",
		"Inversiones",
		"Otros Ingresos",
	},
}
