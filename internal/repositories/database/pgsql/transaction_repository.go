package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finzen-app/finzen_backend/internal/apperrors"
	"github.com/finzen-app/finzen_backend/internal/core/domain"
	portsrepo "github.com/finzen-app/finzen_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxTransactionRepository persists transactions in the transactions table.
// Queries stay on equality filters; grouping and summing belong to the
// service layer.
type PgxTransactionRepository struct {
	db *pgxpool.Pool
}

func NewPgxTransactionRepository(db *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{db: db}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepository
var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, kind, category, description, amount, txn_date, payment_method, owner_id, created_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.Kind,
		&txn.Category,
		&txn.Description,
		&txn.Amount,
		&txn.Date,
		&txn.PaymentMethod,
		&txn.OwnerID,
		&txn.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
        INSERT INTO transactions (transaction_id, kind, category, description, amount, txn_date, payment_method, owner_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.db.Exec(ctx, query,
		txn.TransactionID,
		txn.Kind,
		txn.Category,
		txn.Description,
		txn.Amount,
		txn.Date,
		txn.PaymentMethod,
		txn.OwnerID,
		txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.db.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return txn, nil
}

func (r *PgxTransactionRepository) FindTransactionsByOwner(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	// created_at is the store-assigned order: arbitrary but stable within
	// one query result, which is what the date tie-break relies on.
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY created_at;`
	args := []any{}
	if ownerID != "" {
		query = `SELECT ` + transactionColumns + ` FROM transactions WHERE owner_id = $1 ORDER BY created_at;`
		args = append(args, ownerID)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *txn)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	return txns, nil
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	// transaction_id, owner_id and created_at are immutable.
	query := `
        UPDATE transactions
        SET kind = $1, category = $2, description = $3, amount = $4, txn_date = $5, payment_method = $6
        WHERE transaction_id = $7;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		txn.Kind,
		txn.Category,
		txn.Description,
		txn.Amount,
		txn.Date,
		txn.PaymentMethod,
		txn.TransactionID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update transaction query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	query := `DELETE FROM transactions WHERE transaction_id = $1;`
	cmdTag, err := r.db.Exec(ctx, query, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
