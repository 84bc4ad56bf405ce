package pgsql

import (
	portsrepo "github.com/finzen-app/finzen_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryContainer bundles the pgsql repositories for service wiring.
type RepositoryContainer struct {
	User        portsrepo.UserRepository
	Transaction portsrepo.TransactionRepository
}

// NewRepositoryContainer constructs all repositories over one shared pool.
func NewRepositoryContainer(db *pgxpool.Pool) *RepositoryContainer {
	return &RepositoryContainer{
		User:        NewPgxUserRepository(db),
		Transaction: NewPgxTransactionRepository(db),
	}
}
