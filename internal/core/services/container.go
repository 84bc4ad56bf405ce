package services

import (
	portssvc "github.com/finzen-app/finzen_backend/internal/core/ports/services"
	"github.com/finzen-app/finzen_backend/internal/platform/config"
	"github.com/finzen-app/finzen_backend/internal/repositories/database/pgsql"
)

// NewServiceContainer wires the repositories into the service facades.
func NewServiceContainer(cfg *config.Config, repos *pgsql.RepositoryContainer) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Transaction:     NewTransactionService(repos.Transaction),
		User:            NewUserService(repos.User),
		IdentityGateway: NewIdentityGatewayService(cfg),
		Reporting:       NewReportingService(repos.User, repos.Transaction),
	}
}
