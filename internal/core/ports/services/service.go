package services

// ServiceContainer bundles the service facades for route registration.
type ServiceContainer struct {
	Transaction     TransactionSvcFacade
	User            UserSvcFacade
	IdentityGateway IdentityGatewaySvcFacade
	Reporting       ReportingSvcFacade
}
