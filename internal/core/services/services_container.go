package services

import (
	portsrepo "github.com/andeantrade/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/andeantrade/treasury_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, rateProvider portssvc.RateProvider, fallbackRate decimal.Decimal) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Rate = rateProvider
	container.Account = NewAccountService(repos.AccountRepo, repos.MovementRepo)
	container.Movement = NewMovementService(repos.MovementRepo, repos.AccountRepo)
	container.Conversion = NewConversionService(repos.ConversionRepo, repos.AccountRepo, rateProvider)
	container.Treasury = NewAggregationService(
		repos.SnapshotRepo,
		repos.AccountRepo,
		repos.MovementRepo,
		repos.ConversionRepo,
		rateProvider,
		fallbackRate,
	)

	return container
}

// Interface implementation checks
var (
	_ portssvc.AccountSvcFacade    = (*accountService)(nil)
	_ portssvc.MovementSvcFacade   = (*movementService)(nil)
	_ portssvc.ConversionSvcFacade = (*conversionService)(nil)
	_ portssvc.TreasurySvcFacade   = (*aggregationService)(nil)
)
