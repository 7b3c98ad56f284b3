package services

import (
	portsrepo "github.com/stayops/folio_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/stayops/folio_ledger_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Folio service first since the others post through it
	container.Folio = NewFolioService(repos.FolioRepo, repos.PaymentRepo)

	container.Occupancy = NewOccupancyService(repos.ReservationRepo, repos.FolioRepo)
	container.Posting = NewPostingService(repos.FolioRepo, repos.PaymentRepo)
	container.Consumption = NewConsumptionService(container.Occupancy, container.Folio, repos.FolioRepo)
	container.Checkout = NewCheckoutService(repos.ReservationRepo, repos.FolioRepo, repos.PaymentRepo, container.Folio)

	return container
}
