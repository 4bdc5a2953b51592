package services

import "explorewithme/internal/domain"

// Stores groups the storage dependencies shared by the services.
type Stores struct {
	Tx         domain.Transactor
	Events     domain.EventRepository
	Requests   domain.RequestRepository
	Categories domain.CategoryRepository
	Users      domain.UserRepository
	Locations  domain.LocationRepository
	Ledger     domain.CapacityLedger
}
