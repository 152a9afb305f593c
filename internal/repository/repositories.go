package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Client  ClientRepository
	Payment PaymentRepository
	Visit   VisitRepository
	Goal    GoalRepository
	Cache   AnalyticsCacheRepository
}

// NewRepositories creates all repository instances. The cache tier is chosen
// by the caller since it may live outside the database.
func NewRepositories(db *gorm.DB, cache AnalyticsCacheRepository) *Repositories {
	if cache == nil {
		cache = NewAnalyticsCacheRepository(db)
	}
	return &Repositories{
		Client:  NewClientRepository(db),
		Payment: NewPaymentRepository(db),
		Visit:   NewVisitRepository(db),
		Goal:    NewGoalRepository(db),
		Cache:   cache,
	}
}
