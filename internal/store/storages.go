package store

import "github.com/MKhiriev/go-crud-keeper/internal/logger"

// Storages groups the repositories built on one [DB].
type Storages struct {
	UserRepository UserRepository
	ItemRepository ItemRepository
	HealthChecker  HealthChecker
}

// NewStorages builds every repository on db.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository: NewUserRepository(db, logger),
		ItemRepository: NewItemRepository(db, logger),
		HealthChecker:  db,
	}
}
