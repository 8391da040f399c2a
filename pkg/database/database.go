// Package database owns the process-scoped GORM handle. The connection pool
// is established lazily on first use and reused across requests; components
// must go through Get rather than holding their own connections.
package database

import (
	"fmt"
	"sync"

	"magicbio/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	mu     sync.Mutex
	handle *gorm.DB
)

// Get returns the shared database handle, connecting and migrating on the
// first call. Subsequent calls reuse the established pool regardless of DSN.
func Get(dsn string) (*gorm.DB, error) {
	mu.Lock()
	defer mu.Unlock()

	if handle != nil {
		return handle, nil
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Bio{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	handle = db
	return handle, nil
}

// Close tears down the shared connection pool at process shutdown.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if handle == nil {
		return nil
	}

	sqlDB, err := handle.DB()
	if err != nil {
		return fmt.Errorf("failed to access underlying connection pool: %w", err)
	}
	handle = nil

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
