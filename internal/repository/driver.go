package repository

import (
	"context"

	"dispatch/internal/domain"
)

// DriverRepository defines the persistence operations for drivers.
type DriverRepository interface {
	// List retrieves all drivers.
	List(ctx context.Context) ([]domain.Driver, error)

	// Create persists a new driver and returns it with its assigned ID.
	Create(ctx context.Context, fields domain.DriverFields) (domain.Driver, error)

	// Update writes the patch without re-reading the stored driver and
	// returns the patch echoed back with the ID set.
	Update(ctx context.Context, id string, patch domain.DriverPatch) (domain.DriverPatch, error)

	// Delete removes a driver.
	Delete(ctx context.Context, id string) error
}
