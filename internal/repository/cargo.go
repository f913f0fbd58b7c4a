package repository

import (
	"context"

	"dispatch/internal/domain"
)

// CargoRepository defines the persistence operations for cargos.
type CargoRepository interface {
	// List retrieves all cargos.
	List(ctx context.Context) ([]domain.Cargo, error)

	// Create persists a new cargo. A zero Status becomes booked.
	Create(ctx context.Context, fields domain.CargoFields) (domain.Cargo, error)

	// Update merges the patch over the stored cargo and returns the
	// complete merged record.
	Update(ctx context.Context, id string, patch domain.CargoPatch) (domain.Cargo, error)

	// Delete removes a cargo.
	Delete(ctx context.Context, id string) error
}
