package store

import (
	"context"

	"dispatch/internal/domain"
)

// Absorbing drives a Store for callers that must not see failures. Every
// error has already been logged by the Store and is dropped here; callers
// infer failure from the collections not changing.
type Absorbing struct {
	store *Store
}

// NewAbsorbing wraps s.
func NewAbsorbing(s *Store) *Absorbing {
	return &Absorbing{store: s}
}

func (a *Absorbing) Bootstrap(ctx context.Context) {
	_ = a.store.Bootstrap(ctx)
}

func (a *Absorbing) FetchDrivers(ctx context.Context) {
	_ = a.store.FetchDrivers(ctx)
}

func (a *Absorbing) FetchCargos(ctx context.Context) {
	_ = a.store.FetchCargos(ctx)
}

func (a *Absorbing) AddDriver(ctx context.Context, fields domain.DriverFields) {
	_, _ = a.store.AddDriver(ctx, fields)
}

func (a *Absorbing) AddCargo(ctx context.Context, fields domain.CargoFields) {
	_, _ = a.store.AddCargo(ctx, fields)
}

func (a *Absorbing) UpdateDriver(ctx context.Context, id string, patch domain.DriverPatch) {
	_, _ = a.store.UpdateDriver(ctx, id, patch)
}

func (a *Absorbing) UpdateCargo(ctx context.Context, id string, patch domain.CargoPatch) {
	_, _ = a.store.UpdateCargo(ctx, id, patch)
}

func (a *Absorbing) UpdateCargoOrder(ctx context.Context, id string, order int) {
	_ = a.store.UpdateCargoOrder(ctx, id, order)
}

func (a *Absorbing) ReorderActiveCargos(ctx context.Context, driverID string, from, to int) {
	_, _ = a.store.ReorderActiveCargos(ctx, driverID, from, to)
}
