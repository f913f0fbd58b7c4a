package store

import (
	"context"

	"go.uber.org/zap"

	"dispatch/internal/domain"
)

// AddCargo persists a new cargo and appends it to the collection.
func (s *Store) AddCargo(ctx context.Context, fields domain.CargoFields) (domain.Cargo, error) {
	if fields.DriverID == "" {
		return domain.Cargo{}, ErrInvalidDriverID
	}

	s.begin()
	defer s.end()

	cargo, err := s.cargoRepo.Create(ctx, fields)
	if err != nil {
		s.logger.Error("add cargo failed", zap.String("driver_id", fields.DriverID), zap.Error(err))
		return domain.Cargo{}, err
	}

	s.mu.Lock()
	s.cargos = append(s.cargos, cargo)
	s.mu.Unlock()
	return cargo, nil
}

// UpdateCargo persists a partial cargo update. The repository returns the
// fully merged stored record, which replaces the in-memory one.
func (s *Store) UpdateCargo(ctx context.Context, id string, patch domain.CargoPatch) (domain.Cargo, error) {
	if id == "" {
		return domain.Cargo{}, ErrInvalidCargoID
	}

	s.begin()
	defer s.end()

	cargo, err := s.cargoRepo.Update(ctx, id, patch)
	if err != nil {
		s.logger.Error("update cargo failed", zap.String("cargo_id", id), zap.Error(err))
		return domain.Cargo{}, err
	}

	s.mu.Lock()
	for i := range s.cargos {
		if s.cargos[i].ID == cargo.ID {
			s.cargos[i] = cargo
		}
	}
	s.mu.Unlock()
	return cargo, nil
}

// UpdateCargoOrder persists a new order value. Only the order field of the
// in-memory cargo is patched; the returned record is not merged.
func (s *Store) UpdateCargoOrder(ctx context.Context, id string, order int) error {
	if id == "" {
		return ErrInvalidCargoID
	}

	s.begin()
	defer s.end()

	if _, err := s.cargoRepo.Update(ctx, id, domain.CargoPatch{Order: &order}); err != nil {
		s.logger.Error("update cargo order failed", zap.String("cargo_id", id), zap.Int("order", order), zap.Error(err))
		return err
	}

	s.mu.Lock()
	for i := range s.cargos {
		if s.cargos[i].ID == id {
			s.cargos[i].Order = order
		}
	}
	s.mu.Unlock()
	return nil
}

// Cargo returns the cargo with the given ID.
func (s *Store) Cargo(id string) (domain.Cargo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cargos {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Cargo{}, false
}
