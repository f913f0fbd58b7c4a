// Package store holds the in-memory mirror of drivers and cargos, keeps it in
// step with the persistence layer and answers the per-driver derived queries.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"dispatch/internal/domain"
	"dispatch/internal/redis"
	"dispatch/internal/repository"
)

// Store is the application state container. It is safe for concurrent use.
// The mutex is never held across a repository call, so results are merged in
// the order the calls complete.
type Store struct {
	driverRepo repository.DriverRepository
	cargoRepo  repository.CargoRepository
	lockStore  redis.LockStoreInterface
	logger     *zap.Logger

	mu           sync.RWMutex
	drivers      []domain.Driver
	cargos       []domain.Cargo
	selectedDate time.Time
	inFlight     int
}

// New creates a Store with empty collections. lockStore may be nil, in which
// case reorder batches for the same driver are not serialized.
func New(
	driverRepo repository.DriverRepository,
	cargoRepo repository.CargoRepository,
	lockStore redis.LockStoreInterface,
	logger *zap.Logger,
) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		driverRepo:   driverRepo,
		cargoRepo:    cargoRepo,
		lockStore:    lockStore,
		logger:       logger,
		drivers:      []domain.Driver{},
		cargos:       []domain.Cargo{},
		selectedDate: time.Now(),
	}
}

// begin marks an operation as outstanding. The counter replaces a plain
// boolean so overlapping operations cannot clear each other's indicator.
func (s *Store) begin() {
	s.mu.Lock()
	s.inFlight++
	s.mu.Unlock()
}

func (s *Store) end() {
	s.mu.Lock()
	s.inFlight--
	s.mu.Unlock()
}

// IsLoading reports whether any fetch or mutation is outstanding.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight > 0
}

// Drivers returns a snapshot of the driver collection.
func (s *Store) Drivers() []domain.Driver {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Driver{}, s.drivers...)
}

// Cargos returns a snapshot of the cargo collection.
func (s *Store) Cargos() []domain.Cargo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Cargo{}, s.cargos...)
}

// SelectedDate returns the dispatcher's selected date.
func (s *Store) SelectedDate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedDate
}

// SetSelectedDate replaces the dispatcher's selected date.
func (s *Store) SetSelectedDate(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedDate = t
}

// Bootstrap loads both collections. Both fetches run even if one fails.
func (s *Store) Bootstrap(ctx context.Context) error {
	return errors.Join(s.FetchDrivers(ctx), s.FetchCargos(ctx))
}

// FetchDrivers replaces the driver collection with the persisted one.
func (s *Store) FetchDrivers(ctx context.Context) error {
	s.begin()
	defer s.end()

	drivers, err := s.driverRepo.List(ctx)
	if err != nil {
		s.logger.Error("fetch drivers failed", zap.Error(err))
		return err
	}
	if drivers == nil {
		drivers = []domain.Driver{}
	}

	s.mu.Lock()
	s.drivers = drivers
	s.mu.Unlock()
	return nil
}

// FetchCargos replaces the cargo collection with the persisted one.
func (s *Store) FetchCargos(ctx context.Context) error {
	s.begin()
	defer s.end()

	cargos, err := s.cargoRepo.List(ctx)
	if err != nil {
		s.logger.Error("fetch cargos failed", zap.Error(err))
		return err
	}
	if cargos == nil {
		cargos = []domain.Cargo{}
	}

	s.mu.Lock()
	s.cargos = cargos
	s.mu.Unlock()
	return nil
}
