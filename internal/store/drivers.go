package store

import (
	"context"

	"go.uber.org/zap"

	"dispatch/internal/domain"
)

// AddDriver persists a new driver and appends it to the collection.
func (s *Store) AddDriver(ctx context.Context, fields domain.DriverFields) (domain.Driver, error) {
	s.begin()
	defer s.end()

	driver, err := s.driverRepo.Create(ctx, fields)
	if err != nil {
		s.logger.Error("add driver failed", zap.Error(err))
		return domain.Driver{}, err
	}

	s.mu.Lock()
	s.drivers = append(s.drivers, driver)
	s.mu.Unlock()
	return driver, nil
}

// UpdateDriver persists a partial driver update. The repository echoes the
// submitted fields back without re-reading, so the echo is merged onto the
// in-memory record rather than replacing it.
func (s *Store) UpdateDriver(ctx context.Context, id string, patch domain.DriverPatch) (domain.Driver, error) {
	if id == "" {
		return domain.Driver{}, ErrInvalidDriverID
	}

	s.begin()
	defer s.end()

	echo, err := s.driverRepo.Update(ctx, id, patch)
	if err != nil {
		s.logger.Error("update driver failed", zap.String("driver_id", id), zap.Error(err))
		return domain.Driver{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := echo.Apply(domain.Driver{ID: echo.ID})
	for i := range s.drivers {
		if s.drivers[i].ID == echo.ID {
			s.drivers[i] = echo.Apply(s.drivers[i])
			merged = s.drivers[i]
		}
	}
	return merged, nil
}

// Driver returns the driver with the given ID.
func (s *Store) Driver(id string) (domain.Driver, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.driverLocked(id)
}

func (s *Store) driverLocked(id string) (domain.Driver, bool) {
	for _, d := range s.drivers {
		if d.ID == id {
			return d, true
		}
	}
	return domain.Driver{}, false
}
