package store

import (
	"context"
	"time"

	"go.uber.org/zap"

	"dispatch/internal/domain"
)

const reorderLockTTL = 30 * time.Second

// ReorderActiveCargos moves the active cargo at index from to index to,
// renumbers the whole active list 1..N and persists every item's new order.
// It returns the driver's active list as read back from the store.
//
// Items are written one at a time; if a write fails the remaining items keep
// their previous order and the error is returned.
func (s *Store) ReorderActiveCargos(ctx context.Context, driverID string, from, to int) ([]domain.Cargo, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	s.begin()
	defer s.end()

	if s.lockStore != nil {
		token, err := s.lockStore.AcquireReorderLock(ctx, driverID, reorderLockTTL)
		if err != nil {
			s.logger.Error("acquire reorder lock failed", zap.String("driver_id", driverID), zap.Error(err))
			return nil, err
		}
		if token == "" {
			return nil, ErrReorderInProgress
		}
		defer func() {
			if err := s.lockStore.ReleaseReorderLock(context.WithoutCancel(ctx), driverID, token); err != nil {
				s.logger.Warn("release reorder lock failed", zap.String("driver_id", driverID), zap.Error(err))
			}
		}()
	}

	active := s.DriverPartitions(driverID).Active
	if from < 0 || from >= len(active) || to < 0 || to >= len(active) {
		return nil, ErrInvalidIndex
	}
	if from == to {
		return active, nil
	}

	for _, cargo := range domain.MoveCargo(active, from, to) {
		if err := s.UpdateCargoOrder(ctx, cargo.ID, cargo.Order); err != nil {
			return nil, err
		}
	}

	s.logger.Info("active cargos reordered",
		zap.String("driver_id", driverID),
		zap.Int("from", from),
		zap.Int("to", to),
	)
	return s.DriverPartitions(driverID).Active, nil
}
