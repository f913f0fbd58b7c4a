package store

import "dispatch/internal/domain"

// StatusCounts holds fleet-wide cargo counts for the active and booked partitions.
type StatusCounts struct {
	Active int
	Booked int
}

// DriverCargos returns the driver's cargos sorted ascending by order.
// Cargos sharing an order value keep their collection order.
func (s *Store) DriverCargos(driverID string) []domain.Cargo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.driverCargosLocked(driverID)
}

func (s *Store) driverCargosLocked(driverID string) []domain.Cargo {
	cargos := []domain.Cargo{}
	for _, c := range s.cargos {
		if c.DriverID == driverID {
			cargos = append(cargos, c)
		}
	}
	domain.SortByOrder(cargos)
	return cargos
}

// DriverPartitions returns the driver's ordered cargo list split into
// active, booked and history.
func (s *Store) DriverPartitions(driverID string) domain.Partitions {
	return domain.Partition(s.DriverCargos(driverID))
}

// DriverLastLocation returns the delivery location of the driver's last active
// cargo by order. Without one it falls back to the driver's home city, and to
// "" when the driver is unknown.
func (s *Store) DriverLastLocation(driverID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cargos := s.driverCargosLocked(driverID)
	for i := len(cargos) - 1; i >= 0; i-- {
		if domain.IsActive(cargos[i].Status) {
			return cargos[i].DeliveryLocation
		}
	}

	if driver, ok := s.driverLocked(driverID); ok {
		return driver.HomeCity
	}
	return ""
}

// StatusCounts counts active and booked cargos across all drivers.
func (s *Store) StatusCounts() StatusCounts {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var counts StatusCounts
	for _, c := range s.cargos {
		switch domain.PartitionOf(c.Status) {
		case domain.PartitionActive:
			counts.Active++
		case domain.PartitionBooked:
			counts.Booked++
		}
	}
	return counts
}
