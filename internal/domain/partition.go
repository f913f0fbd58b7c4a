package domain

// PartitionKind names one of the three status-derived groups of a cargo list.
type PartitionKind string

const (
	PartitionActive  PartitionKind = "active"
	PartitionBooked  PartitionKind = "booked"
	PartitionHistory PartitionKind = "history"
)

// PartitionOf returns the partition a cargo with the given status belongs to.
// Every status maps to exactly one partition.
func PartitionOf(status CargoStatus) PartitionKind {
	switch status {
	case CargoStatusDispatched, CargoStatusPickedUp:
		return PartitionActive
	case CargoStatusBooked:
		return PartitionBooked
	default:
		return PartitionHistory
	}
}

// IsActive reports whether the status puts a cargo on the road.
func IsActive(status CargoStatus) bool {
	return PartitionOf(status) == PartitionActive
}

// Partitions is a driver's cargo list split by activity, each part keeping
// the order of the input.
type Partitions struct {
	Active  []Cargo
	Booked  []Cargo
	History []Cargo
}

// Partition splits cargos into active, booked and history.
func Partition(cargos []Cargo) Partitions {
	p := Partitions{
		Active:  []Cargo{},
		Booked:  []Cargo{},
		History: []Cargo{},
	}
	for _, c := range cargos {
		switch PartitionOf(c.Status) {
		case PartitionActive:
			p.Active = append(p.Active, c)
		case PartitionBooked:
			p.Booked = append(p.Booked, c)
		default:
			p.History = append(p.History, c)
		}
	}
	return p
}
