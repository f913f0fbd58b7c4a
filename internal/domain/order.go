package domain

import "sort"

// SortByOrder sorts cargos ascending by Order in place. Cargos with equal
// Order keep their relative position.
func SortByOrder(cargos []Cargo) {
	sort.SliceStable(cargos, func(i, j int) bool {
		return cargos[i].Order < cargos[j].Order
	})
}

// MoveCargo returns a new sequence with the cargo at index from moved to index
// to, and every cargo's Order set to its 1-based position. The input is not
// modified. Indices must be within range.
func MoveCargo(cargos []Cargo, from, to int) []Cargo {
	moved := make([]Cargo, 0, len(cargos))
	moved = append(moved, cargos[:from]...)
	moved = append(moved, cargos[from+1:]...)

	moved = append(moved, Cargo{})
	copy(moved[to+1:], moved[to:])
	moved[to] = cargos[from]

	for i := range moved {
		moved[i].Order = i + 1
	}
	return moved
}
