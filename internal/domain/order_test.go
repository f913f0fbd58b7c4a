package domain

import (
	"reflect"
	"testing"
)

func TestSortByOrderIsStable(t *testing.T) {
	t.Parallel()

	cargos := []Cargo{
		{ID: "a", Order: 2},
		{ID: "b", Order: 0},
		{ID: "c", Order: 2},
		{ID: "d", Order: 1},
		{ID: "e", Order: 0},
	}
	SortByOrder(cargos)

	var ids []string
	for _, c := range cargos {
		ids = append(ids, c.ID)
	}
	if want := []string{"b", "e", "d", "a", "c"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("expected %v, got %v", want, ids)
	}
}

func TestMoveCargo(t *testing.T) {
	t.Parallel()

	base := []Cargo{{ID: "a", Order: 7}, {ID: "b", Order: 3}, {ID: "c", Order: 9}, {ID: "d", Order: 1}}

	testCases := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"down", 0, 2, []string{"b", "c", "a", "d"}},
		{"up", 3, 1, []string{"a", "d", "b", "c"}},
		{"to end", 1, 3, []string{"a", "c", "d", "b"}},
		{"to start", 2, 0, []string{"c", "a", "b", "d"}},
		{"same", 1, 1, []string{"a", "b", "c", "d"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := MoveCargo(base, tc.from, tc.to)

			var ids []string
			for i, c := range got {
				ids = append(ids, c.ID)
				if c.Order != i+1 {
					t.Errorf("expected order %d at %d, got %d", i+1, i, c.Order)
				}
			}
			if !reflect.DeepEqual(ids, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, ids)
			}
		})
	}

	if base[0].ID != "a" || base[0].Order != 7 {
		t.Error("input was modified")
	}
}
