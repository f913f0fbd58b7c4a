package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseCargoStatus(t *testing.T) {
	t.Parallel()

	for _, status := range CargoStatuses {
		got, err := ParseCargoStatus(string(status))
		if err != nil || got != status {
			t.Errorf("ParseCargoStatus(%q) = %q, %v", status, got, err)
		}
	}

	for _, bad := range []string{"", "Booked", "tonu", "lost"} {
		if _, err := ParseCargoStatus(bad); !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("ParseCargoStatus(%q): expected ErrInvalidStatus, got %v", bad, err)
		}
	}
}

func TestPartitionOf(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		status CargoStatus
		want   PartitionKind
	}{
		{CargoStatusBooked, PartitionBooked},
		{CargoStatusDispatched, PartitionActive},
		{CargoStatusPickedUp, PartitionActive},
		{CargoStatusDelivered, PartitionHistory},
		{CargoStatusPaid, PartitionHistory},
		{CargoStatusTONU, PartitionHistory},
		{CargoStatusCanceled, PartitionHistory},
	}

	for _, tc := range testCases {
		if got := PartitionOf(tc.status); got != tc.want {
			t.Errorf("PartitionOf(%q) = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestPartitionKeepsInputOrder(t *testing.T) {
	t.Parallel()

	cargos := []Cargo{
		{ID: "1", Status: CargoStatusBooked},
		{ID: "2", Status: CargoStatusPickedUp},
		{ID: "3", Status: CargoStatusPaid},
		{ID: "4", Status: CargoStatusDispatched},
		{ID: "5", Status: CargoStatusBooked},
	}

	p := Partition(cargos)

	ids := func(cs []Cargo) []string {
		out := []string{}
		for _, c := range cs {
			out = append(out, c.ID)
		}
		return out
	}
	if got := ids(p.Active); !reflect.DeepEqual(got, []string{"2", "4"}) {
		t.Errorf("active = %v", got)
	}
	if got := ids(p.Booked); !reflect.DeepEqual(got, []string{"1", "5"}) {
		t.Errorf("booked = %v", got)
	}
	if got := ids(p.History); !reflect.DeepEqual(got, []string{"3"}) {
		t.Errorf("history = %v", got)
	}
}

func TestCargoPatchApply(t *testing.T) {
	t.Parallel()

	original := Cargo{ID: "c1", PickupLocation: "Dallas", Notes: "n", Status: CargoStatusBooked, Order: 2}

	if !(CargoPatch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}
	if got := (CargoPatch{}).Apply(original); got != original {
		t.Errorf("empty patch changed cargo: %+v", got)
	}

	status := CargoStatusDispatched
	order := 0
	notes := ""
	patch := CargoPatch{Status: &status, Order: &order, Notes: &notes}
	if patch.IsEmpty() {
		t.Error("patch should not be empty")
	}

	got := patch.Apply(original)
	want := Cargo{ID: "c1", PickupLocation: "Dallas", Notes: "", Status: CargoStatusDispatched, Order: 0}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestDriverPatchApply(t *testing.T) {
	t.Parallel()

	city := "Austin"
	got := DriverPatch{HomeCity: &city}.Apply(Driver{ID: "d1", Name: "Ann", HomeCity: "Dallas"})
	want := Driver{ID: "d1", Name: "Ann", HomeCity: "Austin"}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}
