package docstore

import (
	"encoding/json"
	"testing"
)

func TestFieldsInt(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		value any
		want  int
	}{
		{"int", 3, 3},
		{"int64", int64(4), 4},
		{"float64", float64(5), 5},
		{"json number", json.Number("6"), 6},
		{"numeric string", "7", 7},
		{"missing", nil, 0},
		{"wrong type", true, 0},
	}

	for _, tc := range testCases {
		f := Fields{}
		if tc.value != nil {
			f["order"] = tc.value
		}
		if got := f.Int("order"); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestFieldsMergeDoesNotMutate(t *testing.T) {
	t.Parallel()

	base := Fields{"a": "1", "b": "2"}
	merged := base.Merge(Fields{"b": "3", "c": "4"})

	if base.String("b") != "2" || len(base) != 2 {
		t.Errorf("base was mutated: %v", base)
	}
	if merged.String("a") != "1" || merged.String("b") != "3" || merged.String("c") != "4" {
		t.Errorf("unexpected merge result: %v", merged)
	}
}
