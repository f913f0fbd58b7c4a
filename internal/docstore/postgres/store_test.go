package postgres

import (
	"strings"
	"testing"

	"dispatch/internal/docstore"
)

func TestEncodeDecodeKeepsIntegerOrder(t *testing.T) {
	t.Parallel()

	encoded, err := encodeFields(docstore.Fields{"status": "booked", "order": 12})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	fields, err := decodeFields([]byte(encoded))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fields.Int("order") != 12 || fields.String("status") != "booked" {
		t.Errorf("unexpected fields: %v", fields)
	}
}

func TestEncodeNilFieldsIsEmptyObject(t *testing.T) {
	t.Parallel()

	encoded, err := encodeFields(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if encoded != "{}" {
		t.Errorf("expected {}, got %s", encoded)
	}
}

func TestDecodeRejectsInvalidJSON(t *testing.T) {
	t.Parallel()

	if _, err := decodeFields([]byte("not json")); err == nil {
		t.Error("expected decode error")
	}
}

func TestMigrationsAreEmbedded(t *testing.T) {
	t.Parallel()

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}

	ups, downs := 0, 0
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}
	if ups == 0 || ups != downs {
		t.Errorf("expected matching up/down migrations, got %d up and %d down", ups, downs)
	}
}
