package main

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"dispatch/internal/docstore"
	"dispatch/internal/domain"
)

func TestSeedResetReplacesDocuments(t *testing.T) {
	t.Parallel()

	docs := docstore.NewMemory()
	ctx := context.Background()
	opts := options{reset: true, withCargos: true}

	for i := 0; i < 2; i++ {
		if err := seed(ctx, docs, opts, zap.NewNop()); err != nil {
			t.Fatalf("seed #%d: %v", i+1, err)
		}
	}

	data := seedData(time.Now())
	wantCargos := 0
	for _, sd := range data {
		wantCargos += len(sd.cargos)
	}

	drivers, _ := docs.List(ctx, docstore.CollectionDrivers)
	cargos, _ := docs.List(ctx, docstore.CollectionCargos)
	if len(drivers) != len(data) || len(cargos) != wantCargos {
		t.Errorf("expected %d drivers and %d cargos, got %d and %d", len(data), wantCargos, len(drivers), len(cargos))
	}
}

func TestSeedDataStatusesAreValid(t *testing.T) {
	t.Parallel()

	for _, sd := range seedData(time.Now()) {
		for _, c := range sd.cargos {
			if c.Status == "" {
				continue
			}
			if _, err := domain.ParseCargoStatus(string(c.Status)); err != nil {
				t.Errorf("%s: %v", sd.fields.Name, err)
			}
		}
	}
}
