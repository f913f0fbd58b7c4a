// Command seed loads a small set of drivers and cargos into the configured
// document store.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"dispatch/internal/app"
	"dispatch/internal/config"
	"dispatch/internal/docstore"
	"dispatch/internal/docstore/postgres"
	"dispatch/internal/domain"
	"dispatch/internal/repository/document"
)

type seedDriver struct {
	fields domain.DriverFields
	cargos []domain.CargoFields
}

type options struct {
	reset      bool
	withCargos bool
}

func main() {
	var opts options
	flag.BoolVar(&opts.reset, "reset", false, "delete existing drivers and cargos before seeding")
	flag.BoolVar(&opts.withCargos, "cargos", true, "seed cargos for each driver")
	flag.Parse()

	config.LoadDotEnv(6)
	cfg := config.Load()

	logger, err := app.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var db *sql.DB
	if cfg.DocStore.Backend == config.DocStorePostgres {
		db, err = app.NewDatabase(ctx, cfg.Database, nil)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()
	}

	// Seeding writes straight to the backend; the cache is bypassed.
	docCfg := cfg.DocStore
	docCfg.CacheEnabled = false
	docs, err := app.NewDocumentStore(ctx, docCfg, db, nil, logger)
	if err != nil {
		logger.Fatal("failed to initialize document store", zap.Error(err))
	}

	if db == nil {
		err = seed(ctx, docs, opts, logger)
	} else {
		err = seedInTx(ctx, db, opts, logger)
	}
	if err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
}

// seedInTx runs the whole seed in one transaction so a failure leaves the
// database untouched.
func seedInTx(ctx context.Context, db *sql.DB, opts options, logger *zap.Logger) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := seed(ctx, postgres.NewStoreWithTx(tx), opts, logger); err != nil {
		return err
	}
	return tx.Commit()
}

func seed(ctx context.Context, docs docstore.Store, opts options, logger *zap.Logger) error {
	drivers := document.NewDriverRepository(docs)
	cargos := document.NewCargoRepository(docs)

	if opts.reset {
		if err := resetCollections(ctx, drivers, cargos); err != nil {
			return fmt.Errorf("reset collections: %w", err)
		}
		logger.Info("collections reset")
	}

	now := time.Now().UTC().Truncate(time.Hour)
	var driverCount, cargoCount int
	for _, sd := range seedData(now) {
		driver, err := drivers.Create(ctx, sd.fields)
		if err != nil {
			return fmt.Errorf("add driver %q: %w", sd.fields.Name, err)
		}
		driverCount++

		if !opts.withCargos {
			continue
		}
		for _, cf := range sd.cargos {
			cf.DriverID = driver.ID
			if _, err := cargos.Create(ctx, cf); err != nil {
				return fmt.Errorf("add cargo for %s: %w", driver.ID, err)
			}
			cargoCount++
		}
	}

	logger.Info("seed complete",
		zap.Int("drivers", driverCount),
		zap.Int("cargos", cargoCount),
	)
	return nil
}

func resetCollections(ctx context.Context, drivers *document.DriverRepository, cargos *document.CargoRepository) error {
	existingCargos, err := cargos.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range existingCargos {
		if err := cargos.Delete(ctx, c.ID); err != nil {
			return err
		}
	}

	existingDrivers, err := drivers.List(ctx)
	if err != nil {
		return err
	}
	for _, d := range existingDrivers {
		if err := drivers.Delete(ctx, d.ID); err != nil {
			return err
		}
	}
	return nil
}

func seedData(now time.Time) []seedDriver {
	at := func(hours int) string {
		return now.Add(time.Duration(hours) * time.Hour).Format(time.RFC3339)
	}

	return []seedDriver{
		{
			fields: domain.DriverFields{Name: "John Smith", Phone: "+1 (555) 123-4567", HomeCity: "Chicago"},
			cargos: []domain.CargoFields{
				{PickupLocation: "Chicago", DeliveryLocation: "Dallas", PickupDateTime: at(-48), DeliveryDateTime: at(-20), Status: domain.CargoStatusDelivered, Order: 1},
				{PickupLocation: "Dallas", DeliveryLocation: "Austin", PickupDateTime: at(-6), DeliveryDateTime: at(4), Status: domain.CargoStatusPickedUp, Order: 2},
				{PickupLocation: "Austin", DeliveryLocation: "Houston", PickupDateTime: at(8), DeliveryDateTime: at(14), Status: domain.CargoStatusDispatched, Order: 3},
				{PickupLocation: "Houston", DeliveryLocation: "Memphis", PickupDateTime: at(30), DeliveryDateTime: at(44), Notes: "Liftgate required", Order: 4},
			},
		},
		{
			fields: domain.DriverFields{Name: "Maria Garcia", Phone: "+1 (555) 234-5678", HomeCity: "Phoenix"},
			cargos: []domain.CargoFields{
				{PickupLocation: "Phoenix", DeliveryLocation: "Denver", PickupDateTime: at(-72), DeliveryDateTime: at(-50), Status: domain.CargoStatusPaid, Order: 1},
				{PickupLocation: "Denver", DeliveryLocation: "Salt Lake City", PickupDateTime: at(20), DeliveryDateTime: at(32), Order: 2},
			},
		},
		{
			fields: domain.DriverFields{Name: "David Lee", Phone: "+1 (555) 345-6789", HomeCity: "Atlanta"},
		},
	}
}
