package document

import (
	"context"

	"dispatch/internal/docstore"
	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

// Cargo document keys.
const (
	cargoPickupLocation   = "pickupLocation"
	cargoDeliveryLocation = "deliveryLocation"
	cargoPickupDateTime   = "pickupDateTime"
	cargoDeliveryDateTime = "deliveryDateTime"
	cargoNotes            = "notes"
	cargoDriverID         = "driverId"
	cargoStatus           = "status"
	cargoOrder            = "order"
)

// CargoRepository is a docstore implementation of repository.CargoRepository.
type CargoRepository struct {
	store docstore.Store
}

// NewCargoRepository creates a cargo repository over the cargos collection.
func NewCargoRepository(store docstore.Store) *CargoRepository {
	return &CargoRepository{store: store}
}

// List retrieves all cargos.
func (r *CargoRepository) List(ctx context.Context) ([]domain.Cargo, error) {
	docs, err := r.store.List(ctx, docstore.CollectionCargos)
	if err != nil {
		return nil, translateError("list", docstore.CollectionCargos, err)
	}

	cargos := make([]domain.Cargo, 0, len(docs))
	for _, doc := range docs {
		cargos = append(cargos, cargoFromDocument(doc))
	}
	return cargos, nil
}

// Create adds a new cargo document. Status defaults to booked; an unset
// Order is already 0.
func (r *CargoRepository) Create(ctx context.Context, fields domain.CargoFields) (domain.Cargo, error) {
	if fields.Status == "" {
		fields.Status = domain.CargoStatusBooked
	}

	cargo := domain.Cargo{
		PickupLocation:   fields.PickupLocation,
		DeliveryLocation: fields.DeliveryLocation,
		PickupDateTime:   fields.PickupDateTime,
		DeliveryDateTime: fields.DeliveryDateTime,
		Notes:            fields.Notes,
		DriverID:         fields.DriverID,
		Status:           fields.Status,
		Order:            fields.Order,
	}

	id, err := r.store.Add(ctx, docstore.CollectionCargos, cargoFields(cargo))
	if err != nil {
		return domain.Cargo{}, translateError("create", docstore.CollectionCargos, err)
	}

	cargo.ID = id
	return cargo, nil
}

// Update reads the stored cargo, merges the patch over it locally, writes the
// whole merged document back and returns it. The read skips the document
// cache so a stale snapshot is never written back.
func (r *CargoRepository) Update(ctx context.Context, id string, patch domain.CargoPatch) (domain.Cargo, error) {
	doc, err := docstore.GetFresh(ctx, r.store, docstore.CollectionCargos, id)
	if err != nil {
		return domain.Cargo{}, translateError("get", docstore.CollectionCargos, err)
	}

	merged := doc.Fields.Merge(cargoPatchFields(patch))
	if err := r.store.Update(ctx, docstore.CollectionCargos, id, merged); err != nil {
		return domain.Cargo{}, translateError("update", docstore.CollectionCargos, err)
	}

	return cargoFromDocument(docstore.Document{ID: id, Fields: merged}), nil
}

// Delete removes a cargo document.
func (r *CargoRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, docstore.CollectionCargos, id); err != nil {
		return translateError("delete", docstore.CollectionCargos, err)
	}
	return nil
}

func cargoFromDocument(doc docstore.Document) domain.Cargo {
	return domain.Cargo{
		ID:               doc.ID,
		PickupLocation:   doc.Fields.String(cargoPickupLocation),
		DeliveryLocation: doc.Fields.String(cargoDeliveryLocation),
		PickupDateTime:   doc.Fields.String(cargoPickupDateTime),
		DeliveryDateTime: doc.Fields.String(cargoDeliveryDateTime),
		Notes:            doc.Fields.String(cargoNotes),
		DriverID:         doc.Fields.String(cargoDriverID),
		Status:           domain.CargoStatus(doc.Fields.String(cargoStatus)),
		Order:            doc.Fields.Int(cargoOrder),
	}
}

func cargoFields(c domain.Cargo) docstore.Fields {
	return docstore.Fields{
		cargoPickupLocation:   c.PickupLocation,
		cargoDeliveryLocation: c.DeliveryLocation,
		cargoPickupDateTime:   c.PickupDateTime,
		cargoDeliveryDateTime: c.DeliveryDateTime,
		cargoNotes:            c.Notes,
		cargoDriverID:         c.DriverID,
		cargoStatus:           string(c.Status),
		cargoOrder:            c.Order,
	}
}

func cargoPatchFields(patch domain.CargoPatch) docstore.Fields {
	fields := docstore.Fields{}
	if patch.PickupLocation != nil {
		fields[cargoPickupLocation] = *patch.PickupLocation
	}
	if patch.DeliveryLocation != nil {
		fields[cargoDeliveryLocation] = *patch.DeliveryLocation
	}
	if patch.PickupDateTime != nil {
		fields[cargoPickupDateTime] = *patch.PickupDateTime
	}
	if patch.DeliveryDateTime != nil {
		fields[cargoDeliveryDateTime] = *patch.DeliveryDateTime
	}
	if patch.Notes != nil {
		fields[cargoNotes] = *patch.Notes
	}
	if patch.DriverID != nil {
		fields[cargoDriverID] = *patch.DriverID
	}
	if patch.Status != nil {
		fields[cargoStatus] = string(*patch.Status)
	}
	if patch.Order != nil {
		fields[cargoOrder] = *patch.Order
	}
	return fields
}

var _ repository.CargoRepository = (*CargoRepository)(nil)
