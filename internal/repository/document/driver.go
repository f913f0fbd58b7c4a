package document

import (
	"context"

	"dispatch/internal/docstore"
	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

// Driver document keys.
const (
	driverName     = "name"
	driverPhone    = "phone"
	driverHomeCity = "homeCity"
)

// DriverRepository is a docstore implementation of repository.DriverRepository.
type DriverRepository struct {
	store docstore.Store
}

// NewDriverRepository creates a driver repository over the drivers collection.
func NewDriverRepository(store docstore.Store) *DriverRepository {
	return &DriverRepository{store: store}
}

// List retrieves all drivers.
func (r *DriverRepository) List(ctx context.Context) ([]domain.Driver, error) {
	docs, err := r.store.List(ctx, docstore.CollectionDrivers)
	if err != nil {
		return nil, translateError("list", docstore.CollectionDrivers, err)
	}

	drivers := make([]domain.Driver, 0, len(docs))
	for _, doc := range docs {
		drivers = append(drivers, driverFromDocument(doc))
	}
	return drivers, nil
}

// Create adds a new driver document.
func (r *DriverRepository) Create(ctx context.Context, fields domain.DriverFields) (domain.Driver, error) {
	id, err := r.store.Add(ctx, docstore.CollectionDrivers, docstore.Fields{
		driverName:     fields.Name,
		driverPhone:    fields.Phone,
		driverHomeCity: fields.HomeCity,
	})
	if err != nil {
		return domain.Driver{}, translateError("create", docstore.CollectionDrivers, err)
	}

	return domain.Driver{
		ID:       id,
		Name:     fields.Name,
		Phone:    fields.Phone,
		HomeCity: fields.HomeCity,
	}, nil
}

// Update performs a direct partial write. The stored driver is not read back;
// the caller gets the submitted fields plus the ID.
func (r *DriverRepository) Update(ctx context.Context, id string, patch domain.DriverPatch) (domain.DriverPatch, error) {
	if err := r.store.Update(ctx, docstore.CollectionDrivers, id, driverPatchFields(patch)); err != nil {
		return domain.DriverPatch{}, translateError("update", docstore.CollectionDrivers, err)
	}

	patch.ID = id
	return patch, nil
}

// Delete removes a driver document.
func (r *DriverRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, docstore.CollectionDrivers, id); err != nil {
		return translateError("delete", docstore.CollectionDrivers, err)
	}
	return nil
}

func driverFromDocument(doc docstore.Document) domain.Driver {
	return domain.Driver{
		ID:       doc.ID,
		Name:     doc.Fields.String(driverName),
		Phone:    doc.Fields.String(driverPhone),
		HomeCity: doc.Fields.String(driverHomeCity),
	}
}

func driverPatchFields(patch domain.DriverPatch) docstore.Fields {
	fields := docstore.Fields{}
	if patch.Name != nil {
		fields[driverName] = *patch.Name
	}
	if patch.Phone != nil {
		fields[driverPhone] = *patch.Phone
	}
	if patch.HomeCity != nil {
		fields[driverHomeCity] = *patch.HomeCity
	}
	return fields
}

var _ repository.DriverRepository = (*DriverRepository)(nil)
