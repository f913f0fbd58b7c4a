package domain

import (
	"errors"
	"fmt"
)

// CargoStatus represents the lifecycle status of a cargo.
type CargoStatus string

const (
	CargoStatusBooked     CargoStatus = "booked"
	CargoStatusDispatched CargoStatus = "dispatched"
	CargoStatusPickedUp   CargoStatus = "pickedup"
	CargoStatusDelivered  CargoStatus = "delivered"
	CargoStatusPaid       CargoStatus = "paid"
	CargoStatusTONU       CargoStatus = "TONU" // truck ordered, not used
	CargoStatusCanceled   CargoStatus = "canceled"
)

// CargoStatuses lists every status in lifecycle order, side-states last.
var CargoStatuses = []CargoStatus{
	CargoStatusBooked,
	CargoStatusDispatched,
	CargoStatusPickedUp,
	CargoStatusDelivered,
	CargoStatusPaid,
	CargoStatusTONU,
	CargoStatusCanceled,
}

// ErrInvalidStatus is returned when a status string is not a known CargoStatus.
var ErrInvalidStatus = errors.New("invalid cargo status")

// ParseCargoStatus validates s against the closed status set.
func ParseCargoStatus(s string) (CargoStatus, error) {
	for _, status := range CargoStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Cargo represents a single transport job assigned to a driver.
type Cargo struct {
	ID               string
	PickupLocation   string
	DeliveryLocation string
	PickupDateTime   string // RFC 3339
	DeliveryDateTime string // RFC 3339
	Notes            string
	DriverID         string
	Status           CargoStatus
	Order            int // manual position among the driver's cargos
}

// CargoFields holds the fields of a cargo that is not yet persisted.
// Zero Status and Order are defaulted by the persistence layer.
type CargoFields struct {
	PickupLocation   string
	DeliveryLocation string
	PickupDateTime   string
	DeliveryDateTime string
	Notes            string
	DriverID         string
	Status           CargoStatus
	Order            int
}

// CargoPatch is a partial cargo update. Nil fields are left untouched.
type CargoPatch struct {
	PickupLocation   *string
	DeliveryLocation *string
	PickupDateTime   *string
	DeliveryDateTime *string
	Notes            *string
	DriverID         *string
	Status           *CargoStatus
	Order            *int
}

// IsEmpty reports whether the patch carries no field changes.
func (p CargoPatch) IsEmpty() bool {
	return p.PickupLocation == nil && p.DeliveryLocation == nil &&
		p.PickupDateTime == nil && p.DeliveryDateTime == nil &&
		p.Notes == nil && p.DriverID == nil && p.Status == nil && p.Order == nil
}

// Apply returns a copy of c with the non-nil patch fields written over it.
func (p CargoPatch) Apply(c Cargo) Cargo {
	if p.PickupLocation != nil {
		c.PickupLocation = *p.PickupLocation
	}
	if p.DeliveryLocation != nil {
		c.DeliveryLocation = *p.DeliveryLocation
	}
	if p.PickupDateTime != nil {
		c.PickupDateTime = *p.PickupDateTime
	}
	if p.DeliveryDateTime != nil {
		c.DeliveryDateTime = *p.DeliveryDateTime
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	if p.DriverID != nil {
		c.DriverID = *p.DriverID
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.Order != nil {
		c.Order = *p.Order
	}
	return c
}
