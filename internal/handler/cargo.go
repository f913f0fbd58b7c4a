package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dispatch/internal/domain"
	"dispatch/internal/store"
)

// CargoHandler handles HTTP requests for cargos.
type CargoHandler struct {
	store *store.Store
}

// NewCargoHandler creates a new CargoHandler.
func NewCargoHandler(st *store.Store) *CargoHandler {
	return &CargoHandler{store: st}
}

// CreateCargoRequest is the HTTP request body for adding a cargo.
// An empty status becomes "booked".
type CreateCargoRequest struct {
	PickupLocation   string `json:"pickupLocation"`
	DeliveryLocation string `json:"deliveryLocation"`
	PickupDateTime   string `json:"pickupDateTime"`
	DeliveryDateTime string `json:"deliveryDateTime"`
	Notes            string `json:"notes"`
	DriverID         string `json:"driverId"`
	Status           string `json:"status"`
	Order            int    `json:"order"`
}

// UpdateCargoRequest is the HTTP request body for a partial cargo update.
type UpdateCargoRequest struct {
	PickupLocation   *string `json:"pickupLocation"`
	DeliveryLocation *string `json:"deliveryLocation"`
	PickupDateTime   *string `json:"pickupDateTime"`
	DeliveryDateTime *string `json:"deliveryDateTime"`
	Notes            *string `json:"notes"`
	DriverID         *string `json:"driverId"`
	Status           *string `json:"status"`
	Order            *int    `json:"order"`
}

// UpdateOrderRequest is the HTTP request body for moving a single cargo.
type UpdateOrderRequest struct {
	Order *int `json:"order"`
}

// CargoResponse is the HTTP response for cargo data.
type CargoResponse struct {
	ID               string `json:"id"`
	PickupLocation   string `json:"pickupLocation"`
	DeliveryLocation string `json:"deliveryLocation"`
	PickupDateTime   string `json:"pickupDateTime"`
	DeliveryDateTime string `json:"deliveryDateTime"`
	Notes            string `json:"notes"`
	DriverID         string `json:"driverId"`
	Status           string `json:"status"`
	Order            int    `json:"order"`
}

func toCargoResponse(c domain.Cargo) CargoResponse {
	return CargoResponse{
		ID:               c.ID,
		PickupLocation:   c.PickupLocation,
		DeliveryLocation: c.DeliveryLocation,
		PickupDateTime:   c.PickupDateTime,
		DeliveryDateTime: c.DeliveryDateTime,
		Notes:            c.Notes,
		DriverID:         c.DriverID,
		Status:           string(c.Status),
		Order:            c.Order,
	}
}

func toCargoResponses(cargos []domain.Cargo) []CargoResponse {
	response := make([]CargoResponse, 0, len(cargos))
	for _, c := range cargos {
		response = append(response, toCargoResponse(c))
	}
	return response
}

// GetAll handles GET /v1/cargos
func (h *CargoHandler) GetAll(c *gin.Context) {
	respondJSON(c, http.StatusOK, toCargoResponses(h.store.Cargos()))
}

// Create handles POST /v1/cargos
func (h *CargoHandler) Create(c *gin.Context) {
	var req CreateCargoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errInvalidBody)
		return
	}

	fields := domain.CargoFields{
		PickupLocation:   req.PickupLocation,
		DeliveryLocation: req.DeliveryLocation,
		PickupDateTime:   req.PickupDateTime,
		DeliveryDateTime: req.DeliveryDateTime,
		Notes:            req.Notes,
		DriverID:         req.DriverID,
		Order:            req.Order,
	}
	if req.Status != "" {
		status, err := domain.ParseCargoStatus(req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		fields.Status = status
	}
	for _, dt := range []string{req.PickupDateTime, req.DeliveryDateTime} {
		if err := validateDateTime(dt); err != nil {
			respondError(c, err)
			return
		}
	}

	cargo, err := h.store.AddCargo(c.Request.Context(), fields)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toCargoResponse(cargo))
}

// Update handles PATCH /v1/cargos/:id
func (h *CargoHandler) Update(c *gin.Context) {
	var req UpdateCargoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errInvalidBody)
		return
	}

	patch := domain.CargoPatch{
		PickupLocation:   req.PickupLocation,
		DeliveryLocation: req.DeliveryLocation,
		PickupDateTime:   req.PickupDateTime,
		DeliveryDateTime: req.DeliveryDateTime,
		Notes:            req.Notes,
		DriverID:         req.DriverID,
		Order:            req.Order,
	}
	if req.Status != nil {
		status, err := domain.ParseCargoStatus(*req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		patch.Status = &status
	}
	for _, dt := range []*string{req.PickupDateTime, req.DeliveryDateTime} {
		if dt == nil {
			continue
		}
		if err := validateDateTime(*dt); err != nil {
			respondError(c, err)
			return
		}
	}

	cargo, err := h.store.UpdateCargo(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toCargoResponse(cargo))
}

// UpdateOrder handles PUT /v1/cargos/:id/order
func (h *CargoHandler) UpdateOrder(c *gin.Context) {
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errInvalidBody)
		return
	}
	if req.Order == nil {
		respondError(c, errMissingOrder)
		return
	}

	id := c.Param("id")
	if err := h.store.UpdateCargoOrder(c.Request.Context(), id, *req.Order); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
