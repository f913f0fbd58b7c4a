package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dispatch/internal/domain"
	"dispatch/internal/store"
)

// DriverHandler handles HTTP requests for drivers and their derived views.
type DriverHandler struct {
	store *store.Store
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(st *store.Store) *DriverHandler {
	return &DriverHandler{store: st}
}

// CreateDriverRequest is the HTTP request body for adding a driver.
type CreateDriverRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	HomeCity string `json:"homeCity"`
}

// UpdateDriverRequest is the HTTP request body for a partial driver update.
type UpdateDriverRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	HomeCity *string `json:"homeCity"`
}

// ReorderRequest moves the active cargo at From to position To.
type ReorderRequest struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

// DriverResponse is the HTTP response for driver data.
type DriverResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	HomeCity string `json:"homeCity"`
}

// DriverCargosResponse is a driver's ordered cargo list and its partitions.
type DriverCargosResponse struct {
	DriverID string          `json:"driverId"`
	All      []CargoResponse `json:"all"`
	Active   []CargoResponse `json:"active"`
	Booked   []CargoResponse `json:"booked"`
	History  []CargoResponse `json:"history"`
}

// LocationResponse is a driver's last known location.
type LocationResponse struct {
	DriverID string `json:"driverId"`
	Location string `json:"location"`
}

func toDriverResponse(d domain.Driver) DriverResponse {
	return DriverResponse{
		ID:       d.ID,
		Name:     d.Name,
		Phone:    d.Phone,
		HomeCity: d.HomeCity,
	}
}

// GetAll handles GET /v1/drivers
func (h *DriverHandler) GetAll(c *gin.Context) {
	drivers := h.store.Drivers()

	response := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		response = append(response, toDriverResponse(d))
	}

	respondJSON(c, http.StatusOK, response)
}

// Create handles POST /v1/drivers
func (h *DriverHandler) Create(c *gin.Context) {
	var req CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errInvalidBody)
		return
	}

	driver, err := h.store.AddDriver(c.Request.Context(), domain.DriverFields{
		Name:     req.Name,
		Phone:    req.Phone,
		HomeCity: req.HomeCity,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toDriverResponse(driver))
}

// Update handles PATCH /v1/drivers/:id
func (h *DriverHandler) Update(c *gin.Context) {
	var req UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errInvalidBody)
		return
	}

	driver, err := h.store.UpdateDriver(c.Request.Context(), c.Param("id"), domain.DriverPatch{
		Name:     req.Name,
		Phone:    req.Phone,
		HomeCity: req.HomeCity,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toDriverResponse(driver))
}

// GetCargos handles GET /v1/drivers/:id/cargos
func (h *DriverHandler) GetCargos(c *gin.Context) {
	driverID := c.Param("id")
	all := h.store.DriverCargos(driverID)
	parts := domain.Partition(all)

	respondJSON(c, http.StatusOK, DriverCargosResponse{
		DriverID: driverID,
		All:      toCargoResponses(all),
		Active:   toCargoResponses(parts.Active),
		Booked:   toCargoResponses(parts.Booked),
		History:  toCargoResponses(parts.History),
	})
}

// GetLocation handles GET /v1/drivers/:id/location
func (h *DriverHandler) GetLocation(c *gin.Context) {
	driverID := c.Param("id")
	respondJSON(c, http.StatusOK, LocationResponse{
		DriverID: driverID,
		Location: h.store.DriverLastLocation(driverID),
	})
}

// ReorderCargos handles POST /v1/drivers/:id/cargos/reorder
func (h *DriverHandler) ReorderCargos(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errInvalidBody)
		return
	}
	if req.From == nil || req.To == nil {
		respondError(c, errMissingIndex)
		return
	}

	active, err := h.store.ReorderActiveCargos(c.Request.Context(), c.Param("id"), *req.From, *req.To)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toCargoResponses(active))
}
