package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dispatch/internal/store"
)

// StateHandler exposes the store's UI-visible state.
type StateHandler struct {
	store *store.Store
}

// NewStateHandler creates a new StateHandler.
func NewStateHandler(st *store.Store) *StateHandler {
	return &StateHandler{store: st}
}

// StateResponse is the store's loading flag, selected date and badge counts.
type StateResponse struct {
	IsLoading    bool   `json:"isLoading"`
	SelectedDate string `json:"selectedDate"`
	ActiveCount  int    `json:"activeCount"`
	BookedCount  int    `json:"bookedCount"`
}

// SelectedDateRequest is the HTTP request body for changing the selected date.
type SelectedDateRequest struct {
	SelectedDate string `json:"selectedDate"`
}

func (h *StateHandler) snapshot() StateResponse {
	counts := h.store.StatusCounts()
	return StateResponse{
		IsLoading:    h.store.IsLoading(),
		SelectedDate: h.store.SelectedDate().Format(time.RFC3339),
		ActiveCount:  counts.Active,
		BookedCount:  counts.Booked,
	}
}

// Get handles GET /v1/state
func (h *StateHandler) Get(c *gin.Context) {
	respondJSON(c, http.StatusOK, h.snapshot())
}

// SetSelectedDate handles PUT /v1/state/selected-date
func (h *StateHandler) SetSelectedDate(c *gin.Context) {
	var req SelectedDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errInvalidBody)
		return
	}

	date, err := time.Parse(time.RFC3339, req.SelectedDate)
	if err != nil {
		respondError(c, errInvalidDateTime)
		return
	}
	h.store.SetSelectedDate(date)

	respondJSON(c, http.StatusOK, h.snapshot())
}

// Sync handles POST /v1/sync by reloading both collections.
func (h *StateHandler) Sync(c *gin.Context) {
	if err := h.store.Bootstrap(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, h.snapshot())
}
