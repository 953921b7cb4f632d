// README: Itinerary handlers for list/get/create/update/delete.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"eztravel/internal/http/middleware"
	"eztravel/internal/modules/itinerary"
)

type ItineraryService interface {
	Create(ctx context.Context, cmd itinerary.CreateCommand) (*itinerary.Created, error)
	Get(ctx context.Context, id int64) (*itinerary.Itinerary, error)
	ListByUser(ctx context.Context, userID int64) ([]itinerary.Itinerary, error)
	Update(ctx context.Context, id int64, cmd itinerary.UpdateCommand) error
	Delete(ctx context.Context, id int64) error
}

type ItineraryHandler struct {
	itineraries ItineraryService
	log         *slog.Logger
}

func NewItineraryHandler(svc ItineraryService, logger *slog.Logger) *ItineraryHandler {
	return &ItineraryHandler{itineraries: svc, log: logger}
}

type createItineraryReq struct {
	UserID       int64    `json:"userId" binding:"required,gt=0"`
	HasDest      bool     `json:"hasDest"`
	Destination  string   `json:"destination" binding:"required_if=HasDest true"`
	Days         int      `json:"days" binding:"required,gt=0"`
	Weather      string   `json:"weather"`
	Activities   []string `json:"activities"`
	CostRange    []int64  `json:"costRange" binding:"max=2"`
	CurrLocation string   `json:"currLocation"`
}

type updateItineraryReq struct {
	Title    string          `json:"title" binding:"required"`
	Location string          `json:"location" binding:"required"`
	Days     int             `json:"days" binding:"required,gt=0"`
	Data     json.RawMessage `json:"data"`
}

// List handles GET /itineraries?userId=.
func (h *ItineraryHandler) List(c *gin.Context) {
	raw := c.Query("userId")
	if raw == "" {
		writeError(c, http.StatusBadRequest, "Missing userId")
		return
	}
	userID, ok := parseID(raw)
	if !ok {
		writeError(c, http.StatusBadRequest, "Invalid userId")
		return
	}
	list, err := h.itineraries.ListByUser(detached(c), userID)
	if err != nil {
		h.writeItineraryError(c, err, "Failed to get itineraries")
		return
	}
	writeJSON(c, http.StatusOK, list)
}

// Get handles GET /itineraries/:id.
func (h *ItineraryHandler) Get(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		writeError(c, http.StatusBadRequest, "Invalid itinerary id")
		return
	}
	it, err := h.itineraries.Get(detached(c), id)
	if err != nil {
		h.writeItineraryError(c, err, "Failed to get itinerary")
		return
	}
	writeJSON(c, http.StatusOK, it)
}

// Create handles POST /itineraries.
func (h *ItineraryHandler) Create(c *gin.Context) {
	var req createItineraryReq
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.itineraries.Create(detached(c), itinerary.CreateCommand{
		UserID:       req.UserID,
		HasDest:      req.HasDest,
		Destination:  req.Destination,
		Days:         req.Days,
		Weather:      req.Weather,
		Activities:   req.Activities,
		CostRange:    req.CostRange,
		CurrLocation: req.CurrLocation,
	})
	if err != nil {
		h.writeItineraryError(c, err, "Failed to create itinerary")
		return
	}
	writeJSON(c, http.StatusCreated, out)
}

// Update handles PUT /itineraries/:id.
func (h *ItineraryHandler) Update(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		writeError(c, http.StatusBadRequest, "Invalid itinerary id")
		return
	}
	var req updateItineraryReq
	if !bindJSON(c, &req) {
		return
	}
	err := h.itineraries.Update(detached(c), id, itinerary.UpdateCommand{
		Title:    req.Title,
		Location: req.Location,
		Days:     req.Days,
		Data:     req.Data,
	})
	if err != nil {
		h.writeItineraryError(c, err, "Failed to update itinerary")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"updated": true})
}

// Delete handles DELETE /itineraries/:id.
func (h *ItineraryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		writeError(c, http.StatusBadRequest, "Invalid itinerary id")
		return
	}
	if err := h.itineraries.Delete(detached(c), id); err != nil {
		h.writeItineraryError(c, err, "Failed to delete itinerary")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *ItineraryHandler) writeItineraryError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, itinerary.ErrBadRequest):
		writeError(c, http.StatusBadRequest, "missing or invalid fields")
	case errors.Is(err, itinerary.ErrPromptBlocked):
		writeError(c, http.StatusBadRequest, "Request rejected by content filter")
	case errors.Is(err, itinerary.ErrNotFound):
		writeError(c, http.StatusNotFound, "Itinerary not found")
	default:
		h.log.Error(fallback, "request_id", middleware.RequestIDFrom(c), "error", err)
		writeError(c, http.StatusInternalServerError, fallback)
	}
}
