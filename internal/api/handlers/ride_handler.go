package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"ridehail/internal/services"
)

type RideHandler struct {
	rideService *services.RideService
	logger      *slog.Logger
}

func NewRideHandler(rideService *services.RideService, logger *slog.Logger) *RideHandler {
	return &RideHandler{
		rideService: rideService,
		logger:      logger,
	}
}

// RequestRide handles POST /rides
func (h *RideHandler) RequestRide(c *gin.Context) {
	var req services.RequestRideInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	out, err := h.rideService.RequestRide(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, out)
}

// GetRide handles GET /rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	ride, err := h.rideService.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, ride)
}
