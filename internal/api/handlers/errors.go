package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"ridehail/internal/services"
)

// errorStatus maps service errors to HTTP status codes. The first match wins.
var errorStatus = []struct {
	err    error
	status int
}{
	{services.ErrDuplicateAccount, http.StatusConflict},
	{services.ErrOutstandingRide, http.StatusConflict},
	{services.ErrInvalidName, http.StatusUnprocessableEntity},
	{services.ErrInvalidEmail, http.StatusUnprocessableEntity},
	{services.ErrInvalidNationalID, http.StatusUnprocessableEntity},
	{services.ErrInvalidLicensePlate, http.StatusUnprocessableEntity},
	{services.ErrAccountNotFound, http.StatusNotFound},
	{services.ErrRideNotFound, http.StatusNotFound},
	{services.ErrNotAPassenger, http.StatusForbidden},
}

// respondError writes {"error": msg}. Known domain errors are reported by
// their sentinel message; anything else is logged and hidden behind a 500.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	if errors.Is(err, services.ErrInvalidRideRequest) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			c.JSON(e.status, gin.H{"error": e.err.Error()})
			return
		}
	}

	logger.ErrorContext(c.Request.Context(), "request failed",
		slog.String("method", c.Request.Method),
		slog.String("path", c.FullPath()),
		slog.String("error", err.Error()),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body: " + err.Error()})
}
