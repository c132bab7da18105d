package handlers

import (
	"errors"
	"net/http"
	"strconv"

	professionalRepo "preen/database/repository/professional"
	"preen/models"
	"preen/services/availability"
	"preen/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler serves slot queries.
type AvailabilityHandler struct {
	Service availability.AvailabilityService
}

func NewAvailabilityHandler(svc availability.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// GetAvailability returns bookable slots for a professional, optionally with
// alternates offering the same service.
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	professionalID := c.Query("professionalId")
	if professionalID == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", "professionalId is required")
		return
	}

	mode := models.LocationMode(c.Query("mode"))
	if mode != "" && mode != models.ModeSalon && mode != models.ModeMobile {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", "mode must be SALON or MOBILE")
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid request", "limit must be a number")
			return
		}
		limit = n
	}
	alternates := 0
	if raw := c.Query("alternates"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid request", "alternates must be a number")
			return
		}
		alternates = n
	}

	result, err := h.Service.GetAvailableSlots(c.Request.Context(), availability.AvailabilityRequest{
		ProfessionalID: professionalID,
		ServiceID:      c.Query("serviceId"),
		Mode:           mode,
		Limit:          limit,
		Alternates:     alternates,
	})
	if err != nil {
		if errors.Is(err, professionalRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "professional not found", professionalID)
			return
		}
		if errors.Is(err, availability.ErrServiceNotOffered) {
			utils.JSONError(c, http.StatusNotFound, "service not offered", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute availability", err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}
