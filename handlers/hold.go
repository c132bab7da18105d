package handlers

import (
	"net/http"
	"time"

	holdRepo "preen/database/repository/hold"
	"preen/models"
	"preen/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DefaultHoldTTL is how long a slot reservation blocks availability before it
// expires on its own.
const DefaultHoldTTL = 10 * time.Minute

// HoldHandler serves ephemeral slot reservations.
type HoldHandler struct {
	Store holdRepo.HoldStore

	Clock func() time.Time
}

func NewHoldHandler(store holdRepo.HoldStore) *HoldHandler {
	return &HoldHandler{Store: store}
}

func (h *HoldHandler) now() time.Time {
	if h.Clock != nil {
		return h.Clock().UTC()
	}
	return time.Now().UTC()
}

type createHoldInput struct {
	ProfessionalID string    `json:"professionalId" binding:"required"`
	ServiceID      string    `json:"serviceId"`
	Start          time.Time `json:"start" binding:"required"`
	TTLSeconds     int       `json:"ttlSeconds"`
}

// CreateHold reserves a slot for the authenticated client while they finish
// checkout. The hold expires on its own.
func (h *HoldHandler) CreateHold(c *gin.Context) {
	clientID := c.GetString("actorID")
	if clientID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "missing actor identity")
		return
	}

	var input createHoldInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	now := h.now()
	ttl := DefaultHoldTTL
	if input.TTLSeconds > 0 {
		ttl = time.Duration(input.TTLSeconds) * time.Second
	}
	if !input.Start.After(now) {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "start must be in the future")
		return
	}

	hold := &models.Hold{
		ID:             uuid.New().String(),
		ProfessionalID: input.ProfessionalID,
		ClientID:       clientID,
		ServiceID:      input.ServiceID,
		Start:          input.Start.UTC(),
		ExpiresAt:      now.Add(ttl),
	}
	if err := h.Store.CreateHold(c.Request.Context(), hold); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create hold", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"hold": hold})
}

// ReleaseHold drops a reservation before it expires.
func (h *HoldHandler) ReleaseHold(c *gin.Context) {
	professionalID := c.Query("professionalId")
	if professionalID == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", "professionalId is required")
		return
	}

	if err := h.Store.ReleaseHold(c.Request.Context(), professionalID, c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to release hold", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"released": true})
}
