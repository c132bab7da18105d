package handlers

import (
	"net/http"
	"time"

	"preen/models"
	"preen/services/schedule"
	"preen/utils"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler serves the booking mutation endpoints.
type ScheduleHandler struct {
	Service schedule.ScheduleService
}

func NewScheduleHandler(svc schedule.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{Service: svc}
}

// actorFromContext reads the identity the auth middleware stored.
func actorFromContext(c *gin.Context) (schedule.Actor, bool) {
	id := c.GetString("actorID")
	role := c.GetString("actorRole")
	if id == "" {
		return schedule.Actor{}, false
	}
	return schedule.Actor{ID: id, Role: role}, true
}

type rescheduleInput struct {
	NewStart             *time.Time           `json:"newStart"`
	NewDurationMinutes   *int                 `json:"newDurationMinutes"`
	NewBufferMinutes     *int                 `json:"newBufferMinutes"`
	Items                []models.BookingItem `json:"items"`
	OverrideWorkingHours bool                 `json:"overrideWorkingHours"`
	NotifyClient         bool                 `json:"notifyClient"`
}

// Reschedule applies a validated schedule change to an existing booking.
func (h *ScheduleHandler) Reschedule(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "missing actor identity")
		return
	}

	var input rescheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	booking, err := h.Service.Reschedule(c.Request.Context(), schedule.RescheduleRequest{
		BookingID:            c.Param("id"),
		Actor:                actor,
		NewStart:             input.NewStart,
		NewDurationMinutes:   input.NewDurationMinutes,
		NewBufferMinutes:     input.NewBufferMinutes,
		Items:                input.Items,
		OverrideWorkingHours: input.OverrideWorkingHours,
		NotifyClient:         input.NotifyClient,
	})
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

type rebookInput struct {
	Mode            string     `json:"mode"`
	Date            *time.Time `json:"date"`
	LinkedBookingID string     `json:"linkedBookingId"`
	WindowStart     *time.Time `json:"windowStart"`
	WindowEnd       *time.Time `json:"windowEnd"`
}

// Rebook records a standalone rebook decision for a finished session.
func (h *ScheduleHandler) Rebook(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "missing actor identity")
		return
	}

	var input rebookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Service.ApplyRebook(c.Request.Context(), schedule.RebookRequest{
		BookingID: c.Param("id"),
		Actor:     actor,
		Decision: schedule.RebookDecision{
			Mode:            input.Mode,
			Date:            input.Date,
			LinkedBookingID: input.LinkedBookingID,
			WindowStart:     input.WindowStart,
			WindowEnd:       input.WindowEnd,
		},
	})
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"record":            result.Record,
		"followUpBookingId": result.FollowUpBookingID,
	})
}

type aftercareInput struct {
	Notes     string      `json:"notes"`
	Rebook    rebookInput `json:"rebook"`
	Reminders struct {
		RebookEnabled          bool `json:"rebookEnabled"`
		RebookLeadDays         int  `json:"rebookLeadDays"`
		ProductFollowupEnabled bool `json:"productFollowupEnabled"`
		ProductFollowupDays    int  `json:"productFollowupDays"`
	} `json:"reminders"`
	Products     []models.RecommendedProduct `json:"products"`
	SendToClient bool                        `json:"sendToClient"`
}

// SubmitAftercare records notes, products, the rebook decision and derived
// reminders in one submission.
func (h *ScheduleHandler) SubmitAftercare(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "missing actor identity")
		return
	}

	var input aftercareInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Service.SubmitAftercare(c.Request.Context(), schedule.AftercareRequest{
		BookingID: c.Param("id"),
		Actor:     actor,
		Notes:     input.Notes,
		Rebook: schedule.RebookDecision{
			Mode:            input.Rebook.Mode,
			Date:            input.Rebook.Date,
			LinkedBookingID: input.Rebook.LinkedBookingID,
			WindowStart:     input.Rebook.WindowStart,
			WindowEnd:       input.Rebook.WindowEnd,
		},
		Reminders: schedule.ReminderSettings{
			RebookEnabled:          input.Reminders.RebookEnabled,
			RebookLeadDays:         input.Reminders.RebookLeadDays,
			ProductFollowupEnabled: input.Reminders.ProductFollowupEnabled,
			ProductFollowupDays:    input.Reminders.ProductFollowupDays,
		},
		Products:     input.Products,
		SendToClient: input.SendToClient,
	})
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
