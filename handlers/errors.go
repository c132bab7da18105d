package handlers

import (
	"net/http"

	"preen/services/schedule"
	"preen/utils"

	"github.com/gin-gonic/gin"
)

// respondScheduleError maps typed schedule errors onto HTTP statuses. Anything
// without a code is an internal failure.
func respondScheduleError(c *gin.Context, err error) {
	code, ok := schedule.CodeOf(err)
	if !ok {
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
		return
	}

	status := http.StatusInternalServerError
	switch code {
	case schedule.CodeNotFound:
		status = http.StatusNotFound
	case schedule.CodeForbidden:
		status = http.StatusForbidden
	case schedule.CodeInvalidState, schedule.CodeSchedulingConflict:
		status = http.StatusConflict
	case schedule.CodeOutsideWorkingHours:
		status = http.StatusUnprocessableEntity
	case schedule.CodeValidation:
		status = http.StatusBadRequest
	}
	utils.JSONErrorCode(c, status, string(code), err.Error())
}
