package schedule

import (
	"errors"
	"fmt"
)

// ErrorCode is a machine-checkable rejection reason. Callers use it to
// distinguish "try a different time" from "this booking can never be edited"
// from "bad input".
type ErrorCode string

const (
	CodeNotFound            ErrorCode = "NOT_FOUND"
	CodeForbidden           ErrorCode = "FORBIDDEN"
	CodeInvalidState        ErrorCode = "INVALID_STATE"
	CodeOutsideWorkingHours ErrorCode = "OUTSIDE_WORKING_HOURS"
	CodeSchedulingConflict  ErrorCode = "SCHEDULING_CONFLICT"
	CodeValidation          ErrorCode = "VALIDATION_ERROR"
)

// ScheduleError is a rejection with a distinct code and human-readable message.
type ScheduleError struct {
	Code    ErrorCode
	Message string
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code ErrorCode, format string, args ...any) error {
	return &ScheduleError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the error code from err, if it carries one.
func CodeOf(err error) (ErrorCode, bool) {
	var se *ScheduleError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return "", false
}
