package attendanceerrors

import (
	"net/http"

	"hr-portal/internal/shared/apperror"
)

var (
	ErrDuplicateAttendance = apperror.New(
		apperror.CodeConflict,
		"Attendance is already recorded for this employee on this date",
		http.StatusConflict,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
)
