package leaveerrors

import (
	"net/http"

	"hr-portal/internal/shared/apperror"
)

var (
	ErrDuplicateRequest = apperror.New(
		apperror.CodeConflict,
		"A leave request already exists for this employee on this date",
		http.StatusConflict,
	)
	ErrAlreadyResolved = apperror.New(
		apperror.CodeInvalidState,
		"This leave request has already been resolved",
		http.StatusConflict,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave request id",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
)
