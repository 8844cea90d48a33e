package reviewerrors

import (
	"net/http"

	"hr-portal/internal/shared/apperror"
)

var (
	ErrReviewNotFound = apperror.New(
		apperror.CodeNotFound,
		"Review not found",
		http.StatusNotFound,
	)
	ErrInvalidReviewID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid review id",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
)
