package assignmenterrors

import (
	"net/http"

	"go-erp/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidEntityType = apperror.New(
		apperror.CodeInvalidInput,
		"entity type must be equipment or employee",
		http.StatusBadRequest,
	)
	ErrInvalidEntityID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid entity id",
		http.StatusBadRequest,
	)
	ErrInvalidKind = apperror.New(
		apperror.CodeInvalidInput,
		"assignment kind must be rental, project or manual",
		http.StatusBadRequest,
	)
	ErrInvalidStartDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid start date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidEndDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid end date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrRentalIDRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rental_id is required for rental assignments",
		http.StatusBadRequest,
	)
	ErrProjectIDRequired = apperror.New(
		apperror.CodeInvalidInput,
		"project_id is required for project assignments",
		http.StatusBadRequest,
	)
	ErrHourlyRateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"hourly_rate is required for equipment project assignments",
		http.StatusBadRequest,
	)
	ErrAssignmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"assignment not found",
		http.StatusNotFound,
	)
)
