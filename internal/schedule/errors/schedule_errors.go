package scheduleerrors

import (
	"net/http"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time format, expected HH:MM",
		http.StatusBadRequest,
	)
	ErrInvalidDayOfWeek = apperror.New(
		apperror.CodeInvalidInput,
		"day_of_week must be between 0 and 6",
		http.StatusBadRequest,
	)
	ErrIncompleteWeek = apperror.New(
		apperror.CodeInvalidInput,
		"weekly schedule must contain exactly one entry per weekday",
		http.StatusBadRequest,
	)
	ErrNoTemplateToApply = apperror.New(
		apperror.CodeInvalidState,
		"source employee has no saved weekly schedule to apply",
		http.StatusBadRequest,
	)
	ErrNoTargetEmployees = apperror.New(
		apperror.CodeInvalidInput,
		"at least one target employee is required",
		http.StatusBadRequest,
	)
)
