package payrollerrors

import (
	"net/http"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/shared/apperror"
)

var (
	ErrInvalidMonthFormat = apperror.New(apperror.CodeInvalidInput, "month must be formatted as YYYY-MM", http.StatusBadRequest)
	ErrInvalidEmployeeID  = apperror.New(apperror.CodeInvalidInput, "employee id must be a valid UUID", http.StatusBadRequest)
	ErrEmployeeNotFound   = apperror.New(apperror.CodeNotFound, "employee not found", http.StatusNotFound)
	ErrNoHistoryForMonth  = apperror.New(apperror.CodeNotFound, "no finalized payroll history for this month", http.StatusNotFound)
)
