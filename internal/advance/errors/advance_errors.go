package advanceerrors

import (
	"net/http"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID  = apperror.New(apperror.CodeInvalidInput, "employee id must be a valid UUID", http.StatusBadRequest)
	ErrInvalidAdvanceID   = apperror.New(apperror.CodeInvalidInput, "advance id must be a valid UUID", http.StatusBadRequest)
	ErrInvalidAmount      = apperror.New(apperror.CodeInvalidInput, "amount must be greater than zero", http.StatusBadRequest)
	ErrInvalidDeduction   = apperror.New(apperror.CodeInvalidInput, "monthly_deduction must be between zero and the advance amount", http.StatusBadRequest)
	ErrInvalidPaidAt      = apperror.New(apperror.CodeInvalidInput, "paid_at must be an RFC3339 timestamp", http.StatusBadRequest)
	ErrInvalidRequestedAt = apperror.New(apperror.CodeInvalidInput, "requested_at must be an RFC3339 timestamp", http.StatusBadRequest)
	ErrEmployeeNotFound   = apperror.New(apperror.CodeNotFound, "employee not found", http.StatusNotFound)
	ErrAdvanceNotFound    = apperror.New(apperror.CodeNotFound, "salary advance not found", http.StatusNotFound)
	ErrAdvanceNotOpen     = apperror.New(apperror.CodeInvalidState, "salary advance is not open", http.StatusConflict)
	ErrAdvanceCancelled   = apperror.New(apperror.CodeInvalidState, "salary advance has been cancelled", http.StatusConflict)
	ErrAdvanceHasPayments = apperror.New(apperror.CodeInvalidState, "salary advance with recorded payments cannot be cancelled", http.StatusConflict)
)
