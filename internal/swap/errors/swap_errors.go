package swaperrors

import (
	"net/http"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(apperror.CodeInvalidInput, "employee id must be a valid UUID", http.StatusBadRequest)
	ErrInvalidRequestID  = apperror.New(apperror.CodeInvalidInput, "swap request id must be a valid UUID", http.StatusBadRequest)
	ErrInvalidDateFormat = apperror.New(apperror.CodeInvalidInput, "shift_date must be formatted as YYYY-MM-DD", http.StatusBadRequest)
	ErrSelfSwap          = apperror.New(apperror.CodeInvalidInput, "requester and target must be different employees", http.StatusBadRequest)
	ErrEmployeeNotFound  = apperror.New(apperror.CodeNotFound, "employee not found", http.StatusNotFound)
	ErrRequestNotFound   = apperror.New(apperror.CodeNotFound, "swap request not found", http.StatusNotFound)
	ErrNotPending        = apperror.New(apperror.CodeInvalidState, "swap request has already been decided", http.StatusConflict)
	ErrNotRequester      = apperror.New(apperror.CodeForbidden, "only the requester can cancel a swap request", http.StatusForbidden)
)
