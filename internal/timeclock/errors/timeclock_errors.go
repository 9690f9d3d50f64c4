package timeclockerrors

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
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeConflict,
		"clock out is required before clocking in again",
		http.StatusConflict,
	)
	ErrNoOpenLog = apperror.New(
		apperror.CodeInvalidState,
		"no open clock-in found for this employee",
		http.StatusBadRequest,
	)
	ErrInvalidTimestamp = apperror.New(
		apperror.CodeInvalidInput,
		"invalid timestamp, expected RFC3339",
		http.StatusBadRequest,
	)
	ErrClockOutBeforeIn = apperror.New(
		apperror.CodeInvalidInput,
		"clock out time must be after clock in time",
		http.StatusBadRequest,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"a reason is required for manual time entries",
		http.StatusBadRequest,
	)
	ErrOverlappingLog = apperror.New(
		apperror.CodeConflict,
		"time log overlaps an existing session",
		http.StatusConflict,
	)
	ErrBranchMismatch = apperror.New(
		apperror.CodeForbidden,
		"employee is not assigned to this branch",
		http.StatusForbidden,
	)
	ErrNoMatchingEmployee = apperror.New(
		apperror.CodeNotFound,
		"no employee matches that code or PIN",
		http.StatusNotFound,
	)
)
