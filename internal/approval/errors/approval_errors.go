package approvalerrors

import (
	"net/http"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/shared/apperror"
)

var (
	ErrInvalidMonthFormat = apperror.New(apperror.CodeInvalidInput, "month must be formatted as YYYY-MM", http.StatusBadRequest)
	ErrRoleNotAllowed     = apperror.New(apperror.CodeForbidden, "this role cannot approve the current stage", http.StatusForbidden)
	ErrStageConflict      = apperror.New(apperror.CodeConflict, "payroll month is not at the stage this role approves", http.StatusConflict)
	ErrAlreadyFinalized   = apperror.New(apperror.CodeInvalidState, "payroll month is already finalized", http.StatusConflict)
	ErrActorRequired      = apperror.New(apperror.CodeUnauthorized, "an authenticated actor is required", http.StatusUnauthorized)
)
