package settingserrors

import (
	"net/http"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/shared/apperror"
)

var (
	ErrInvalidPenaltyType  = apperror.New(apperror.CodeInvalidInput, "late_penalty_type must be per_minute or per_occurrence", http.StatusBadRequest)
	ErrInvalidHolidayDate  = apperror.New(apperror.CodeInvalidInput, "overtime holidays must be formatted as YYYY-MM-DD", http.StatusBadRequest)
	ErrNegativeAmount      = apperror.New(apperror.CodeInvalidInput, "late_penalty_amount cannot be negative", http.StatusBadRequest)
)
