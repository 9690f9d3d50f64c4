package employeeerrors

import (
	"net/http"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(apperror.CodeInvalidInput, "employee id must be a valid UUID", http.StatusBadRequest)
	ErrEmployeeNotFound  = apperror.New(apperror.CodeNotFound, "employee not found", http.StatusNotFound)
)
