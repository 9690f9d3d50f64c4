package payroll

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/shared/apperror"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) ComputeMonth(c *gin.Context) {
	resp, err := h.service.ComputeMonth(c.Request.Context(), c.Param("month"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Payslip(c *gin.Context) {
	resp, err := h.service.Payslip(c.Request.Context(), c.Param("employeeId"), c.Param("month"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) History(c *gin.Context) {
	resp, err := h.service.History(c.Request.Context(), c.Param("month"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// Export streams the month in the requested format: csv (default), bank
// or xlsx.
func (h *Handler) Export(c *gin.Context) {
	month := c.Param("month")
	summary, err := h.service.ComputeMonth(c.Request.Context(), month)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	format := c.DefaultQuery("format", "csv")
	var (
		payload     []byte
		contentType string
		filename    string
	)
	switch format {
	case "csv":
		payload, err = SummaryCSV(summary)
		contentType = "text/csv"
		filename = fmt.Sprintf("payroll-%s.csv", month)
	case "bank":
		payload, err = BankCSV(summary)
		contentType = "text/csv"
		filename = fmt.Sprintf("payroll-bank-%s.csv", month)
	case "xlsx":
		payload, err = SummaryXLSX(summary)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = fmt.Sprintf("payroll-%s.xlsx", month)
	default:
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "format must be one of: csv, bank, xlsx", nil)
		return
	}
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}
