package attendance

import (
	"net/http"
	"time"

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

func (h *Handler) Day(c *gin.Context) {
	resp, err := h.service.Day(c.Request.Context(), c.Param("employeeId"), dateOrToday(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DailyBoard(c *gin.Context) {
	resp, err := h.service.DailyBoard(c.Request.Context(), dateOrToday(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Summary(c *gin.Context) {
	period := c.DefaultQuery("period", PeriodDaily)
	resp, err := h.service.Summary(c.Request.Context(), period, dateOrToday(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func dateOrToday(c *gin.Context) string {
	if date := c.Query("date"); date != "" {
		return date
	}
	return time.Now().UTC().Format(dateLayout)
}
