package payroll

import (
	"net/http"

	"hr-portal/internal/shared/apperror"
	"hr-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("payroll.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("payroll request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetAll(c *gin.Context) {
	h.logger.Debug("http get payroll register")

	resp, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByEmployee(c *gin.Context) {
	employeeID := c.Param("employeeID")
	h.logger.Debug("http get payroll breakdown", zap.String("employee_id", employeeID))

	resp, err := h.service.GetByEmployee(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetPayslip(c *gin.Context) {
	employeeID := c.Param("employeeID")
	h.logger.Debug("http generate payslip", zap.String("employee_id", employeeID))

	pdf, err := h.service.GeneratePayslipPDF(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="payslip.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *Handler) RequestPayslip(c *gin.Context) {
	employeeID := c.Param("employeeID")
	requestedBy := c.GetString("user_id")
	h.logger.Debug("http request payslip",
		zap.String("employee_id", employeeID),
		zap.String("requested_by", requestedBy),
	)

	resp, err := h.service.RequestPayslip(c.Request.Context(), employeeID, requestedBy)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, resp, nil)
}

func (h *Handler) GetLatestPayslip(c *gin.Context) {
	employeeID := c.Param("employeeID")
	h.logger.Debug("http get stored payslip", zap.String("employee_id", employeeID))

	pdf, err := h.service.LatestStoredPayslip(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="payslip.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
