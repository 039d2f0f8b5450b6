package handlers

import (
	"net/http"

	"marketing-service/internal/models"
	"marketing-service/internal/services"
	"marketing-service/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InvoiceHandler struct {
	invoiceService *services.InvoiceService
	middleware     *Middleware
}

func NewInvoiceHandler(invoiceService *services.InvoiceService, middleware *Middleware) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		middleware:     middleware,
	}
}

func (h *InvoiceHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	protected.GET("/projects/:id/invoices", h.ListByProject)
	protected.POST("/projects/:id/invoices", h.Create)
	protected.PUT("/invoices/:id", h.Update)
	protected.DELETE("/invoices/:id", h.middleware.RequireRoles(models.ElevatedRoles...), h.Delete)
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_PROJECT_ID", "invalid project id"))
		return
	}

	var req models.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST", "vendor, amount and issue_date are required"))
		return
	}

	identity := identityFromContext(c)
	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), identity.UserID, projectID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVOICE_CREATE_FAILED", err.Error()))
		return
	}
	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(invoice))
}

func (h *InvoiceHandler) ListByProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_PROJECT_ID", "invalid project id"))
		return
	}

	invoices, err := h.invoiceService.GetInvoicesByProject(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError,
			utils.CreateErrorResponse("INVOICES_FETCH_FAILED", "failed to fetch invoices"))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(invoices))
}

func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_INVOICE_ID", "invalid invoice id"))
		return
	}

	var req models.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST", "invalid invoice payload"))
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVOICE_UPDATE_FAILED", err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(invoice))
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_INVOICE_ID", "invalid invoice id"))
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVOICE_DELETE_FAILED", err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"message": "invoice deleted"}))
}
