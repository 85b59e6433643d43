package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"brickledger/internal/domain"
	"brickledger/internal/service"
)

// InvoiceHandler handles invoice register endpoints.
type InvoiceHandler struct {
	register service.RegisterService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(register service.RegisterService) *InvoiceHandler {
	return &InvoiceHandler{register: register}
}

// Create handles POST /api/v1/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var input domain.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	rec, err := h.register.Append(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, rec)
}

// Update handles PUT /api/v1/invoices/:number
func (h *InvoiceHandler) Update(c *gin.Context) {
	number := c.Param("number")

	var input domain.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	rec, err := h.register.Update(c.Request.Context(), number, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rec)
}

// Delete handles DELETE /api/v1/invoices/:number
func (h *InvoiceHandler) Delete(c *gin.Context) {
	number := c.Param("number")

	if err := h.register.Remove(c.Request.Context(), number); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"invoice_number": number, "deleted": true})
}

// GetByNumber handles GET /api/v1/invoices/:number
func (h *InvoiceHandler) GetByNumber(c *gin.Context) {
	rec, err := h.register.Get(c.Request.Context(), c.Param("number"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rec)
}

// List handles GET /api/v1/invoices
// Records are returned in register entry order, oldest first.
func (h *InvoiceHandler) List(c *gin.Context) {
	RespondOK(c, h.register.Invoices(c.Request.Context()))
}
