package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cinepix/internal/errors"
	"cinepix/internal/models"
	"cinepix/internal/service"
)

type Handlers struct {
	services *service.Services
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		services: services,
	}
}

// GetState - GET /api/state
// Read-only view of the full purchase aggregate
func (h *Handlers) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Tickets.State())
}

// SaveSelection - POST /api/selection
// Replace the current selection wholesale
func (h *Handlers) SaveSelection(c *gin.Context) {
	var req models.SaveSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	selection := h.services.Tickets.SaveSelection(c.Request.Context(), req.MovieID, req.Seats, req.TotalPrice)
	c.JSON(http.StatusOK, selection)
}

// ResetSelection - PATCH /api/selection/reset
// Restore the empty default selection
func (h *Handlers) ResetSelection(c *gin.Context) {
	selection := h.services.Tickets.ResetSelection(c.Request.Context())
	c.JSON(http.StatusOK, selection)
}

// ConfirmPurchase - POST /api/purchase/confirm
// Finalize the current selection into purchase history
func (h *Handlers) ConfirmPurchase(c *gin.Context) {
	snapshot, err := h.services.Tickets.ConfirmPurchase(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrEmptySelection) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		slog.Error("Failed to confirm purchase", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm purchase"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// RequestPixPayment - POST /api/payments/pix
// Create a PIX charge for the current purchase
func (h *Handlers) RequestPixPayment(c *gin.Context) {
	var req models.PixPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.services.Tickets.RequestPixPayment(c.Request.Context(), &req)
	if err != nil {
		slog.Error("Failed to request PIX payment", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to request PIX payment"})
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// CheckPixPaymentStatus - GET /api/payments/pix/status
// Poll the provider and merge the response into the known snapshot.
// Poll failures are recorded in the aggregate, never surfaced as HTTP
// errors, so timer-driven callers keep polling.
func (h *Handlers) CheckPixPaymentStatus(c *gin.Context) {
	paymentID := c.Query("payment_id")
	if paymentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment_id is required"})
		return
	}

	h.services.Tickets.CheckPixPaymentStatus(c.Request.Context(), paymentID)

	state := h.services.Tickets.State()
	c.JSON(http.StatusOK, gin.H{
		"pixPayment": state.PixPayment,
		"pixError":   state.PixError,
	})
}

// PostNewTicket - POST /api/tickets
// Create a ticket with the ticketing service
func (h *Handlers) PostNewTicket(c *gin.Context) {
	var req models.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.services.Tickets.PostNewTicket(c.Request.Context(), &req)
	if err != nil {
		slog.Error("Failed to post new ticket", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post new ticket"})
		return
	}

	c.JSON(http.StatusCreated, ticket)
}
