package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/spicehub/spicehub-golang/internal/checkout"
	"github.com/spicehub/spicehub-golang/internal/ledger"
	"github.com/spicehub/spicehub-golang/internal/models"
)

//
// --- Checkout & Order Handlers ---
//

// CheckoutInput defines the JSON for POST /v1/checkout. Both fields are
// optional: expected_amount is a client-side hint the engine reconciles
// against, and method (when present) records a payment for the order.
type CheckoutInput struct {
	ExpectedAmount *float64 `json:"expected_amount"`
	Method         string   `json:"method"`
}

// RunCheckout is the handler for POST /v1/checkout
func (h *Handlers) RunCheckout(c *gin.Context) {
	userID := currentUserID(c)

	// An empty body means a plain checkout with no payment record.
	var input CheckoutInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
	}

	result, err := h.Checkout.Run(c.Request.Context(), userID, checkout.Options{
		ExpectedAmount: input.ExpectedAmount,
		Method:         input.Method,
	})
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed",
		"orderId": result.OrderID,
		"total":   result.Total,
	})
}

// GetMyOrders is the handler for GET /v1/orders
func (h *Handlers) GetMyOrders(c *gin.Context) {
	userID := currentUserID(c)

	orders, err := h.Ledger.OrdersForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	if orders == nil {
		orders = []models.OrderWithItems{}
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrderDetails is the handler for GET /v1/orders/:id
func (h *Handlers) GetOrderDetails(c *gin.Context) {
	userID := currentUserID(c)

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, err := h.Ledger.OrderByID(c.Request.Context(), userID, orderID)
	if err != nil {
		if errors.Is(err, ledger.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// GetMyPayments is the handler for GET /v1/payments
func (h *Handlers) GetMyPayments(c *gin.Context) {
	userID := currentUserID(c)

	payments, err := h.Ledger.PaymentsForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	if payments == nil {
		payments = []models.Payment{}
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}
