package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/spicehub/spicehub-golang/internal/cart"
	"github.com/spicehub/spicehub-golang/internal/catalog"
	"github.com/spicehub/spicehub-golang/internal/models"
)

//
// --- Cart Handlers ---
//

// AddToCartInput defines the JSON for adding an item to the cart.
// Quantity has no binding tag on purpose: missing or invalid values are
// coerced to 1 by the store.
type AddToCartInput struct {
	MenuItemID int64 `json:"menu_item_id" binding:"required"`
	Quantity   int   `json:"quantity"`
}

// AddToCart is the handler for POST /v1/cart/items
func (h *Handlers) AddToCart(c *gin.Context) {
	userID := currentUserID(c)

	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	// Reject unknown items up front; the store itself only sees valid ids.
	if _, err := h.Catalog.UnitPrice(c.Request.Context(), input.MenuItemID); err != nil {
		if errors.Is(err, catalog.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up menu item"})
		return
	}

	result, err := h.Cart.AddOrIncrement(c.Request.Context(), userID, input.MenuItemID, input.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Item added to cart",
		"cartLineId": result.CartLineID,
		"quantity":   result.Quantity,
	})
}

// GetCart is the handler for GET /v1/cart
func (h *Handlers) GetCart(c *gin.Context) {
	userID := currentUserID(c)

	lines, err := h.Cart.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	if lines == nil {
		lines = []models.CartLineDetail{}
	}

	c.JSON(http.StatusOK, gin.H{"items": lines})
}

// GetCartSummary is the handler for GET /v1/cart/summary.
// Totals here use live prices — an estimate, not the checkout total.
func (h *Handlers) GetCartSummary(c *gin.Context) {
	userID := currentUserID(c)

	summary, err := h.Cart.Summary(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// UpdateCartItemInput defines the JSON for updating a line's quantity.
type UpdateCartItemInput struct {
	Quantity int `json:"quantity" binding:"required"`
}

// UpdateCartItem is the handler for PUT /v1/cart/items/:id
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	cartLineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart line id"})
		return
	}

	var input UpdateCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Cart.UpdateQuantity(c.Request.Context(), cartLineID, input.Quantity); err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be an integer >= 1"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart item quantity updated"})
}

// DeleteCartItem is the handler for DELETE /v1/cart/items/:id
func (h *Handlers) DeleteCartItem(c *gin.Context) {
	cartLineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart line id"})
		return
	}

	if err := h.Cart.Remove(c.Request.Context(), cartLineID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
}
