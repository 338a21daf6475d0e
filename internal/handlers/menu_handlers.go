package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/spicehub/spicehub-golang/internal/models"
)

//
// --- Menu Handlers (Public, Read-Only) ---
//

// GetMenu is the handler for GET /v1/menu?categoryId=N
func (h *Handlers) GetMenu(c *gin.Context) {
	var categoryID *int64
	if raw := c.Query("categoryId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid categoryId"})
			return
		}
		categoryID = &id
	}

	items, err := h.Catalog.List(c.Request.Context(), categoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu"})
		return
	}

	if items == nil {
		items = []models.MenuItem{}
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetCategories is the handler for GET /v1/categories
func (h *Handlers) GetCategories(c *gin.Context) {
	categories, err := h.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	if categories == nil {
		categories = []models.Category{}
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
