package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spicehub/spicehub-golang/internal/models"
)

//
// --- Favorite Handlers ---
//

// GetMyFavorites is the handler for GET /v1/favorites
func (h *Handlers) GetMyFavorites(c *gin.Context) {
	userID := currentUserID(c)

	query := `
		SELECT f.favorite_id, f.user_id, f.menu_item_id, f.created_at, m.name, m.price
		FROM favorites f
		JOIN menu_items m ON f.menu_item_id = m.menu_item_id
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC`

	rows, err := h.DB.QueryContext(c.Request.Context(), query, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
		return
	}
	defer rows.Close()

	var favorites []models.Favorite
	for rows.Next() {
		var f models.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.MenuItemID, &f.CreatedAt, &f.Name, &f.Price); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan favorite"})
			return
		}
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating favorites"})
		return
	}

	if favorites == nil {
		favorites = []models.Favorite{}
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// AddFavoriteInput defines the JSON for adding a favorite.
type AddFavoriteInput struct {
	MenuItemID int64 `json:"menu_item_id" binding:"required"`
}

// AddFavorite is the handler for POST /v1/favorites
func (h *Handlers) AddFavorite(c *gin.Context) {
	userID := currentUserID(c)

	var input AddFavoriteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	// Re-adding an existing favorite keeps the original row.
	result, err := h.DB.ExecContext(c.Request.Context(), `
		INSERT IGNORE INTO favorites (user_id, menu_item_id, created_at)
		VALUES (?, ?, ?)`,
		userID, input.MenuItemID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
		return
	}

	favoriteID, _ := result.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Favorite added",
		"favoriteId": favoriteID,
	})
}
