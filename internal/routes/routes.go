package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spicehub/spicehub-golang/internal/handlers"
	"github.com/spicehub/spicehub-golang/internal/middleware"
)

// CORSMiddleware allows the local frontend to talk to the API.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "http://localhost:5173")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(CORSMiddleware())

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Public Menu Routes (read-only) ---
		v1.GET("/menu", h.GetMenu)
		v1.GET("/categories", h.GetCategories)

		// --- Protected Routes (Login Required) ---
		auth := v1.Group("/")
		auth.Use(middleware.AuthMiddleware())
		{
			// Cart
			auth.GET("/cart", h.GetCart)
			auth.GET("/cart/summary", h.GetCartSummary)
			auth.POST("/cart/items", h.AddToCart)
			auth.PUT("/cart/items/:id", h.UpdateCartItem)
			auth.DELETE("/cart/items/:id", h.DeleteCartItem)

			// Checkout
			auth.POST("/checkout", h.RunCheckout)

			// Orders & Payments
			auth.GET("/orders", h.GetMyOrders)
			auth.GET("/orders/:id", h.GetOrderDetails)
			auth.GET("/payments", h.GetMyPayments)

			// Favorites
			auth.GET("/favorites", h.GetMyFavorites)
			auth.POST("/favorites", h.AddFavorite)
		}
	}

	return router
}
