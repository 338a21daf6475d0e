package handlers

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/spicehub/spicehub-golang/internal/cart"
	"github.com/spicehub/spicehub-golang/internal/catalog"
	"github.com/spicehub/spicehub-golang/internal/checkout"
	"github.com/spicehub/spicehub-golang/internal/ledger"
)

// Handlers holds all dependencies for the HTTP layer. The core packages
// own the transactional logic; handlers only bind input, resolve the user
// id, and map results onto HTTP.
type Handlers struct {
	DB       *sql.DB
	Catalog  *catalog.Catalog
	Cart     *cart.Store
	Checkout *checkout.Engine
	Ledger   *ledger.Ledger
}

// New wires the handler set over a single connection pool.
func New(db *sql.DB) *Handlers {
	return &Handlers{
		DB:       db,
		Catalog:  catalog.New(db),
		Cart:     cart.NewStore(db),
		Checkout: checkout.New(db),
		Ledger:   ledger.New(db),
	}
}

// currentUserID pulls the user id the auth middleware stored on the context.
func currentUserID(c *gin.Context) int64 {
	userIDRaw, _ := c.Get("userID")
	userID, _ := userIDRaw.(int64)
	return userID
}
