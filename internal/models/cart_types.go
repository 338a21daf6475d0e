package models

import "time"

// CartLine defines the struct for the 'cart_items' table.
// One row per (user, menu item); adding the same item again increments
// the existing row instead of creating a duplicate.
type CartLine struct {
	ID         int64     `json:"id" db:"cart_line_id"`
	UserID     int64     `json:"userId" db:"user_id"`
	MenuItemID int64     `json:"menuItemId" db:"menu_item_id"`
	Quantity   int       `json:"quantity" db:"quantity"`
	AddedAt    time.Time `json:"addedAt" db:"added_at"`
}

// CartLineDetail is a CartLine joined with the live menu item data,
// as returned by the cart listing.
type CartLineDetail struct {
	CartLine
	Name        string  `json:"name"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unitPrice"` // live catalog price, for display only
	LineTotal   float64 `json:"lineTotal"`
}

// CartSummary is the pre-checkout estimate (live prices).
type CartSummary struct {
	ItemCount   int     `json:"itemCount"`
	TotalAmount float64 `json:"totalAmount"`
}
