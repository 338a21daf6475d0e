package models

import "time"

// Favorite defines the struct for the 'favorites' table
type Favorite struct {
	ID         int64     `json:"id" db:"favorite_id"`
	UserID     int64     `json:"userId" db:"user_id"`
	MenuItemID int64     `json:"menuItemId" db:"menu_item_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`

	// Joined fields from the menu
	Name  string  `json:"name,omitempty" db:"-"`
	Price float64 `json:"price,omitempty" db:"-"`
}
