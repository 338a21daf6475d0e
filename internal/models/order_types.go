package models

import "time"

// Order is the model for the 'orders' table. Rows are append-only:
// an order is created exactly once per checkout and never mutated.
type Order struct {
	ID          int64     `json:"id" db:"order_id"`
	UserID      int64     `json:"userId" db:"user_id"`
	OrderDate   time.Time `json:"orderDate" db:"order_date"`
	TotalAmount float64   `json:"totalAmount" db:"total_amount"`
}

// OrderItem is the model for the 'order_items' table.
type OrderItem struct {
	ID         int64     `json:"id" db:"order_item_id"`
	OrderID    int64     `json:"orderId" db:"order_id"`
	MenuItemID int64     `json:"menuItemId" db:"menu_item_id"`
	Quantity   int       `json:"quantity" db:"quantity"`
	UnitPrice  float64   `json:"unitPrice" db:"unit_price"` // price frozen at checkout
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`

	// Joined field, populated by the ledger queries
	Name string `json:"name,omitempty" db:"-"`
}

// OrderWithItems is an Order with its nested line items, as returned
// by the order history listing.
type OrderWithItems struct {
	Order
	Items []OrderItem `json:"items"`
}
