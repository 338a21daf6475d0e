package models

// Category defines the struct for the 'categories' table
type Category struct {
	ID   int64  `json:"id" db:"category_id"`
	Name string `json:"name" db:"name"`
}

// MenuItem is the model for the 'menu_items' table.
// Price here is the *live* catalog price; orders capture their own
// frozen copy in order_items at checkout time.
type MenuItem struct {
	ID          int64   `json:"id" db:"menu_item_id"`
	Name        string  `json:"name" db:"name"`
	Description string  `json:"description" db:"description"`
	Price       float64 `json:"price" db:"price"`
	CategoryID  *int64  `json:"categoryId,omitempty" db:"category_id"`

	// Joined field, populated by the catalog listing query
	CategoryName string `json:"categoryName,omitempty" db:"-"`
}
