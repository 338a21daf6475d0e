package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spicehub/spicehub-golang/internal/models"
)

// ErrItemNotFound is returned when a menu item id does not exist.
var ErrItemNotFound = errors.New("catalog: menu item not found")

// Catalog is the read-only lookup over the menu. Writes to the menu
// happen out of band (seeding, admin tooling); this core never mutates it.
type Catalog struct {
	db *sql.DB
}

func New(db *sql.DB) *Catalog {
	return &Catalog{db: db}
}

// UnitPrice returns the current catalog price for a menu item.
// Checkout does NOT use this: it reads prices inside its own transaction
// so a concurrent price change cannot land between read and write.
func (c *Catalog) UnitPrice(ctx context.Context, menuItemID int64) (float64, error) {
	var price float64
	err := c.db.QueryRowContext(ctx,
		"SELECT price FROM menu_items WHERE menu_item_id = ?",
		menuItemID,
	).Scan(&price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrItemNotFound
		}
		return 0, fmt.Errorf("catalog: select price: %w", err)
	}
	return price, nil
}

// List returns the menu joined with category names, optionally filtered
// by category, ordered by menu item id.
func (c *Catalog) List(ctx context.Context, categoryID *int64) ([]models.MenuItem, error) {
	query := `
		SELECT m.menu_item_id, m.name, m.description, m.price, m.category_id, c.name
		FROM menu_items m
		LEFT JOIN categories c ON m.category_id = c.category_id`

	var args []any
	if categoryID != nil {
		query += " WHERE m.category_id = ?"
		args = append(args, *categoryID)
	}
	query += " ORDER BY m.menu_item_id"

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog: select menu: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var item models.MenuItem
		var description, categoryName sql.NullString
		if err := rows.Scan(
			&item.ID, &item.Name, &description, &item.Price,
			&item.CategoryID, &categoryName,
		); err != nil {
			return nil, fmt.Errorf("catalog: scan menu item: %w", err)
		}
		item.Description = description.String
		item.CategoryName = categoryName.String
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: rows: %w", err)
	}

	return items, nil
}

// ListCategories returns all categories ordered by id.
func (c *Catalog) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT category_id, name FROM categories ORDER BY category_id")
	if err != nil {
		return nil, fmt.Errorf("catalog: select categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			return nil, fmt.Errorf("catalog: scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: rows: %w", err)
	}

	return categories, nil
}
