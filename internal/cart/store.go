package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/spicehub/spicehub-golang/internal/models"
)

// ErrInvalidQuantity is returned by UpdateQuantity when the requested
// quantity is not an integer >= 1.
var ErrInvalidQuantity = errors.New("cart: quantity must be an integer >= 1")

// Store holds per-user cart lines. One row per (user, menu item) — the
// unique key in the schema backs that up, and AddOrIncrement folds repeat
// adds into the existing row.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// AddResult reports the line an add landed on and its final quantity.
type AddResult struct {
	CartLineID int64 `json:"cartLineId"`
	Quantity   int   `json:"quantity"`
}

// AddOrIncrement adds quantity of a menu item to the user's cart.
// Invalid or missing quantity is coerced to 1. If the user already has a
// line for the item, its quantity grows and the timestamp refreshes;
// otherwise a new line is created. The existing line is locked for the
// duration so a concurrent checkout for the same user serializes with us.
func (s *Store) AddOrIncrement(ctx context.Context, userID, menuItemID int64, quantity int) (AddResult, error) {
	if quantity < 1 {
		quantity = 1
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AddResult{}, fmt.Errorf("cart: begin tx: %w", err)
	}
	defer tx.Rollback()

	var (
		lineID   int64
		existing int
	)
	err = tx.QueryRowContext(ctx,
		"SELECT cart_line_id, quantity FROM cart_items WHERE user_id = ? AND menu_item_id = ? FOR UPDATE",
		userID, menuItemID,
	).Scan(&lineID, &existing)

	switch {
	case err == nil:
		newQty := existing + quantity
		_, err = tx.ExecContext(ctx,
			"UPDATE cart_items SET quantity = ?, added_at = ? WHERE cart_line_id = ?",
			newQty, time.Now(), lineID)
		if err != nil {
			return AddResult{}, fmt.Errorf("cart: increment line: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return AddResult{}, fmt.Errorf("cart: commit: %w", err)
		}
		return AddResult{CartLineID: lineID, Quantity: newQty}, nil

	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.ExecContext(ctx,
			"INSERT INTO cart_items (user_id, menu_item_id, quantity, added_at) VALUES (?, ?, ?, ?)",
			userID, menuItemID, quantity, time.Now())
		if err != nil {
			return AddResult{}, fmt.Errorf("cart: insert line: %w", err)
		}
		lineID, err = res.LastInsertId()
		if err != nil {
			return AddResult{}, fmt.Errorf("cart: new line id: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return AddResult{}, fmt.Errorf("cart: commit: %w", err)
		}
		return AddResult{CartLineID: lineID, Quantity: quantity}, nil

	default:
		return AddResult{}, fmt.Errorf("cart: select line: %w", err)
	}
}

// List returns the user's cart lines joined with live menu data,
// most-recently-added first. Prices here are for display; checkout
// captures its own frozen copy.
func (s *Store) List(ctx context.Context, userID int64) ([]models.CartLineDetail, error) {
	query := `
		SELECT c.cart_line_id, c.user_id, c.menu_item_id, c.quantity, c.added_at,
		       m.name, m.description, m.price
		FROM cart_items c
		JOIN menu_items m ON c.menu_item_id = m.menu_item_id
		WHERE c.user_id = ?
		ORDER BY c.added_at DESC, c.cart_line_id DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("cart: select lines: %w", err)
	}
	defer rows.Close()

	var lines []models.CartLineDetail
	for rows.Next() {
		var line models.CartLineDetail
		var description sql.NullString
		if err := rows.Scan(
			&line.ID, &line.UserID, &line.MenuItemID, &line.Quantity, &line.AddedAt,
			&line.Name, &description, &line.UnitPrice,
		); err != nil {
			return nil, fmt.Errorf("cart: scan line: %w", err)
		}
		line.Description = description.String
		line.LineTotal = line.UnitPrice * float64(line.Quantity)
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cart: rows: %w", err)
	}

	return lines, nil
}

// Summary returns the line count and total value of the user's cart at
// live catalog prices. This is the estimate shown before checkout; the
// authoritative total is the one the checkout engine computes in-transaction.
func (s *Store) Summary(ctx context.Context, userID int64) (models.CartSummary, error) {
	query := `
		SELECT COUNT(*), IFNULL(SUM(m.price * c.quantity), 0)
		FROM cart_items c
		JOIN menu_items m ON c.menu_item_id = m.menu_item_id
		WHERE c.user_id = ?`

	var summary models.CartSummary
	err := s.db.QueryRowContext(ctx, query, userID).
		Scan(&summary.ItemCount, &summary.TotalAmount)
	if err != nil {
		return models.CartSummary{}, fmt.Errorf("cart: select summary: %w", err)
	}

	return summary, nil
}

// UpdateQuantity overwrites a line's quantity and refreshes its timestamp.
// Updating a line that no longer exists is a no-op, matching Remove.
func (s *Store) UpdateQuantity(ctx context.Context, cartLineID int64, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	_, err := s.db.ExecContext(ctx,
		"UPDATE cart_items SET quantity = ?, added_at = ? WHERE cart_line_id = ?",
		quantity, time.Now(), cartLineID)
	if err != nil {
		return fmt.Errorf("cart: update quantity: %w", err)
	}

	return nil
}

// Remove deletes a cart line. Removing an id that does not exist is not
// an error — a double-tap on "remove" should not surface a failure.
func (s *Store) Remove(ctx context.Context, cartLineID int64) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM cart_items WHERE cart_line_id = ?", cartLineID)
	if err != nil {
		return fmt.Errorf("cart: delete line: %w", err)
	}

	return nil
}

// PruneStale deletes cart lines not touched since the cutoff. Run by the
// background janitor so abandoned carts do not accumulate forever.
func (s *Store) PruneStale(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM cart_items WHERE added_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("cart: prune stale lines: %w", err)
	}

	pruned, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("cart: prune rows affected: %w", err)
	}
	return pruned, nil
}
