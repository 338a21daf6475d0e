package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spicehub/spicehub-golang/internal/models"
)

// ErrOrderNotFound is returned when an order id does not exist for the user.
var ErrOrderNotFound = errors.New("ledger: order not found")

// Ledger reads the append-only order and payment history. Only the
// checkout engine writes these tables; nothing here mutates them.
type Ledger struct {
	db *sql.DB
}

func New(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

// OrdersForUser returns the user's orders with nested line items, newest
// first (ties broken by order id descending). Item prices are the values
// frozen at checkout, not live menu prices. An order whose item rows are
// missing still comes back, with an empty item list.
func (l *Ledger) OrdersForUser(ctx context.Context, userID int64) ([]models.OrderWithItems, error) {
	query := `
		SELECT o.order_id, o.user_id, o.order_date, o.total_amount,
		       oi.order_item_id, oi.menu_item_id, oi.quantity, oi.unit_price, oi.created_at,
		       m.name
		FROM orders o
		LEFT JOIN order_items oi ON o.order_id = oi.order_id
		LEFT JOIN menu_items m ON oi.menu_item_id = m.menu_item_id
		WHERE o.user_id = ?
		ORDER BY o.order_date DESC, o.order_id DESC`

	rows, err := l.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ledger: select orders: %w", err)
	}
	defer rows.Close()

	var orders []models.OrderWithItems
	for rows.Next() {
		var (
			o         models.Order
			itemID    sql.NullInt64
			menuID    sql.NullInt64
			quantity  sql.NullInt64
			unitPrice sql.NullFloat64
			createdAt sql.NullTime
			itemName  sql.NullString
		)
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.OrderDate, &o.TotalAmount,
			&itemID, &menuID, &quantity, &unitPrice, &createdAt, &itemName,
		); err != nil {
			return nil, fmt.Errorf("ledger: scan order row: %w", err)
		}

		// Rows arrive grouped by order; open a new entry when the id changes.
		if len(orders) == 0 || orders[len(orders)-1].ID != o.ID {
			orders = append(orders, models.OrderWithItems{
				Order: o,
				Items: []models.OrderItem{},
			})
		}

		if itemID.Valid {
			current := &orders[len(orders)-1]
			current.Items = append(current.Items, models.OrderItem{
				ID:         itemID.Int64,
				OrderID:    o.ID,
				MenuItemID: menuID.Int64,
				Quantity:   int(quantity.Int64),
				UnitPrice:  unitPrice.Float64,
				CreatedAt:  createdAt.Time,
				Name:       itemName.String,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger: rows: %w", err)
	}

	return orders, nil
}

// OrderByID returns one of the user's orders with its items, or
// ErrOrderNotFound. The user id scopes the lookup so one user cannot
// read another's order.
func (l *Ledger) OrderByID(ctx context.Context, userID, orderID int64) (*models.OrderWithItems, error) {
	var o models.Order
	err := l.db.QueryRowContext(ctx,
		"SELECT order_id, user_id, order_date, total_amount FROM orders WHERE order_id = ? AND user_id = ?",
		orderID, userID,
	).Scan(&o.ID, &o.UserID, &o.OrderDate, &o.TotalAmount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("ledger: select order: %w", err)
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT oi.order_item_id, oi.menu_item_id, oi.quantity, oi.unit_price, oi.created_at, m.name
		FROM order_items oi
		LEFT JOIN menu_items m ON oi.menu_item_id = m.menu_item_id
		WHERE oi.order_id = ?
		ORDER BY oi.order_item_id`, o.ID)
	if err != nil {
		return nil, fmt.Errorf("ledger: select order items: %w", err)
	}
	defer rows.Close()

	result := &models.OrderWithItems{Order: o, Items: []models.OrderItem{}}
	for rows.Next() {
		var it models.OrderItem
		var name sql.NullString
		if err := rows.Scan(&it.ID, &it.MenuItemID, &it.Quantity, &it.UnitPrice, &it.CreatedAt, &name); err != nil {
			return nil, fmt.Errorf("ledger: scan order item: %w", err)
		}
		it.OrderID = o.ID
		it.Name = name.String
		result.Items = append(result.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger: rows: %w", err)
	}

	return result, nil
}

// PaymentsForUser returns the user's payment history, newest first.
func (l *Ledger) PaymentsForUser(ctx context.Context, userID int64) ([]models.Payment, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT payment_id, reference, user_id, order_id, amount, method, payment_date
		FROM payments
		WHERE user_id = ?
		ORDER BY payment_date DESC, payment_id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("ledger: select payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.Reference, &p.UserID, &p.OrderID, &p.Amount, &p.Method, &p.PaymentDate); err != nil {
			return nil, fmt.Errorf("ledger: scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger: rows: %w", err)
	}

	return payments, nil
}
