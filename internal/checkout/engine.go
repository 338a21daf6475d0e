package checkout

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyCart is returned when checkout finds no cart lines for the user.
// Nothing is written; retrying yields the same result.
var ErrEmptyCart = errors.New("checkout: cart is empty")

// TransactionError reports a storage failure during checkout. The
// transaction was rolled back: no order, no items, no payment, and the
// cart is untouched.
type TransactionError struct {
	Op  string // the step that failed, e.g. "insert order"
	Err error
}

func (e *TransactionError) Error() string {
	return "checkout: " + e.Op + ": " + e.Err.Error()
}

func (e *TransactionError) Unwrap() error { return e.Err }

// amountTolerance is the largest client/server total disagreement that
// passes without a reconciliation warning.
const amountTolerance = 0.01

// Engine is the sole authority for turning a cart into an order. The whole
// conversion — snapshot, total, order, line items, optional payment, cart
// clear — runs in one transaction against the user's cart rows.
type Engine struct {
	db *sql.DB
}

func New(db *sql.DB) *Engine {
	return &Engine{db: db}
}

// Options tunes a single checkout call.
type Options struct {
	// ExpectedAmount is the client's idea of the total. It is a hint only:
	// a mismatch beyond the tolerance is logged, never charged.
	ExpectedAmount *float64
	// Method, when non-empty, records a payment for the new order.
	Method string
}

// Result reports the order a successful checkout created.
type Result struct {
	OrderID int64   `json:"orderId"`
	Total   float64 `json:"total"`
}

type cartLine struct {
	menuItemID int64
	quantity   int
	unitPrice  float64
}

// Run converts the user's cart into an order.
//
// The user's cart lines are locked FOR UPDATE, so a concurrent add, update,
// remove, or second checkout for the same user blocks until this transaction
// resolves. Two concurrent checkouts cannot both succeed against the same
// cart contents: the loser observes the emptied cart and gets ErrEmptyCart.
// Carts of other users are never touched, so their checkouts do not block.
//
// Any failure after the transaction starts rolls the whole thing back —
// no order, no items, no payment, cart untouched.
func (e *Engine) Run(ctx context.Context, userID int64, opts Options) (Result, error) {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return Result{}, &TransactionError{Op: "begin tx", Err: err}
	}
	defer tx.Rollback()

	// Snapshot the cart with prices read inside this transaction, so a
	// catalog price change cannot land between read and write.
	rows, err := tx.QueryContext(ctx, `
		SELECT c.menu_item_id, c.quantity, m.price
		FROM cart_items c
		JOIN menu_items m ON c.menu_item_id = m.menu_item_id
		WHERE c.user_id = ?
		FOR UPDATE`, userID)
	if err != nil {
		return Result{}, &TransactionError{Op: "lock cart lines", Err: err}
	}

	var (
		lines []cartLine
		total float64
	)
	for rows.Next() {
		var l cartLine
		if err := rows.Scan(&l.menuItemID, &l.quantity, &l.unitPrice); err != nil {
			rows.Close()
			return Result{}, &TransactionError{Op: "scan cart line", Err: err}
		}
		total += l.unitPrice * float64(l.quantity)
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return Result{}, &TransactionError{Op: "cart rows", Err: err}
	}
	rows.Close()

	if len(lines) == 0 {
		return Result{}, ErrEmptyCart
	}

	// The computed total is authoritative. A client figure that disagrees
	// is a reconciliation mismatch: logged, not fatal.
	if opts.ExpectedAmount != nil && math.Abs(total-*opts.ExpectedAmount) > amountTolerance {
		log.Printf("checkout: amount mismatch for user %d: client sent %.2f, charging computed %.2f",
			userID, *opts.ExpectedAmount, total)
	}

	now := time.Now()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO orders (user_id, order_date, total_amount) VALUES (?, ?, ?)",
		userID, now, total)
	if err != nil {
		return Result{}, &TransactionError{Op: "insert order", Err: err}
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return Result{}, &TransactionError{Op: "new order id", Err: err}
	}

	for _, l := range lines {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO order_items (order_id, menu_item_id, quantity, unit_price, created_at) VALUES (?, ?, ?, ?, ?)",
			orderID, l.menuItemID, l.quantity, l.unitPrice, now)
		if err != nil {
			return Result{}, &TransactionError{Op: "insert order item", Err: err}
		}
	}

	if opts.Method != "" {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO payments (reference, user_id, order_id, amount, method, payment_date) VALUES (?, ?, ?, ?, ?, ?)",
			uuid.NewString(), userID, orderID, total, opts.Method, now)
		if err != nil {
			return Result{}, &TransactionError{Op: "insert payment", Err: err}
		}
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM cart_items WHERE user_id = ?", userID); err != nil {
		return Result{}, &TransactionError{Op: "clear cart", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return Result{}, &TransactionError{Op: "commit", Err: err}
	}

	return Result{OrderID: orderID, Total: total}, nil
}
