package models

import "time"

// Payment is the model for the 'payments' table. At most one payment
// is recorded per order, always with the server-computed total.
type Payment struct {
	ID          int64     `json:"id" db:"payment_id"`
	Reference   string    `json:"reference" db:"reference"`
	UserID      int64     `json:"userId" db:"user_id"`
	OrderID     int64     `json:"orderId" db:"order_id"`
	Amount      float64   `json:"amount" db:"amount"`
	Method      string    `json:"method" db:"method"`
	PaymentDate time.Time `json:"paymentDate" db:"payment_date"`
}
