package handlers

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestContext builds a gin context with an authenticated user and a
// JSON request body, the way the middleware and router would.
func newTestContext(t *testing.T, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userID", int64(7))

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func TestRunCheckout_EmptyCartMapsToBadRequest(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT c.menu_item_id, c.quantity, m.price")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"menu_item_id", "quantity", "price"}))
	mock.ExpectRollback()

	h := New(db)
	c, w := newTestContext(t, http.MethodPost, "/v1/checkout", "")
	h.RunCheckout(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cart is empty")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunCheckout_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT c.menu_item_id, c.quantity, m.price")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"menu_item_id", "quantity", "price"}).
			AddRow(int64(2), 2, 50.0).
			AddRow(int64(3), 1, 120.0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO orders")).
		WithArgs(int64(7), sqlmock.AnyArg(), 220.0).
		WillReturnResult(sqlmock.NewResult(41, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO order_items")).
		WithArgs(int64(41), int64(2), 2, 50.0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO order_items")).
		WithArgs(int64(41), int64(3), 1, 120.0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payments")).
		WithArgs(sqlmock.AnyArg(), int64(7), int64(41), 220.0, "card", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cart_items WHERE user_id = ?")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	h := New(db)
	c, w := newTestContext(t, http.MethodPost, "/v1/checkout", `{"expected_amount": 220.00, "method": "card"}`)
	h.RunCheckout(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"orderId":41`)
	assert.Contains(t, w.Body.String(), `"total":220`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToCart_UnknownItemMapsToNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT price FROM menu_items WHERE menu_item_id = ?")).
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"price"}))

	h := New(db)
	c, w := newTestContext(t, http.MethodPost, "/v1/cart/items", `{"menu_item_id": 999, "quantity": 1}`)
	h.AddToCart(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToCart_MissingItemIDRejected(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := New(db)
	c, w := newTestContext(t, http.MethodPost, "/v1/cart/items", `{"quantity": 2}`)
	h.AddToCart(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCartItem_NonPositiveQuantityRejected(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := New(db)
	c, w := newTestContext(t, http.MethodPut, "/v1/cart/items/5", `{"quantity": -2}`)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	h.UpdateCartItem(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Quantity must be an integer >= 1")
}

func TestDeleteCartItem_MissingLineStillOK(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cart_items WHERE cart_line_id = ?")).
		WithArgs(int64(999)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	h := New(db)
	c, w := newTestContext(t, http.MethodDelete, "/v1/cart/items/999", "")
	c.Params = gin.Params{{Key: "id", Value: "999"}}
	h.DeleteCartItem(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
