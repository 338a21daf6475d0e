package catalog

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitPrice(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT price FROM menu_items WHERE menu_item_id = ?")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"price"}).AddRow(90.0))

	catalog := New(db)
	price, err := catalog.UnitPrice(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, 90.0, price)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitPrice_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT price FROM menu_items WHERE menu_item_id = ?")).
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"price"}))

	catalog := New(db)
	_, err = catalog.UnitPrice(context.Background(), 999)

	require.ErrorIs(t, err, ErrItemNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_AllItems(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	catID := int64(2)
	rows := sqlmock.NewRows([]string{
		"menu_item_id", "name", "description", "price", "category_id", "category_name",
	}).
		AddRow(int64(4), "Masala Dosa", "Crisp rice crepe", 90.0, catID, "South Indian").
		AddRow(int64(9), "Paneer Tikka", nil, 180.0, nil, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT m.menu_item_id, m.name, m.description, m.price, m.category_id, c.name")).
		WillReturnRows(rows)

	catalog := New(db)
	items, err := catalog.List(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "South Indian", items[0].CategoryName)
	assert.Equal(t, "", items[1].Description)
	assert.Nil(t, items[1].CategoryID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_FilteredByCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	catID := int64(2)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE m.category_id = ?")).
		WithArgs(catID).
		WillReturnRows(sqlmock.NewRows([]string{
			"menu_item_id", "name", "description", "price", "category_id", "category_name",
		}).AddRow(int64(4), "Masala Dosa", "Crisp rice crepe", 90.0, catID, "South Indian"))

	catalog := New(db)
	items, err := catalog.List(context.Background(), &catID)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(4), items[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListCategories(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT category_id, name FROM categories ORDER BY category_id")).
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "name"}).
			AddRow(int64(1), "Starters").
			AddRow(int64(2), "South Indian"))

	catalog := New(db)
	categories, err := catalog.ListCategories(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Starters", categories[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}
