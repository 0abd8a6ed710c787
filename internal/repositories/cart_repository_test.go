package repository_test

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printhaus/printshop-platform/internal/models"
	repository "github.com/printhaus/printshop-platform/internal/repositories"
)

func TestGetCartItems(t *testing.T) {

	t.Run("Success - returns the stored lines", func(t *testing.T) {
		// Arrange
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := repository.NewCartRepo(db)
		customerID := uuid.New()

		stored := []models.CartLineItem{
			{ProductID: uuid.New(), Name: "Sunset Poster", UnitPrice: 500, Quantity: 2},
		}
		itemsJSON, _ := json.Marshal(stored)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT items FROM carts WHERE customer_id = $1`)).
			WithArgs(customerID).
			WillReturnRows(sqlmock.NewRows([]string{"items"}).AddRow(itemsJSON))

		// Act
		items, err := repo.GetCartItems(context.Background(), customerID)

		// Assert
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, stored[0].ProductID, items[0].ProductID)
		assert.Equal(t, 2, items[0].Quantity)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - no row means an empty cart", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := repository.NewCartRepo(db)
		customerID := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT items FROM carts`)).
			WithArgs(customerID).
			WillReturnRows(sqlmock.NewRows([]string{"items"}))

		items, err := repo.GetCartItems(context.Background(), customerID)

		assert.NoError(t, err)
		assert.Nil(t, items)
	})

	t.Run("Failure - corrupted items column", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := repository.NewCartRepo(db)
		customerID := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT items FROM carts`)).
			WithArgs(customerID).
			WillReturnRows(sqlmock.NewRows([]string{"items"}).AddRow([]byte(`not json`)))

		items, err := repo.GetCartItems(context.Background(), customerID)

		assert.Nil(t, items)
		assert.Error(t, err)
	})
}

func TestSaveCartItems(t *testing.T) {

	t.Run("Success - upserts the customer's row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := repository.NewCartRepo(db)
		customerID := uuid.New()

		items := []models.CartLineItem{
			{ProductID: uuid.New(), Name: "Sunset Poster", UnitPrice: 500, Quantity: 2},
		}
		itemsJSON, _ := json.Marshal(items)

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO carts (customer_id, items, created_at, updated_at)`)).
			WithArgs(customerID, itemsJSON).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.SaveCartItems(context.Background(), customerID, items)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - nil items persist as an empty array", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := repository.NewCartRepo(db)
		customerID := uuid.New()

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO carts`)).
			WithArgs(customerID, []byte(`[]`)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.SaveCartItems(context.Background(), customerID, nil)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestClearCart(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := repository.NewCartRepo(db)
		customerID := uuid.New()

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM carts WHERE customer_id = $1`)).
			WithArgs(customerID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.ClearCart(context.Background(), customerID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
