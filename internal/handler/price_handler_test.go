package handler

import (
	"net/http"
	"testing"

	"catalog-service/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priceRows(id uint, amount float64, currency string, active bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "amount", "currency", "active", "translation_name"}).
		AddRow(id, amount, currency, active, "widget-en")
}

func TestUpdatePrice_PartialPayloadPreservesFields(t *testing.T) {
	e, mock := setupTest(t)

	mock.ExpectQuery(`SELECT (.+) FROM "prices"`).
		WillReturnRows(priceRows(5, 10, "USD", true))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "prices" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rec := doRequest(e, http.MethodPut, "/api/prices/5",
		model.PriceUpdate{Amount: ptrTo(12.0)})

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String(), "update completes without returning data")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePrice_NormalizesCurrency(t *testing.T) {
	e, mock := setupTest(t)

	mock.ExpectQuery(`SELECT (.+) FROM "prices"`).
		WillReturnRows(priceRows(5, 10, "USD", true))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "prices" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rec := doRequest(e, http.MethodPut, "/api/prices/5",
		model.PriceUpdate{Currency: ptrTo("eur")})

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePrice_InvalidCurrency(t *testing.T) {
	e, mock := setupTest(t)

	mock.ExpectQuery(`SELECT (.+) FROM "prices"`).
		WillReturnRows(priceRows(5, 10, "USD", true))

	rec := doRequest(e, http.MethodPut, "/api/prices/5",
		model.PriceUpdate{Currency: ptrTo("dollars")})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "currency")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePrice_NotFound(t *testing.T) {
	e, mock := setupTest(t)

	mock.ExpectQuery(`SELECT (.+) FROM "prices"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rec := doRequest(e, http.MethodPut, "/api/prices/99",
		model.PriceUpdate{Amount: ptrTo(12.0)})

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPrice(t *testing.T) {
	e, mock := setupTest(t)

	mock.ExpectQuery(`SELECT (.+) FROM "prices"`).
		WillReturnRows(priceRows(5, 10, "USD", true))

	rec := doRequest(e, http.MethodGet, "/api/prices/5", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var price model.Price
	decodeBody(t, rec, &price)
	assert.Equal(t, uint(5), price.ID)
	assert.Equal(t, 10.0, price.Amount)
	assert.Equal(t, "USD", price.Currency)
	assert.True(t, price.Active)
	require.NoError(t, mock.ExpectationsWereMet())
}
