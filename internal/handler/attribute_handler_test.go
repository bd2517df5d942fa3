package handler

import (
	"net/http"
	"testing"

	"catalog-service/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAttribute_Success(t *testing.T) {
	e, mock := setupTest(t)

	mock.ExpectQuery(`SELECT (.+) FROM "products"`).
		WillReturnRows(productRows(1, "Widget", "W-1"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "attributes"`).
		WillReturnRows(countRows(0))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "attributes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	rec := doRequest(e, http.MethodPost, "/api/products/1/attributes",
		AttributeRequest{Name: "color", Value: "red"})

	require.Equal(t, http.StatusCreated, rec.Code)
	var created model.Attribute
	decodeBody(t, rec, &created)
	assert.Equal(t, uint(7), created.ID)
	assert.Equal(t, uint(1), created.ProductID)
	assert.Equal(t, "color", created.Name)
	assert.Equal(t, "red", created.Value)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAttribute_DuplicateName(t *testing.T) {
	e, mock := setupTest(t)

	mock.ExpectQuery(`SELECT (.+) FROM "products"`).
		WillReturnRows(productRows(1, "Widget", "W-1"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "attributes"`).
		WillReturnRows(countRows(1))

	rec := doRequest(e, http.MethodPost, "/api/products/1/attributes",
		AttributeRequest{Name: "color", Value: "blue"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAttribute_DistinctNamesBothSucceed(t *testing.T) {
	e, mock := setupTest(t)

	for i, name := range []string{"color", "size"} {
		mock.ExpectQuery(`SELECT (.+) FROM "products"`).
			WillReturnRows(productRows(1, "Widget", "W-1"))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "attributes"`).
			WillReturnRows(countRows(0))
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "attributes"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(i + 1))
		mock.ExpectCommit()

		rec := doRequest(e, http.MethodPost, "/api/products/1/attributes",
			AttributeRequest{Name: name, Value: "x"})
		require.Equal(t, http.StatusCreated, rec.Code, "attribute %q should be created", name)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAttribute_ProductNotFound(t *testing.T) {
	e, mock := setupTest(t)

	mock.ExpectQuery(`SELECT (.+) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rec := doRequest(e, http.MethodPost, "/api/products/99/attributes",
		AttributeRequest{Name: "color", Value: "red"})

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAttribute_MissingName(t *testing.T) {
	e, mock := setupTest(t)

	rec := doRequest(e, http.MethodPost, "/api/products/1/attributes",
		AttributeRequest{Value: "red"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAttributes(t *testing.T) {
	e, mock := setupTest(t)

	mock.ExpectQuery(`SELECT (.+) FROM "products"`).
		WillReturnRows(productRows(1, "Widget", "W-1"))
	mock.ExpectQuery(`SELECT (.+) FROM "attributes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "name", "value"}).
			AddRow(1, 1, "color", "red").
			AddRow(2, 1, "size", "L"))

	rec := doRequest(e, http.MethodGet, "/api/products/1/attributes", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var attributes []model.Attribute
	decodeBody(t, rec, &attributes)
	require.Len(t, attributes, 2)
	assert.Equal(t, "color", attributes[0].Name)
	assert.Equal(t, "size", attributes[1].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}
