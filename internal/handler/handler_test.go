package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"catalog-service/pkg/config"
	"catalog-service/pkg/database"
	"catalog-service/prometheus"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var metricsOnce sync.Once

// initTestMetrics registers the prometheus collectors once for the whole
// test binary; promauto panics on duplicate registration.
func initTestMetrics() {
	metricsOnce.Do(func() {
		prometheus.InitMetrics(&config.Config{
			Metrics: config.MetricsConfig{Prefix: "catalog_test"},
		})
	})
}

// setupTest installs a sqlmock-backed GORM connection and returns an echo
// instance with the service routes registered.
func setupTest(t *testing.T) (*echo.Echo, sqlmock.Sqlmock) {
	t.Helper()
	initTestMetrics()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "failed to create sqlmock")
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "failed to open gorm over sqlmock")
	database.SetDB(gdb)

	e := echo.New()
	e.Validator = NewValidator()
	registerRoutes(e)
	return e, mock
}

// registerRoutes mirrors the route table from cmd/main.go.
func registerRoutes(e *echo.Echo) {
	productAPI := e.Group("/api/products")
	productAPI.GET("", ListProducts)
	productAPI.GET("/:id", GetProduct)
	productAPI.POST("", CreateProduct)
	productAPI.PUT("/:id", UpdateProduct)
	productAPI.DELETE("/:id", DeleteProduct)
	productAPI.GET("/:id/attributes", ListAttributes)
	productAPI.POST("/:id/attributes", CreateAttribute)
	productAPI.GET("/:id/translations", ListProductTranslations)
	productAPI.POST("/:id/translations", CreateProductTranslation)

	categoryAPI := e.Group("/api/categories")
	categoryAPI.GET("", ListCategories)
	categoryAPI.GET("/:id", GetCategory)
	categoryAPI.POST("", CreateCategory)
	categoryAPI.PUT("/:id", UpdateCategory)
	categoryAPI.DELETE("/:id", DeleteCategory)
	categoryAPI.GET("/:id/translations", ListCategoryTranslations)
	categoryAPI.POST("/:id/translations", CreateCategoryTranslation)

	priceAPI := e.Group("/api/prices")
	priceAPI.GET("/:id", GetPrice)
	priceAPI.PUT("/:id", UpdatePrice)
}

// doRequest serves one JSON request through the echo instance.
func doRequest(e *echo.Echo, method, target string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// productRows returns a single-product result set for First() lookups.
func productRows(id uint, name, sku string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "sku", "is_active"}).
		AddRow(id, name, sku, true)
}

// categoryRows returns a single-category result set for First() lookups.
func categoryRows(id uint, name string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name"}).AddRow(id, name)
}

func countRows(n int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
