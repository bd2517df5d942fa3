package handler

import (
	"net/http"

	"catalog-service/internal/model"
	"catalog-service/pkg/database"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GetPrice retrieves a single price by ID
func GetPrice(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var price model.Price
	result := database.GetDB().First(&price, id)
	if result.Error != nil {
		log.Error("Price not found",
			zap.String("price_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Price not found",
		})
	}

	prometheus.RecordPriceOperation("get")
	return c.JSON(http.StatusOK, price)
}

// UpdatePrice applies a partial update to a price. Fields absent from
// the payload keep their stored values. The merged record is persisted
// and the handler responds with no content.
func UpdatePrice(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Updating price", zap.String("price_id", id))

	var upd model.PriceUpdate
	if err := c.Bind(&upd); err != nil {
		log.Error("Invalid request data",
			zap.String("price_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	var price model.Price
	result := database.GetDB().First(&price, id)
	if result.Error != nil {
		log.Error("Price not found for update",
			zap.String("price_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Price not found",
		})
	}

	if err := price.Apply(&upd); err != nil {
		log.Warn("Invalid currency code in price update",
			zap.String("price_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": err.Error(),
		})
	}

	result = database.GetDB().Save(&price)
	if result.Error != nil {
		log.Error("Failed to update price",
			zap.String("price_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update price",
		})
	}

	prometheus.RecordPriceOperation("update")
	log.Info("Price updated successfully",
		zap.String("price_id", id),
		zap.Float64("amount", price.Amount),
		zap.String("currency", price.Currency))
	return c.NoContent(http.StatusNoContent)
}
