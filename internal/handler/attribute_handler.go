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

// AttributeRequest defines the structure for attribute creation requests
type AttributeRequest struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value"`
}

// ListAttributes retrieves all attributes of a product
func ListAttributes(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Listing attributes", zap.String("product_id", id))

	var product model.Product
	if result := database.GetDB().First(&product, id); result.Error != nil {
		log.Error("Product not found",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	var attributes []model.Attribute
	result := database.GetDB().Where("product_id = ?", product.ID).Find(&attributes)
	if result.Error != nil {
		log.Error("Failed to retrieve attributes",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve attributes",
		})
	}

	prometheus.RecordAttributeOperation("list")
	log.Info("Attributes retrieved successfully",
		zap.String("product_id", id),
		zap.Int("count", len(attributes)))
	return c.JSON(http.StatusOK, attributes)
}

// CreateAttribute adds an attribute to a product. The attribute name must
// be unique within the product.
func CreateAttribute(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Creating attribute", zap.String("product_id", id))

	var req AttributeRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Attribute validation failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "name is required",
		})
	}

	var product model.Product
	if result := database.GetDB().First(&product, id); result.Error != nil {
		log.Error("Product not found",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	// Check if an attribute with the same name exists for this product
	var count int64
	database.GetDB().Model(&model.Attribute{}).
		Where("product_id = ? AND name = ?", product.ID, req.Name).
		Count(&count)
	if count > 0 {
		log.Warn("Attribute with this name already exists",
			zap.String("product_id", id),
			zap.String("name", req.Name))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Attribute with this name already exists for this product",
		})
	}

	attribute := model.Attribute{
		ProductID: product.ID,
		Name:      req.Name,
		Value:     req.Value,
	}

	result := database.GetDB().Create(&attribute)
	if result.Error != nil {
		log.Error("Failed to create attribute",
			zap.String("product_id", id),
			zap.String("name", req.Name),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create attribute",
		})
	}

	prometheus.RecordAttributeOperation("create")
	log.Info("Attribute created successfully",
		zap.Uint("attribute_id", attribute.ID),
		zap.String("product_id", id),
		zap.String("name", attribute.Name))
	return c.JSON(http.StatusCreated, attribute)
}
