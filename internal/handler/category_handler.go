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

// CategoryRequest defines the structure for category creation/update requests
type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// ListCategories retrieves all product categories
func ListCategories(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing categories")

	var categories []model.ProductCategory
	result := database.GetDB().Find(&categories)
	if result.Error != nil {
		log.Error("Failed to retrieve categories", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve categories",
		})
	}

	prometheus.RecordCategoryOperation("list")
	log.Info("Categories retrieved successfully", zap.Int("count", len(categories)))
	return c.JSON(http.StatusOK, categories)
}

// GetCategory retrieves a specific category by ID
func GetCategory(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var category model.ProductCategory
	result := database.GetDB().First(&category, id)
	if result.Error != nil {
		log.Error("Category not found",
			zap.String("category_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Category not found",
		})
	}

	prometheus.RecordCategoryOperation("get")
	log.Info("Category retrieved successfully",
		zap.String("category_id", id),
		zap.String("category_name", category.Name))
	return c.JSON(http.StatusOK, category)
}

// CreateCategory adds a new product category
func CreateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new category")

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Category validation failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "name is required",
		})
	}

	// Check if category with same name exists
	var count int64
	database.GetDB().Model(&model.ProductCategory{}).
		Where("name = ?", req.Name).
		Count(&count)
	if count > 0 {
		log.Warn("Category with this name already exists", zap.String("name", req.Name))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Category with this name already exists",
		})
	}

	category := model.ProductCategory{Name: req.Name}

	result := database.GetDB().Create(&category)
	if result.Error != nil {
		log.Error("Failed to create category",
			zap.String("name", req.Name),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create category",
		})
	}

	prometheus.RecordCategoryOperation("create")
	log.Info("Category created successfully",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name))
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory updates an existing product category
func UpdateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Updating category", zap.String("category_id", id))

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.String("category_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Category validation failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "name is required",
		})
	}

	var category model.ProductCategory
	result := database.GetDB().First(&category, id)
	if result.Error != nil {
		log.Error("Category not found",
			zap.String("category_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Category not found",
		})
	}

	// Check if the new name collides with another category
	if req.Name != category.Name {
		var count int64
		database.GetDB().Model(&model.ProductCategory{}).
			Where("name = ? AND id != ?", req.Name, id).
			Count(&count)
		if count > 0 {
			log.Warn("Category with this name already exists", zap.String("name", req.Name))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Category with this name already exists",
			})
		}
	}

	category.Name = req.Name

	result = database.GetDB().Save(&category)
	if result.Error != nil {
		log.Error("Failed to update category",
			zap.String("category_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update category",
		})
	}

	prometheus.RecordCategoryOperation("update")
	log.Info("Category updated successfully",
		zap.String("category_id", id),
		zap.String("name", category.Name))
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory deletes a product category (soft delete)
func DeleteCategory(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Deleting category", zap.String("category_id", id))

	result := database.GetDB().Delete(&model.ProductCategory{}, id)
	if result.Error != nil {
		log.Error("Failed to delete category",
			zap.String("category_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete category",
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("Category not found for deletion", zap.String("category_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Category not found",
		})
	}

	prometheus.RecordCategoryOperation("delete")
	log.Info("Category deleted successfully", zap.String("category_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Category deleted successfully",
	})
}
