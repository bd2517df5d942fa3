package handler

import (
	"net/http"
	"time"

	"catalog-service/internal/model"
	"catalog-service/pkg/database"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TranslationRequest is the shared body for creating either translation
// variant. The price fields only matter on the product route; the
// category route ignores them.
type TranslationRequest struct {
	Name            string     `json:"name" validate:"required"`
	Description     string     `json:"description"`
	LanguageCode    string     `json:"languageCode" validate:"required"`
	Price           *float64   `json:"price"`
	PriceCurrency   string     `json:"priceCurrency"`
	PriceActiveFrom *time.Time `json:"priceActiveFrom"`
	PriceActiveTo   *time.Time `json:"priceActiveTo"`
	PriceActive     *bool      `json:"priceActive"`
}

// TranslationResponse is the uniform response shape for both variants.
// Price stays null for category translations.
type TranslationResponse struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	LanguageCode string       `json:"languageCode"`
	Price        *model.Price `json:"price"`
}

// priceFromRequest builds the price record owned by a product translation.
// The currency defaults when absent, and the active flag defaults to
// whether now falls inside the supplied window.
func priceFromRequest(req *TranslationRequest, translationName string) (*model.Price, error) {
	currency := model.DefaultCurrency
	if req.PriceCurrency != "" {
		normalized, err := model.NormalizeCurrency(req.PriceCurrency)
		if err != nil {
			return nil, err
		}
		currency = normalized
	}

	active := model.ActiveWithin(req.PriceActiveFrom, req.PriceActiveTo, time.Now())
	if req.PriceActive != nil {
		active = *req.PriceActive
	}

	return &model.Price{
		Amount:          *req.Price,
		Currency:        currency,
		ActiveFrom:      req.PriceActiveFrom,
		ActiveTo:        req.PriceActiveTo,
		Active:          active,
		TranslationName: translationName,
	}, nil
}

// ListProductTranslations retrieves all translations of a product
func ListProductTranslations(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var product model.Product
	if result := database.GetDB().First(&product, id); result.Error != nil {
		log.Error("Product not found",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	var translations []model.ProductTranslation
	result := database.GetDB().Where("product_id = ?", product.ID).Find(&translations)
	if result.Error != nil {
		log.Error("Failed to retrieve translations",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve translations",
		})
	}

	prometheus.RecordTranslationOperation("product", "list")
	log.Info("Translations retrieved successfully",
		zap.String("product_id", id),
		zap.Int("count", len(translations)))
	return c.JSON(http.StatusOK, translations)
}

// CreateProductTranslation creates a localized translation for a product
// together with the price it owns. The price field is mandatory for this
// variant. Both records are written in one transaction so a failure on
// either leaves nothing behind.
func CreateProductTranslation(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Creating product translation", zap.String("product_id", id))

	var req TranslationRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Translation validation failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "name and languageCode are required",
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

	if req.Price == nil {
		log.Warn("Missing price on product translation",
			zap.String("product_id", id),
			zap.String("name", req.Name))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "price is required for product translations",
		})
	}

	// The name is the primary key, so reject duplicates up front with a
	// readable message instead of surfacing a constraint violation.
	var count int64
	database.GetDB().Model(&model.ProductTranslation{}).
		Where("name = ?", req.Name).
		Count(&count)
	if count > 0 {
		log.Warn("Translation with this name already exists", zap.String("name", req.Name))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Translation with this name already exists",
		})
	}

	price, err := priceFromRequest(&req, req.Name)
	if err != nil {
		log.Warn("Invalid currency code",
			zap.String("currency", req.PriceCurrency),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": err.Error(),
		})
	}

	translation := model.ProductTranslation{
		Name:         req.Name,
		Description:  req.Description,
		LanguageCode: req.LanguageCode,
		ProductID:    product.ID,
	}

	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(price).Error; err != nil {
			return err
		}
		translation.PriceID = &price.ID
		return tx.Create(&translation).Error
	})
	if err != nil {
		log.Error("Failed to create product translation",
			zap.String("product_id", id),
			zap.String("name", req.Name),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create translation",
		})
	}

	prometheus.RecordTranslationOperation("product", "create")
	log.Info("Product translation created successfully",
		zap.String("product_id", id),
		zap.String("name", translation.Name),
		zap.String("language_code", translation.LanguageCode),
		zap.Uint("price_id", price.ID))
	return c.JSON(http.StatusCreated, TranslationResponse{
		Name:         translation.Name,
		Description:  translation.Description,
		LanguageCode: translation.LanguageCode,
		Price:        price,
	})
}

// ListCategoryTranslations retrieves all translations of a category
func ListCategoryTranslations(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var category model.ProductCategory
	if result := database.GetDB().First(&category, id); result.Error != nil {
		log.Error("Category not found",
			zap.String("category_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Category not found",
		})
	}

	var translations []model.CategoryTranslation
	result := database.GetDB().Where("category_id = ?", category.ID).Find(&translations)
	if result.Error != nil {
		log.Error("Failed to retrieve translations",
			zap.String("category_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve translations",
		})
	}

	prometheus.RecordTranslationOperation("category", "list")
	log.Info("Translations retrieved successfully",
		zap.String("category_id", id),
		zap.Int("count", len(translations)))
	return c.JSON(http.StatusOK, translations)
}

// CreateCategoryTranslation creates a localized translation for a
// category. Category translations never carry a price, so any price
// fields in the body are ignored and the response price stays null.
func CreateCategoryTranslation(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Creating category translation", zap.String("category_id", id))

	var req TranslationRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Translation validation failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "name and languageCode are required",
		})
	}

	var category model.ProductCategory
	if result := database.GetDB().First(&category, id); result.Error != nil {
		log.Error("Category not found",
			zap.String("category_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Category not found",
		})
	}

	var count int64
	database.GetDB().Model(&model.CategoryTranslation{}).
		Where("name = ?", req.Name).
		Count(&count)
	if count > 0 {
		log.Warn("Translation with this name already exists", zap.String("name", req.Name))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Translation with this name already exists",
		})
	}

	translation := model.CategoryTranslation{
		Name:         req.Name,
		Description:  req.Description,
		LanguageCode: req.LanguageCode,
		CategoryID:   category.ID,
	}

	result := database.GetDB().Create(&translation)
	if result.Error != nil {
		log.Error("Failed to create category translation",
			zap.String("category_id", id),
			zap.String("name", req.Name),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create translation",
		})
	}

	prometheus.RecordTranslationOperation("category", "create")
	log.Info("Category translation created successfully",
		zap.String("category_id", id),
		zap.String("name", translation.Name),
		zap.String("language_code", translation.LanguageCode))
	return c.JSON(http.StatusCreated, TranslationResponse{
		Name:         translation.Name,
		Description:  translation.Description,
		LanguageCode: translation.LanguageCode,
		Price:        nil,
	})
}
