package model

import "time"

// ProductTranslation is a localized text record for a product. The
// human-readable name doubles as the primary key, so uniqueness is
// enforced by the storage layer rather than by convention. A product
// translation always owns a price, referenced by foreign key.
type ProductTranslation struct {
	Name         string    `json:"name" gorm:"type:varchar(255);primarykey"`
	Description  string    `json:"description" gorm:"type:text"`
	LanguageCode string    `json:"languageCode" gorm:"type:varchar(8);not null"`
	ProductID    uint      `json:"product_id" gorm:"index;not null"`
	PriceID      *uint     `json:"price_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CategoryTranslation is a localized text record for a category.
// Unlike product translations it never carries a price.
type CategoryTranslation struct {
	Name         string    `json:"name" gorm:"type:varchar(255);primarykey"`
	Description  string    `json:"description" gorm:"type:text"`
	LanguageCode string    `json:"languageCode" gorm:"type:varchar(8);not null"`
	CategoryID   uint      `json:"category_id" gorm:"index;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
