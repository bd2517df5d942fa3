package model

import (
	"errors"
	"strings"
	"time"
)

// DefaultCurrency is used when a price is created without a currency code.
const DefaultCurrency = "USD"

// ErrInvalidCurrency is returned for currency codes that are not exactly
// three characters long.
var ErrInvalidCurrency = errors.New("currency code must be exactly 3 characters")

// Price is a currency-denominated amount with a validity window, owned by
// a product translation. TranslationName points back at the owning
// translation's primary key.
type Price struct {
	ID              uint       `json:"id" gorm:"primarykey"`
	Amount          float64    `json:"amount" gorm:"not null"`
	Currency        string     `json:"currency" gorm:"type:varchar(3);not null"`
	ActiveFrom      *time.Time `json:"activeFrom"`
	ActiveTo        *time.Time `json:"activeTo"`
	Active          bool       `json:"active"`
	TranslationName string     `json:"translation_name" gorm:"type:varchar(255);index"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// PriceUpdate is a partial update payload for a price. Nil fields leave
// the stored value untouched.
type PriceUpdate struct {
	Amount     *float64   `json:"amount"`
	Currency   *string    `json:"currency"`
	ActiveFrom *time.Time `json:"activeFrom"`
	ActiveTo   *time.Time `json:"activeTo"`
	Active     *bool      `json:"active"`
}

// NormalizeCurrency validates a currency code and returns it uppercased.
func NormalizeCurrency(code string) (string, error) {
	if len(code) != 3 {
		return "", ErrInvalidCurrency
	}
	return strings.ToUpper(code), nil
}

// ActiveWithin reports whether now falls inside the [from, to] window.
// A nil bound does not constrain, so a price without dates is active.
// This is the default for the Active flag when the caller does not
// supply one explicitly.
func ActiveWithin(from, to *time.Time, now time.Time) bool {
	if from != nil && now.Before(*from) {
		return false
	}
	if to != nil && now.After(*to) {
		return false
	}
	return true
}

// Apply merges a partial update into the price. Only fields present in
// the payload overwrite the stored values; the currency is normalized
// the same way as at creation.
func (p *Price) Apply(upd *PriceUpdate) error {
	if upd.Amount != nil {
		p.Amount = *upd.Amount
	}
	if upd.Currency != nil {
		currency, err := NormalizeCurrency(*upd.Currency)
		if err != nil {
			return err
		}
		p.Currency = currency
	}
	if upd.ActiveFrom != nil {
		p.ActiveFrom = upd.ActiveFrom
	}
	if upd.ActiveTo != nil {
		p.ActiveTo = upd.ActiveTo
	}
	if upd.Active != nil {
		p.Active = *upd.Active
	}
	return nil
}
