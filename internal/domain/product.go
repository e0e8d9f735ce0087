package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Type          string           `json:"type,omitempty"`
	Description   string           `json:"description,omitempty"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discountPrice,omitempty"`
	ImageURL      string           `json:"imageUrl,omitempty"`
	CategoryID    *string          `json:"categoryId,omitempty"`
	BrandID       *string          `json:"brandId,omitempty"`
	MenuItemID    *int64           `json:"menuItemId,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}
