package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"liquorhole/internal/domain"
)

type productView struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Slug            string           `json:"slug"`
	Type            string           `json:"type,omitempty"`
	Description     string           `json:"description,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	DiscountPrice   *decimal.Decimal `json:"discountPrice,omitempty"`
	DiscountPercent *int64           `json:"discountPercent,omitempty"`
	ImageURL        string           `json:"imageUrl,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

var oneHundred = decimal.NewFromInt(100)

// toProductView maps a product for display. A discount price below the list
// price yields discountPercent = round((price - discount) / price * 100);
// without a discount only the list price is shown.
func toProductView(p domain.Product) productView {
	v := productView{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Type:        p.Type,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
	}
	if p.DiscountPrice != nil && p.Price.IsPositive() && p.DiscountPrice.LessThan(p.Price) {
		d := *p.DiscountPrice
		v.DiscountPrice = &d
		pct := p.Price.Sub(d).Div(p.Price).Mul(oneHundred).Round(0).IntPart()
		v.DiscountPercent = &pct
	}
	return v
}

func toProductViews(products []domain.Product) []productView {
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, toProductView(p))
	}
	return out
}

// respondError maps domain errors to HTTP statuses with a JSON payload.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
