package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"liquorhole/internal/cart"
	"liquorhole/internal/domain"
)

type cartItemPayload struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
}

type updateQuantityPayload struct {
	Quantity int `json:"quantity"`
}

func (h *handlers) sessionStore(c *gin.Context) *cart.Store {
	return h.deps.Carts.Get(c.Request.Context(), cartSessionID(c))
}

func cartResponse(store *cart.Store) gin.H {
	lines := store.Lines()
	if lines == nil {
		lines = []cart.Line{}
	}
	return gin.H{
		"items":     lines,
		"total":     store.Total(),
		"itemCount": store.ItemCount(),
	}
}

func (h *handlers) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, cartResponse(h.sessionStore(c)))
}

func (h *handlers) addCartItem(c *gin.Context) {
	var payload cartItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	store := h.sessionStore(c)
	// a payload without an id is a silent no-op, matching the store contract
	store.AddItem(c.Request.Context(), cart.Product{
		ID:       payload.ID,
		Name:     payload.Name,
		Price:    payload.Price,
		ImageURL: payload.ImageURL,
	})
	c.JSON(http.StatusOK, cartResponse(store))
}

func (h *handlers) updateCartItem(c *gin.Context) {
	var payload updateQuantityPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	store := h.sessionStore(c)
	store.UpdateQuantity(c.Request.Context(), c.Param("id"), payload.Quantity)
	c.JSON(http.StatusOK, cartResponse(store))
}

func (h *handlers) removeCartItem(c *gin.Context) {
	store := h.sessionStore(c)
	store.RemoveItem(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, cartResponse(store))
}

func (h *handlers) clearCart(c *gin.Context) {
	store := h.sessionStore(c)
	store.Clear(c.Request.Context())
	c.JSON(http.StatusOK, cartResponse(store))
}

// quickAdd is the detached-widget path: it resolves the product server-side
// and publishes it on the store's bus instead of calling AddItem directly.
func (h *handlers) quickAdd(c *gin.Context) {
	var payload struct {
		Slug string `json:"slug"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug required"})
		return
	}

	p, err := h.deps.Products.GetBySlug(c.Request.Context(), payload.Slug)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			h.logger.Printf("quick add %s: %v", payload.Slug, err)
		}
		respondError(c, err)
		return
	}

	price := p.Price
	if p.DiscountPrice != nil {
		price = *p.DiscountPrice
	}

	store := h.sessionStore(c)
	store.Events().Publish(c.Request.Context(), cart.Product{
		ID:       p.ID,
		Name:     p.Name,
		Price:    price,
		ImageURL: p.ImageURL,
	})
	c.JSON(http.StatusOK, cartResponse(store))
}
