package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"liquorhole/internal/domain"
	ordersvc "liquorhole/internal/service/order"
)

type checkoutPayload struct {
	CustomerName string `json:"customerName"`
	PhoneNumber  string `json:"phoneNumber"`
	Email        string `json:"customerEmail"`
	Address      string `json:"address"`
	Notes        string `json:"notes"`
}

// submitOrder turns the session cart into an order. The cart is cleared once
// the order row is committed, including when email delivery failed after the
// commit.
func (h *handlers) submitOrder(c *gin.Context) {
	var payload checkoutPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	store := h.sessionStore(c)
	lines := store.Lines()
	items := make([]domain.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, domain.OrderItem{
			Name:      l.Name,
			Quantity:  l.Quantity,
			LineTotal: l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))),
		})
	}

	res, err := h.deps.Orders.Submit(c.Request.Context(), ordersvc.SubmitInput{
		CustomerName: payload.CustomerName,
		PhoneNumber:  payload.PhoneNumber,
		Email:        payload.Email,
		Address:      payload.Address,
		Notes:        payload.Notes,
		Items:        items,
		Total:        store.Total(),
	})
	if err != nil {
		if errors.Is(err, ordersvc.ErrEmailFailed) {
			store.Clear(c.Request.Context())
			body := gin.H{"error": "order saved but confirmation email failed"}
			if res != nil {
				body["orderId"] = res.OrderID
			}
			c.JSON(http.StatusBadGateway, body)
			return
		}
		respondError(c, err)
		return
	}

	store.Clear(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"orderId":     res.OrderID,
		"whatsappUrl": res.WhatsAppURL,
	})
}
