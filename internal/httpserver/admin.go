package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"liquorhole/internal/domain"
	adminsvc "liquorhole/internal/service/admin"
)

func (h *handlers) adminLogin(c *gin.Context) {
	var payload struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing password"})
		return
	}

	token, err := h.deps.Admin.Login(payload.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
			return
		}
		h.logger.Printf("admin login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(adminSessionCookie, token, int(adminsvc.TokenTTL.Seconds()), "/", "", h.secureCookies, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *handlers) adminLogout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(adminSessionCookie, "", -1, "/", "", h.secureCookies, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "logged out"})
}

func (h *handlers) adminListOrders(c *gin.Context) {
	orders, err := h.deps.AdminOrders.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Printf("admin list orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching orders"})
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *handlers) adminUpdateOrderStatus(c *gin.Context) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing status"})
		return
	}
	if !domain.ValidOrderStatus(payload.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	if err := h.deps.AdminOrders.UpdateStatus(c.Request.Context(), c.Param("id"), payload.Status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		h.logger.Printf("admin update order %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
