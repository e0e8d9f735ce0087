package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	cartSessionCookie  = "cart_session"
	cartSessionMaxAge  = 30 * 24 * time.Hour
	adminSessionCookie = "admin_jwt"

	ctxKeyCartSession = "cartSessionID"
)

// cartSessionMiddleware ensures every cart-touching request carries a session
// id, minting one in an HttpOnly cookie on first contact.
func cartSessionMiddleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cartSessionCookie)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cartSessionCookie, sid, int(cartSessionMaxAge.Seconds()), "/", "", secure, true)
		}
		c.Set(ctxKeyCartSession, sid)
		c.Next()
	}
}

func cartSessionID(c *gin.Context) string {
	return c.GetString(ctxKeyCartSession)
}

// adminAuthMiddleware rejects requests without a valid admin token cookie.
func adminAuthMiddleware(auth AdminAuth) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminSessionCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if err := auth.VerifyToken(token); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Next()
	}
}
