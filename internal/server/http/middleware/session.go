package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionContextKey is a gin context key for the visitor session id.
	SessionContextKey = "sessionID"
	sessionCookieName = "sushibar_session"
)

// Session assigns every visitor a random session id kept in a cookie.
func Session(ttl time.Duration, secure bool) gin.HandlerFunc {
	maxAge := int(ttl / time.Second)
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookieName)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookieName, id, maxAge, "/", "", secure, true)
		c.Set(SessionContextKey, id)
		c.Next()
	}
}

// SessionID returns the visitor session id or empty string.
func SessionID(c *gin.Context) string {
	return c.GetString(SessionContextKey)
}
