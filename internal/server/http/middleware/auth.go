package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/sushibar/internal/domain/model"
	pkgAuth "github.com/polkiloo/sushibar/internal/pkg/auth"
)

const (
	// PrincipalContextKey is a gin context key for the authenticated caller.
	PrincipalContextKey = "principal"
	authCookieName      = "sushibar_token"
)

// TokenParser resolves a bearer token into a principal.
type TokenParser interface {
	ParseToken(token string) (model.Principal, error)
}

// OptionalAuth attaches the principal when a valid token is present and ignores bad tokens.
func OptionalAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if principal, err := parser.ParseToken(token); err == nil {
				c.Set(PrincipalContextKey, &principal)
			}
		}
		c.Next()
	}
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abort(c, http.StatusUnauthorized, "unauthorized")
			return
		}

		principal, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				abort(c, http.StatusUnauthorized, "unauthorized")
				return
			}
			abort(c, http.StatusInternalServerError, "internal error")
			return
		}

		c.Set(PrincipalContextKey, &principal)
		c.Next()
	}
}

// StaffOnly rejects callers without staff or management role. Use after AuthRequired.
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := CurrentPrincipal(c)
		if principal == nil {
			abort(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		if !principal.Role.IsStaff() {
			abort(c, http.StatusForbidden, "forbidden")
			return
		}
		c.Next()
	}
}

// CurrentPrincipal returns authenticated caller or nil.
func CurrentPrincipal(c *gin.Context) *model.Principal {
	val, ok := c.Get(PrincipalContextKey)
	if !ok {
		return nil
	}
	p, _ := val.(*model.Principal)
	return p
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response; secure limits it to HTTPS.
func SetAuthCookie(c *gin.Context, token string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, token, 0, "/", "", secure, true)
	c.Header("Authorization", "Bearer "+token)
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": msg})
}
