package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/sushibar/internal/domain/errors"
	"github.com/polkiloo/sushibar/internal/server/http/dto"
	"github.com/polkiloo/sushibar/internal/server/http/middleware"
)

// AuthHandler processes registration and login.
type AuthHandler struct {
	facade       AuthFacade
	secureCookie bool
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, secureCookie bool) *AuthHandler {
	return &AuthHandler{facade: facade, secureCookie: secureCookie}
}

// Register handles POST /api/user/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBind(&req); err != nil {
		writeBadRequest(c, "invalid request")
		return
	}

	token, err := h.facade.Register(c.Request.Context(), req.Login, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidCredentials) {
			writeBadRequest(c, err.Error())
			return
		}
		writeError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token, h.secureCookie)
	c.JSON(http.StatusOK, dto.AuthResponse{Success: true, Token: token})
}

// Login handles POST /api/user/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBind(&req); err != nil {
		writeBadRequest(c, "invalid request")
		return
	}

	token, err := h.facade.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, dto.StatusResponse{Success: false, Error: err.Error()})
			return
		}
		writeError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token, h.secureCookie)
	c.JSON(http.StatusOK, dto.AuthResponse{Success: true, Token: token})
}
