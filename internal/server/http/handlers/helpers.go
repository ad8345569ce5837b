package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/sushibar/internal/domain/errors"
	"github.com/polkiloo/sushibar/internal/server/http/dto"
	"github.com/polkiloo/sushibar/internal/server/http/middleware"
)

const (
	flashSuccess = "success"
	flashError   = "error"

	invalidJSONMessage = "Invalid JSON payload"
	internalMessage    = "internal error"
)

// isJSONBody reports whether the request body is JSON encoded.
func isJSONBody(c *gin.Context) bool {
	return c.ContentType() == gin.MIMEJSON
}

// wantsJSON reports whether the caller expects a JSON response instead of a redirect.
func wantsJSON(c *gin.Context) bool {
	return isJSONBody(c) || c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

// decodePayload reads a loosely typed body keeping numbers as json.Number.
func decodePayload(c *gin.Context) (dto.Payload, error) {
	if isJSONBody(c) {
		var payload dto.Payload
		decoder := json.NewDecoder(c.Request.Body)
		decoder.UseNumber()
		if err := decoder.Decode(&payload); err != nil {
			return nil, err
		}
		if payload == nil {
			payload = dto.Payload{}
		}
		return payload, nil
	}
	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	return dto.FormPayload(c.Request.PostForm), nil
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrValidation), errors.Is(err, domainErrors.ErrUnknownAction):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domainErrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrInvalidTransition), errors.Is(err, domainErrors.ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage hides internal failure details from clients.
func errorMessage(err error, status int) string {
	if status >= http.StatusInternalServerError {
		return internalMessage
	}
	return err.Error()
}

// writeError renders err as {success:false, error} and records it for the request log.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, dto.StatusResponse{Success: false, Error: errorMessage(err, status)})
}

func writeBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, dto.StatusResponse{Success: false, Error: msg})
}

// pathID parses a positive numeric path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// flasher renders form outcomes as a flash message plus 303 redirect.
type flasher struct {
	sessions SessionFacade
	logger   *slog.Logger
}

func (f flasher) flash(ctx context.Context, sessionID, level, message string) {
	if sessionID == "" {
		return
	}
	if err := f.sessions.PushFlash(ctx, sessionID, level, message); err != nil {
		f.logger.Warn("store flash message", slog.String("error", err.Error()))
	}
}

func (f flasher) redirect(c *gin.Context, level, message, target string) {
	f.flash(c.Request.Context(), middleware.SessionID(c), level, message)
	c.Redirect(http.StatusSeeOther, target)
}

func (f flasher) redirectError(c *gin.Context, err error, target string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	f.redirect(c, flashError, errorMessage(err, status), target)
}

// backTo returns the same-host referer path or fallback.
func backTo(c *gin.Context, fallback string) string {
	ref := c.GetHeader("Referer")
	if ref == "" {
		return fallback
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != c.Request.Host) || u.Path == "" {
		return fallback
	}
	return u.RequestURI()
}
