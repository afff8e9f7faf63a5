package handlers

import (
	"errors"
	"net/http"

	"blogserver/internal/service"

	"github.com/gin-gonic/gin"
)

const errInternal = "internal error"

// validationErrs map to 422: missing or malformed input, conflicts and bad
// credentials, matching the platform's historical status usage.
var validationErrs = []error{
	service.ErrMissingFields,
	service.ErrEmailTaken,
	service.ErrPasswordTooShort,
	service.ErrPasswordMismatch,
	service.ErrInvalidCredentials,
	service.ErrWrongPassword,
	service.ErrFileMissing,
	service.ErrAvatarTooLarge,
	service.ErrThumbnailTooLarge,
}

var notFoundErrs = []error{
	service.ErrUserNotFound,
	service.ErrPostNotFound,
}

// respondError maps a service error onto an HTTP status and a uniform
// {"error": msg} body. Unrecognized errors become a logged 500 with a
// generic message so store/file details never leak to clients.
func (h *Handler) respondError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	for _, known := range validationErrs {
		if errors.Is(err, known) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
	}
	for _, known := range notFoundErrs {
		if errors.Is(err, known) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
	}
	if errors.Is(err, service.ErrUpdateFailed) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.log != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": errInternal})
}
