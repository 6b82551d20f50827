package handler

import (
	"MediaVault/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// writeServiceError maps service sentinels onto HTTP statuses, keeping
// the same JSON error shape as utils.Fail.
func writeServiceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrPayloadTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrNotImplemented):
		status = http.StatusNotImplemented
	case errors.Is(err, service.ErrUnsupportedFormat),
		errors.Is(err, service.ErrCorruptImage),
		errors.Is(err, service.ErrEmptySource),
		errors.Is(err, service.ErrInvalidRequest):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{
		"code": -1,
		"msg":  err.Error(),
	})
}
