package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veioenza/seqr/internal/service"
)

// respondError maps service errors onto HTTP statuses. Unexpected errors are
// attached to the context for the request logger and hidden from clients.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, service.ErrNotFound):
		status, message = http.StatusNotFound, "not found"
	case errors.Is(err, service.ErrForbidden):
		status, message = http.StatusForbidden, "permission denied"
	case errors.Is(err, service.ErrInvalid):
		status, message = http.StatusBadRequest, "invalid request"
	default:
		c.Error(err)
		c.AbortWithStatusJSON(status, gin.H{"error": message})
		return
	}

	c.AbortWithStatusJSON(status, gin.H{
		"error":   message,
		"message": err.Error(),
	})
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}
