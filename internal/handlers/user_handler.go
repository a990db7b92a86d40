package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/veioenza/seqr/internal/jsonview"
	"github.com/veioenza/seqr/internal/middleware"
)

// GetCurrentUser must be mounted behind middleware.RequireUser.
func GetCurrentUser(c *gin.Context) {
	respondOK(c, jsonview.User(middleware.CurrentUser(c)))
}
