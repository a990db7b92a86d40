package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/veioenza/seqr/internal/jsonview"
	"github.com/veioenza/seqr/internal/middleware"
	"github.com/veioenza/seqr/internal/models"
	"github.com/veioenza/seqr/internal/service"
)

type VariantLister interface {
	SavedVariants(ctx context.Context, familyGUID string, user *models.User, opts service.VariantOptions) ([]jsonview.Object, error)
}

type VariantHandler struct {
	service VariantLister
}

func NewVariantHandler(service VariantLister) *VariantHandler {
	return &VariantHandler{service: service}
}

func (h *VariantHandler) GetSavedVariants(c *gin.Context) {
	opts := service.VariantOptions{
		AddTags:    queryBool(c, "tags", true),
		AddDetails: queryBool(c, "details", false),
	}

	variants, err := h.service.SavedVariants(c.Request.Context(), c.Param("familyGuid"), middleware.CurrentUser(c), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, variants)
}

func queryBool(c *gin.Context, key string, fallback bool) bool {
	v, err := strconv.ParseBool(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}
