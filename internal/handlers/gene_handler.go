package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/veioenza/seqr/internal/jsonview"
	"github.com/veioenza/seqr/internal/middleware"
	"github.com/veioenza/seqr/internal/models"
)

type GeneViewer interface {
	Gene(ctx context.Context, geneID string, user *models.User) (jsonview.Object, error)
}

type GeneHandler struct {
	service GeneViewer
}

func NewGeneHandler(service GeneViewer) *GeneHandler {
	return &GeneHandler{service: service}
}

func (h *GeneHandler) GetGene(c *gin.Context) {
	gene, err := h.service.Gene(c.Request.Context(), c.Param("geneId"), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gene)
}
