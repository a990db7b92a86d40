package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/veioenza/seqr/internal/jsonview"
	"github.com/veioenza/seqr/internal/middleware"
	"github.com/veioenza/seqr/internal/models"
)

type LocusListViewer interface {
	Get(ctx context.Context, guid string, user *models.User) (jsonview.Object, error)
	List(ctx context.Context, user *models.User) ([]jsonview.Object, error)
}

type LocusListHandler struct {
	service LocusListViewer
}

func NewLocusListHandler(service LocusListViewer) *LocusListHandler {
	return &LocusListHandler{service: service}
}

func (h *LocusListHandler) ListLocusLists(c *gin.Context) {
	lists, err := h.service.List(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, lists)
}

func (h *LocusListHandler) GetLocusList(c *gin.Context) {
	list, err := h.service.Get(c.Request.Context(), c.Param("locusListGuid"), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, list)
}
