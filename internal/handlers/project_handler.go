package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/veioenza/seqr/internal/jsonview"
	"github.com/veioenza/seqr/internal/middleware"
	"github.com/veioenza/seqr/internal/models"
	"github.com/veioenza/seqr/internal/service"
)

type ProjectViewer interface {
	ListProjects(ctx context.Context, user *models.User) ([]jsonview.Object, error)
	ProjectPage(ctx context.Context, guid string, user *models.User) (*service.ProjectPage, error)
	Family(ctx context.Context, guid string, user *models.User) (jsonview.Object, error)
	Individual(ctx context.Context, guid string, user *models.User) (jsonview.Object, error)
}

type ProjectHandler struct {
	service ProjectViewer
}

func NewProjectHandler(service ProjectViewer) *ProjectHandler {
	return &ProjectHandler{service: service}
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.service.ListProjects(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, projects)
}

func (h *ProjectHandler) GetProjectPage(c *gin.Context) {
	page, err := h.service.ProjectPage(c.Request.Context(), c.Param("projectGuid"), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, page)
}

func (h *ProjectHandler) GetFamily(c *gin.Context) {
	family, err := h.service.Family(c.Request.Context(), c.Param("familyGuid"), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, family)
}

func (h *ProjectHandler) GetIndividual(c *gin.Context) {
	individual, err := h.service.Individual(c.Request.Context(), c.Param("individualGuid"), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, individual)
}
