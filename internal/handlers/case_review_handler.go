package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veioenza/seqr/internal/export"
	"github.com/veioenza/seqr/internal/jsonview"
	"github.com/veioenza/seqr/internal/middleware"
	"github.com/veioenza/seqr/internal/models"
	"github.com/veioenza/seqr/internal/service"
)

type CaseReviewer interface {
	Update(ctx context.Context, individualGUID string, user *models.User, req service.CaseReviewRequest) (jsonview.Object, error)
	Export(ctx context.Context, projectGUID string, user *models.User, format string, w io.Writer) (string, error)
}

type caseReviewBody struct {
	CaseReviewStatus     string  `json:"caseReviewStatus" binding:"required,casereview"`
	CaseReviewDiscussion *string `json:"caseReviewDiscussion"`
}

type CaseReviewHandler struct {
	service CaseReviewer
}

func NewCaseReviewHandler(service CaseReviewer) *CaseReviewHandler {
	RegisterValidators()
	return &CaseReviewHandler{service: service}
}

func (h *CaseReviewHandler) UpdateCaseReview(c *gin.Context) {
	var body caseReviewBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request",
			"message": err.Error(),
		})
		return
	}

	individual, err := h.service.Update(c.Request.Context(), c.Param("individualGuid"), middleware.CurrentUser(c), service.CaseReviewRequest{
		Status:     models.CaseReviewStatus(body.CaseReviewStatus),
		Discussion: body.CaseReviewDiscussion,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, individual)
}

// ExportCaseReview streams the case review table as an attachment. The
// export is buffered so errors can still be reported as JSON.
func (h *CaseReviewHandler) ExportCaseReview(c *gin.Context) {
	format := c.DefaultQuery("format", export.FormatTSV)

	var buf bytes.Buffer
	filename, err := h.service.Export(c.Request.Context(), c.Param("projectGuid"), middleware.CurrentUser(c), format, &buf)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, export.ContentType(format), buf.Bytes())
}
