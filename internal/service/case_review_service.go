package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"go.uber.org/zap"

	"github.com/veioenza/seqr/internal/export"
	"github.com/veioenza/seqr/internal/jsonview"
	"github.com/veioenza/seqr/internal/metrics"
	"github.com/veioenza/seqr/internal/models"
	"github.com/veioenza/seqr/internal/repository"
	"github.com/veioenza/seqr/internal/storage"
)

type CaseReviewRequest struct {
	Status     models.CaseReviewStatus
	Discussion *string
}

type CaseReviewService struct {
	projects    repository.ProjectRepository
	individuals repository.IndividualRepository
	metrics     *metrics.Metrics
	log         *zap.Logger
	now         func() time.Time
}

func NewCaseReviewService(
	projects repository.ProjectRepository,
	individuals repository.IndividualRepository,
	m *metrics.Metrics,
	log *zap.Logger,
) *CaseReviewService {
	return &CaseReviewService{
		projects:    projects,
		individuals: individuals,
		metrics:     m,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Update sets an individual's case review status. Only staff may review
// cases. The modifier and time are recorded when the status changes.
func (s *CaseReviewService) Update(ctx context.Context, individualGUID string, user *models.User, req CaseReviewRequest) (jsonview.Object, error) {
	if user == nil || !user.IsStaff {
		return nil, fmt.Errorf("update case review: %w", ErrForbidden)
	}
	if !req.Status.Valid() {
		return nil, fmt.Errorf("case review status %q: %w", req.Status, ErrInvalid)
	}

	individual, err := s.individuals.GetByGUID(ctx, individualGUID)
	if err != nil {
		return nil, fmt.Errorf("individual %s: %w", individualGUID, err)
	}

	update := repository.CaseReviewUpdate{
		Status:     req.Status,
		Discussion: req.Discussion,
	}
	if individual.CaseReviewStatus != req.Status {
		update.ModifiedBy = user
		update.ModifiedAt = s.now()
	}

	if err := s.individuals.UpdateCaseReview(ctx, individual.ID, update); err != nil {
		return nil, fmt.Errorf("update case review for %s: %w", individualGUID, err)
	}
	s.metrics.CaseReviewUpdates.WithLabelValues(string(req.Status)).Inc()
	s.log.Info("case review status updated",
		zap.String("individual", individualGUID),
		zap.String("from", string(individual.CaseReviewStatus)),
		zap.String("to", string(req.Status)),
		zap.String("user", user.Username))

	updated, err := s.individuals.GetByGUID(ctx, individualGUID)
	if err != nil {
		return nil, fmt.Errorf("reload individual %s: %w", individualGUID, err)
	}
	return jsonview.Individual(updated, user), nil
}

// Export writes the project's case review table in format and returns the
// download filename.
func (s *CaseReviewService) Export(ctx context.Context, projectGUID string, user *models.User, format string, w io.Writer) (string, error) {
	if format != export.FormatTSV && format != export.FormatXLSX {
		return "", fmt.Errorf("export format %q: %w", format, ErrInvalid)
	}
	if user == nil || !user.IsStaff {
		return "", fmt.Errorf("export case review: %w", ErrForbidden)
	}

	project, err := viewableProject(ctx, s.projects, projectGUID, user)
	if err != nil {
		return "", err
	}

	rows, err := s.rows(ctx, project)
	if err != nil {
		return "", err
	}

	if err := export.Write(w, format, project.Name, rows); err != nil {
		s.metrics.ReportsWritten.WithLabelValues(format, "error").Inc()
		return "", fmt.Errorf("write %s export: %w", format, err)
	}
	s.metrics.ReportsWritten.WithLabelValues(format, "ok").Inc()
	return export.Filename(project.Name, format), nil
}

// WriteSnapshots stores one XLSX per project under a timestamped prefix and
// returns the locations written. A failing project is logged and skipped.
func (s *CaseReviewService) WriteSnapshots(ctx context.Context, store storage.ReportStore) ([]string, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	stamp := s.now().Format("20060102T150405")
	locations := make([]string, 0, len(projects))
	for i := range projects {
		project := &projects[i]
		location, err := s.writeSnapshot(ctx, store, stamp, project)
		if err != nil {
			s.log.Error("case review snapshot failed", zap.String("project", project.GUID), zap.Error(err))
			s.metrics.ReportsWritten.WithLabelValues(export.FormatXLSX, "error").Inc()
			continue
		}
		s.metrics.ReportsWritten.WithLabelValues(export.FormatXLSX, "ok").Inc()
		locations = append(locations, location)
	}
	return locations, nil
}

func (s *CaseReviewService) writeSnapshot(ctx context.Context, store storage.ReportStore, stamp string, project *models.Project) (string, error) {
	rows, err := s.rows(ctx, project)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, project.Name, rows); err != nil {
		return "", fmt.Errorf("build workbook: %w", err)
	}

	key := path.Join(stamp, export.Filename(project.GUID, export.FormatXLSX))
	return store.Put(ctx, key, bytes.NewReader(buf.Bytes()), export.ContentType(export.FormatXLSX))
}

func (s *CaseReviewService) rows(ctx context.Context, project *models.Project) ([]export.CaseReviewRow, error) {
	individuals, err := s.individuals.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("list individuals for %s: %w", project.GUID, err)
	}
	return export.Rows(individuals), nil
}
