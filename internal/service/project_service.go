package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/veioenza/seqr/internal/jsonview"
	"github.com/veioenza/seqr/internal/models"
	"github.com/veioenza/seqr/internal/repository"
)

// ProjectPage is everything the project page renders, keyed by guid.
type ProjectPage struct {
	Project           jsonview.Object            `json:"project"`
	FamiliesByGUID    map[string]jsonview.Object `json:"familiesByGuid"`
	IndividualsByGUID map[string]jsonview.Object `json:"individualsByGuid"`
	SamplesByGUID     map[string]jsonview.Object `json:"samplesByGuid"`
}

type ProjectService struct {
	projects    repository.ProjectRepository
	families    repository.FamilyRepository
	individuals repository.IndividualRepository
	samples     repository.SampleRepository
	log         *zap.Logger
}

func NewProjectService(
	projects repository.ProjectRepository,
	families repository.FamilyRepository,
	individuals repository.IndividualRepository,
	samples repository.SampleRepository,
	log *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projects:    projects,
		families:    families,
		individuals: individuals,
		samples:     samples,
		log:         log,
	}
}

// viewableProject loads a project and checks the user may see it.
func viewableProject(ctx context.Context, projects repository.ProjectRepository, guid string, user *models.User) (*models.Project, error) {
	project, err := projects.GetByGUID(ctx, guid)
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", guid, err)
	}
	if !project.CanView(user) {
		return nil, fmt.Errorf("project %s: %w", guid, ErrForbidden)
	}
	return project, nil
}

func (s *ProjectService) ListProjects(ctx context.Context, user *models.User) ([]jsonview.Object, error) {
	projects, err := s.projects.ListForUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	result := make([]jsonview.Object, 0, len(projects))
	for i := range projects {
		result = append(result, jsonview.Project(&projects[i], user))
	}
	return result, nil
}

func (s *ProjectService) ProjectPage(ctx context.Context, guid string, user *models.User) (*ProjectPage, error) {
	project, err := viewableProject(ctx, s.projects, guid, user)
	if err != nil {
		return nil, err
	}

	families, err := s.families.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("list families: %w", err)
	}
	individuals, err := s.individuals.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("list individuals: %w", err)
	}
	samples, err := s.samples.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}

	page := &ProjectPage{
		Project:           jsonview.Project(project, user),
		FamiliesByGUID:    make(map[string]jsonview.Object, len(families)),
		IndividualsByGUID: make(map[string]jsonview.Object, len(individuals)),
		SamplesByGUID:     make(map[string]jsonview.Object, len(samples)),
	}
	for _, f := range jsonview.Families(families, user, jsonview.FamilyOptions{AddIndividualGuids: true}) {
		page.FamiliesByGUID[f["familyGuid"].(string)] = f
	}
	for _, i := range jsonview.Individuals(individuals, user) {
		page.IndividualsByGUID[i["individualGuid"].(string)] = i
	}
	for _, sm := range jsonview.Samples(samples) {
		page.SamplesByGUID[sm["sampleGuid"].(string)] = sm
	}

	s.log.Debug("project page loaded",
		zap.String("project", guid),
		zap.Int("families", len(families)),
		zap.Int("individuals", len(individuals)),
		zap.Int("samples", len(samples)))
	return page, nil
}

func (s *ProjectService) Family(ctx context.Context, guid string, user *models.User) (jsonview.Object, error) {
	family, err := s.families.GetByGUID(ctx, guid)
	if err != nil {
		return nil, fmt.Errorf("family %s: %w", guid, err)
	}
	if !family.Project.CanView(user) {
		return nil, fmt.Errorf("family %s: %w", guid, ErrForbidden)
	}
	return jsonview.Family(family, user, jsonview.FamilyOptions{AddIndividualGuids: true}), nil
}

func (s *ProjectService) Individual(ctx context.Context, guid string, user *models.User) (jsonview.Object, error) {
	individual, err := s.individuals.GetByGUID(ctx, guid)
	if err != nil {
		return nil, fmt.Errorf("individual %s: %w", guid, err)
	}
	if !individual.Family.Project.CanView(user) {
		return nil, fmt.Errorf("individual %s: %w", guid, ErrForbidden)
	}
	return jsonview.Individual(individual, user), nil
}
