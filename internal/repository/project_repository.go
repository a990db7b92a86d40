package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/veioenza/seqr/internal/models"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	AddCollaborator(ctx context.Context, projectID, userID uint, canEdit bool) error
	GetByGUID(ctx context.Context, guid string) (*models.Project, error)
	List(ctx context.Context) ([]models.Project, error)
	ListForUser(ctx context.Context, user *models.User) ([]models.Project, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) AddCollaborator(ctx context.Context, projectID, userID uint, canEdit bool) error {
	return r.db.WithContext(ctx).Create(&models.ProjectCollaborator{
		ProjectID: projectID,
		UserID:    userID,
		CanEdit:   canEdit,
	}).Error
}

func (r *projectRepository) withAssociations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Categories").
		Preload("Collaborators.User")
}

func (r *projectRepository) GetByGUID(ctx context.Context, guid string) (*models.Project, error) {
	var project models.Project
	err := r.withAssociations(ctx).Where("guid = ?", guid).First(&project).Error
	if err != nil {
		return nil, translate(err)
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.withAssociations(ctx).Order("name").Find(&projects).Error
	return projects, err
}

// ListForUser returns every project for staff, otherwise the projects the
// user collaborates on.
func (r *projectRepository) ListForUser(ctx context.Context, user *models.User) ([]models.Project, error) {
	if user != nil && user.IsStaff {
		return r.List(ctx)
	}
	if user == nil {
		return []models.Project{}, nil
	}

	var projects []models.Project
	err := r.withAssociations(ctx).
		Where("id IN (?)", r.db.Model(&models.ProjectCollaborator{}).Select("project_id").Where("user_id = ?", user.ID)).
		Order("name").
		Find(&projects).Error
	return projects, err
}
