package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/veioenza/seqr/internal/models"
)

type FamilyRepository interface {
	Create(ctx context.Context, family *models.Family) error
	GetByGUID(ctx context.Context, guid string) (*models.Family, error)
	ListByProject(ctx context.Context, projectID uint) ([]models.Family, error)
}

type familyRepository struct {
	db *gorm.DB
}

func NewFamilyRepository(db *gorm.DB) FamilyRepository {
	return &familyRepository{db: db}
}

func (r *familyRepository) Create(ctx context.Context, family *models.Family) error {
	return r.db.WithContext(ctx).Create(family).Error
}

func (r *familyRepository) GetByGUID(ctx context.Context, guid string) (*models.Family, error) {
	var family models.Family
	err := r.db.WithContext(ctx).
		Preload("Project.Collaborators.User").
		Preload("AnalysedBy.CreatedBy").
		Preload("Individuals", orderIndividuals).
		Where("guid = ?", guid).
		First(&family).Error
	if err != nil {
		return nil, translate(err)
	}
	return &family, nil
}

func (r *familyRepository) ListByProject(ctx context.Context, projectID uint) ([]models.Family, error) {
	var families []models.Family
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("AnalysedBy.CreatedBy").
		Preload("Individuals", orderIndividuals).
		Where("project_id = ?", projectID).
		Order("family_id").
		Find(&families).Error
	return families, err
}

func orderIndividuals(db *gorm.DB) *gorm.DB {
	return db.Order("individual_id")
}
