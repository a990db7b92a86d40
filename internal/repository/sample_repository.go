package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/veioenza/seqr/internal/models"
)

type SampleRepository interface {
	Create(ctx context.Context, sample *models.Sample) error
	ListByProject(ctx context.Context, projectID uint) ([]models.Sample, error)
}

type sampleRepository struct {
	db *gorm.DB
}

func NewSampleRepository(db *gorm.DB) SampleRepository {
	return &sampleRepository{db: db}
}

func (r *sampleRepository) Create(ctx context.Context, sample *models.Sample) error {
	return r.db.WithContext(ctx).Create(sample).Error
}

func (r *sampleRepository) ListByProject(ctx context.Context, projectID uint) ([]models.Sample, error) {
	individuals := r.db.Model(&models.Individual{}).
		Select("individuals.id").
		Joins("JOIN families ON families.id = individuals.family_id").
		Where("families.project_id = ?", projectID)

	var samples []models.Sample
	err := r.db.WithContext(ctx).
		Preload("Individual.Family.Project").
		Where("individual_id IN (?)", individuals).
		Order("sample_id").
		Find(&samples).Error
	return samples, err
}
