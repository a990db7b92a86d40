package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/veioenza/seqr/internal/models"
)

type VariantRepository interface {
	Create(ctx context.Context, variant *models.SavedVariant) error
	CreateTagType(ctx context.Context, tagType *models.VariantTagType) error
	AddTag(ctx context.Context, tag *models.VariantTag) error
	AddFunctionalData(ctx context.Context, data *models.VariantFunctionalData) error
	AddNote(ctx context.Context, note *models.VariantNote) error
	GetByGUID(ctx context.Context, guid string) (*models.SavedVariant, error)
	ListByFamily(ctx context.Context, familyID uint) ([]models.SavedVariant, error)
}

type variantRepository struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) VariantRepository {
	return &variantRepository{db: db}
}

func (r *variantRepository) Create(ctx context.Context, variant *models.SavedVariant) error {
	return r.db.WithContext(ctx).Create(variant).Error
}

func (r *variantRepository) CreateTagType(ctx context.Context, tagType *models.VariantTagType) error {
	return r.db.WithContext(ctx).Create(tagType).Error
}

func (r *variantRepository) AddTag(ctx context.Context, tag *models.VariantTag) error {
	return r.db.WithContext(ctx).Omit("VariantTagType", "CreatedBy").Create(tag).Error
}

func (r *variantRepository) AddFunctionalData(ctx context.Context, data *models.VariantFunctionalData) error {
	return r.db.WithContext(ctx).Omit("CreatedBy").Create(data).Error
}

func (r *variantRepository) AddNote(ctx context.Context, note *models.VariantNote) error {
	return r.db.WithContext(ctx).Omit("CreatedBy").Create(note).Error
}

func (r *variantRepository) withAssociations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Family.Project").
		Preload("Family.Individuals").
		Preload("Tags.VariantTagType").
		Preload("Tags.CreatedBy").
		Preload("FunctionalData.CreatedBy").
		Preload("Notes.CreatedBy")
}

func (r *variantRepository) GetByGUID(ctx context.Context, guid string) (*models.SavedVariant, error) {
	var variant models.SavedVariant
	err := r.withAssociations(ctx).Where("guid = ?", guid).First(&variant).Error
	if err != nil {
		return nil, translate(err)
	}
	return &variant, nil
}

func (r *variantRepository) ListByFamily(ctx context.Context, familyID uint) ([]models.SavedVariant, error) {
	var variants []models.SavedVariant
	err := r.withAssociations(ctx).
		Where("family_id = ?", familyID).
		Order("xpos_start").
		Find(&variants).Error
	return variants, err
}
