package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/veioenza/seqr/internal/models"
)

type GeneRepository interface {
	Create(ctx context.Context, gene *models.GeneInfo) error
	AddNote(ctx context.Context, note *models.GeneNote) error
	GetByGeneID(ctx context.Context, geneID string) (*models.GeneInfo, error)
	ListNotes(ctx context.Context, geneID string) ([]models.GeneNote, error)
	CountConstraints(ctx context.Context) (int64, error)
}

type geneRepository struct {
	db *gorm.DB
}

func NewGeneRepository(db *gorm.DB) GeneRepository {
	return &geneRepository{db: db}
}

// Create stores the gene together with any annotation rows set on it.
func (r *geneRepository) Create(ctx context.Context, gene *models.GeneInfo) error {
	return r.db.WithContext(ctx).Create(gene).Error
}

func (r *geneRepository) AddNote(ctx context.Context, note *models.GeneNote) error {
	return r.db.WithContext(ctx).Omit("CreatedBy").Create(note).Error
}

// GetByGeneID loads the user-independent annotations. Notes are loaded
// separately with ListNotes.
func (r *geneRepository) GetByGeneID(ctx context.Context, geneID string) (*models.GeneInfo, error) {
	var gene models.GeneInfo
	err := r.db.WithContext(ctx).
		Preload("DbNSFP").
		Preload("Omim").
		Preload("Constraint").
		Preload("Expression").
		Where("gene_id = ?", geneID).
		First(&gene).Error
	if err != nil {
		return nil, translate(err)
	}
	return &gene, nil
}

func (r *geneRepository) ListNotes(ctx context.Context, geneID string) ([]models.GeneNote, error) {
	var notes []models.GeneNote
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Where("gene_id = ?", geneID).
		Order("created_date").
		Find(&notes).Error
	return notes, err
}

// CountConstraints is the number of genes with constraint scores, used to
// turn ranks into percentiles.
func (r *geneRepository) CountConstraints(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.GeneConstraint{}).Count(&count).Error
	return count, err
}
