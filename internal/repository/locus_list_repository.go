package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/veioenza/seqr/internal/models"
)

type LocusListRepository interface {
	Create(ctx context.Context, list *models.LocusList) error
	GetByGUID(ctx context.Context, guid string) (*models.LocusList, error)
	ListVisible(ctx context.Context, user *models.User) ([]models.LocusList, error)
}

type locusListRepository struct {
	db *gorm.DB
}

func NewLocusListRepository(db *gorm.DB) LocusListRepository {
	return &locusListRepository{db: db}
}

func (r *locusListRepository) Create(ctx context.Context, list *models.LocusList) error {
	return r.db.WithContext(ctx).Omit("CreatedBy").Create(list).Error
}

func (r *locusListRepository) withAssociations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Genes").
		Preload("Intervals").
		Preload("CreatedBy")
}

func (r *locusListRepository) GetByGUID(ctx context.Context, guid string) (*models.LocusList, error) {
	var list models.LocusList
	err := r.withAssociations(ctx).Where("guid = ?", guid).First(&list).Error
	if err != nil {
		return nil, translate(err)
	}
	return &list, nil
}

// ListVisible returns public lists plus the user's own; staff see all.
func (r *locusListRepository) ListVisible(ctx context.Context, user *models.User) ([]models.LocusList, error) {
	query := r.withAssociations(ctx)
	switch {
	case user == nil:
		query = query.Where("is_public = ?", true)
	case !user.IsStaff:
		query = query.Where("is_public = ? OR created_by_id = ?", true, user.ID)
	}

	var lists []models.LocusList
	err := query.Order("name").Find(&lists).Error
	return lists, err
}
