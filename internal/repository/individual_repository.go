package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/veioenza/seqr/internal/models"
)

// CaseReviewUpdate describes a staff edit of an individual's case review.
// Discussion is left untouched when nil. ModifiedBy and ModifiedAt are
// recorded only when ModifiedBy is set.
type CaseReviewUpdate struct {
	Status     models.CaseReviewStatus
	Discussion *string
	ModifiedBy *models.User
	ModifiedAt time.Time
}

type IndividualRepository interface {
	Create(ctx context.Context, individual *models.Individual) error
	GetByGUID(ctx context.Context, guid string) (*models.Individual, error)
	ListByProject(ctx context.Context, projectID uint) ([]models.Individual, error)
	UpdateCaseReview(ctx context.Context, id uint, update CaseReviewUpdate) error
}

type individualRepository struct {
	db *gorm.DB
}

func NewIndividualRepository(db *gorm.DB) IndividualRepository {
	return &individualRepository{db: db}
}

func (r *individualRepository) Create(ctx context.Context, individual *models.Individual) error {
	return r.db.WithContext(ctx).Create(individual).Error
}

func (r *individualRepository) withAssociations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Father").
		Preload("Mother").
		Preload("CaseReviewStatusLastModifiedBy")
}

func (r *individualRepository) GetByGUID(ctx context.Context, guid string) (*models.Individual, error) {
	var individual models.Individual
	err := r.withAssociations(ctx).
		Preload("Family.Project.Collaborators.User").
		Preload("Samples").
		Where("guid = ?", guid).
		First(&individual).Error
	if err != nil {
		return nil, translate(err)
	}
	return &individual, nil
}

// ListByProject orders individuals by family then individual id.
func (r *individualRepository) ListByProject(ctx context.Context, projectID uint) ([]models.Individual, error) {
	var individuals []models.Individual
	err := r.withAssociations(ctx).
		Preload("Family.Project").
		Where("family_id IN (?)", r.db.Model(&models.Family{}).Select("id").Where("project_id = ?", projectID)).
		Order("family_id").
		Order("individual_id").
		Find(&individuals).Error
	return individuals, err
}

func (r *individualRepository) UpdateCaseReview(ctx context.Context, id uint, update CaseReviewUpdate) error {
	values := map[string]interface{}{
		"case_review_status": string(update.Status),
	}
	if update.Discussion != nil {
		values["case_review_discussion"] = *update.Discussion
	}
	if update.ModifiedBy != nil {
		values["case_review_status_last_modified_by_id"] = update.ModifiedBy.ID
		values["case_review_status_last_modified_date"] = update.ModifiedAt
	}

	res := r.db.WithContext(ctx).Model(&models.Individual{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
