package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/veioenza/seqr/internal/jsonview"
	"github.com/veioenza/seqr/internal/models"
	"github.com/veioenza/seqr/internal/repository"
)

type VariantOptions struct {
	AddTags    bool
	AddDetails bool
}

type VariantService struct {
	families   repository.FamilyRepository
	variants   repository.VariantRepository
	locusLists repository.LocusListRepository
	log        *zap.Logger
}

func NewVariantService(
	families repository.FamilyRepository,
	variants repository.VariantRepository,
	locusLists repository.LocusListRepository,
	log *zap.Logger,
) *VariantService {
	return &VariantService{families: families, variants: variants, locusLists: locusLists, log: log}
}

func (s *VariantService) SavedVariants(ctx context.Context, familyGUID string, user *models.User, opts VariantOptions) ([]jsonview.Object, error) {
	family, err := s.families.GetByGUID(ctx, familyGUID)
	if err != nil {
		return nil, fmt.Errorf("family %s: %w", familyGUID, err)
	}
	if !family.Project.CanView(user) {
		return nil, fmt.Errorf("family %s: %w", familyGUID, ErrForbidden)
	}

	variants, err := s.variants.ListByFamily(ctx, family.ID)
	if err != nil {
		return nil, fmt.Errorf("list saved variants: %w", err)
	}

	viewOpts := jsonview.SavedVariantOptions{AddTags: opts.AddTags, AddDetails: opts.AddDetails}
	if opts.AddDetails {
		viewOpts.LocusLists, err = s.locusLists.ListVisible(ctx, user)
		if err != nil {
			return nil, fmt.Errorf("list locus lists: %w", err)
		}
	}

	return jsonview.SavedVariants(variants, viewOpts), nil
}
