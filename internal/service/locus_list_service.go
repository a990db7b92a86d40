package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/veioenza/seqr/internal/jsonview"
	"github.com/veioenza/seqr/internal/models"
	"github.com/veioenza/seqr/internal/repository"
)

type LocusListService struct {
	lists repository.LocusListRepository
	log   *zap.Logger
}

func NewLocusListService(lists repository.LocusListRepository, log *zap.Logger) *LocusListService {
	return &LocusListService{lists: lists, log: log}
}

func (s *LocusListService) Get(ctx context.Context, guid string, user *models.User) (jsonview.Object, error) {
	list, err := s.lists.GetByGUID(ctx, guid)
	if err != nil {
		return nil, fmt.Errorf("locus list %s: %w", guid, err)
	}
	if !list.CanView(user) {
		return nil, fmt.Errorf("locus list %s: %w", guid, ErrForbidden)
	}
	return jsonview.LocusList(list, user), nil
}

func (s *LocusListService) List(ctx context.Context, user *models.User) ([]jsonview.Object, error) {
	lists, err := s.lists.ListVisible(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("list locus lists: %w", err)
	}

	result := make([]jsonview.Object, 0, len(lists))
	for i := range lists {
		result = append(result, jsonview.LocusList(&lists[i], user))
	}
	return result, nil
}
