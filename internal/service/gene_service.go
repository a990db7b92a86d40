package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/veioenza/seqr/internal/jsonview"
	"github.com/veioenza/seqr/internal/metrics"
	"github.com/veioenza/seqr/internal/models"
	"github.com/veioenza/seqr/internal/repository"
)

const geneCacheName = "gene"

type GeneService struct {
	genes   repository.GeneRepository
	cache   repository.CacheRepository
	ttl     time.Duration
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewGeneService caches gene annotations for ttl. A nil cache disables
// caching.
func NewGeneService(
	genes repository.GeneRepository,
	cache repository.CacheRepository,
	ttl time.Duration,
	m *metrics.Metrics,
	log *zap.Logger,
) *GeneService {
	return &GeneService{genes: genes, cache: cache, ttl: ttl, metrics: m, log: log}
}

var annotationOptions = jsonview.GeneOptions{
	AddDbNSFP:      true,
	AddOmim:        true,
	AddConstraints: true,
	AddExpression:  true,
}

// Gene returns the full gene detail. Annotations are shared between users
// and cached; notes depend on the user and are always loaded fresh.
func (s *GeneService) Gene(ctx context.Context, geneID string, user *models.User) (jsonview.Object, error) {
	gene, err := s.annotations(ctx, geneID)
	if err != nil {
		return nil, err
	}

	notes, err := s.genes.ListNotes(ctx, geneID)
	if err != nil {
		return nil, fmt.Errorf("list notes for %s: %w", geneID, err)
	}
	gene["notes"] = jsonview.GeneNotes(notes, user)
	return gene, nil
}

func (s *GeneService) annotations(ctx context.Context, geneID string) (jsonview.Object, error) {
	key := geneCacheName + ":" + geneID

	if s.cache != nil {
		var cached jsonview.Object
		found, err := s.cache.GetJSON(ctx, key, &cached)
		switch {
		case err != nil:
			s.log.Warn("gene cache read failed", zap.String("gene", geneID), zap.Error(err))
		case found:
			s.metrics.CacheLookups.WithLabelValues(geneCacheName, "hit").Inc()
			return cached, nil
		}
		s.metrics.CacheLookups.WithLabelValues(geneCacheName, "miss").Inc()
	}

	gene, err := s.genes.GetByGeneID(ctx, geneID)
	if err != nil {
		return nil, fmt.Errorf("gene %s: %w", geneID, err)
	}
	total, err := s.genes.CountConstraints(ctx)
	if err != nil {
		return nil, fmt.Errorf("count gene constraints: %w", err)
	}

	opts := annotationOptions
	opts.TotalConstraintGenes = total
	view := jsonview.Gene(gene, nil, opts)

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, view, s.ttl); err != nil {
			s.log.Warn("gene cache write failed", zap.String("gene", geneID), zap.Error(err))
		}
	}
	return view, nil
}
