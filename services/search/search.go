package search

import (
	"context"
	"sort"
	"strings"

	profileRepo "idvault/database/repository/profile"
	"idvault/models"
	"idvault/services/embedding"
	"idvault/utils"

	"go.uber.org/zap"
)

const (
	// Results scoring below this are dropped; keeps typeahead fuzzy but sane.
	minSimilarity = 0.3

	DefaultLimit = 5
	MaxLimit     = 20
)

// Service ranks stored profiles against a free-text query.
type Service interface {
	Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error)
}

type DefaultSearchService struct {
	Repo     profileRepo.Repository
	Embedder embedding.Embedder
}

func (s *DefaultSearchService) Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	queryVec, err := s.Embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	profiles, err := s.Repo.Search(ctx, nil)
	if err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(profiles))
	for _, profile := range profiles {
		score := s.profileScore(queryVec, profile)
		if score < minSimilarity {
			continue
		}
		name, _ := profile.FieldValue(models.FieldFullName)
		address, _ := profile.FieldValue(models.FieldAddress)
		results = append(results, models.SearchResult{
			ProfileID:       profile.ID,
			FullName:        name,
			Address:         address,
			SimilarityScore: score,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].SimilarityScore > results[j].SimilarityScore
	})
	if len(results) > limit {
		results = results[:limit]
	}

	utils.GetLogger().Info("search completed",
		zap.String("query", query),
		zap.Int("results", len(results)))
	return results, nil
}

// profileScore is the best of the name and address similarities; a query may
// match either.
func (s *DefaultSearchService) profileScore(queryVec []float32, profile *models.Profile) float64 {
	var best float64
	for _, field := range []string{models.FieldFullName, models.FieldAddress} {
		stored, ok := profile.Embeddings[field]
		if !ok || stored.Model != s.Embedder.Model() {
			continue
		}
		if sim := embedding.CosineSimilarity(queryVec, stored.Vector); sim > best {
			best = sim
		}
	}
	return best
}
