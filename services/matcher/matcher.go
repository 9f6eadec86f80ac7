package matcher

import (
	"context"
	"fmt"

	profileRepo "idvault/database/repository/profile"
	"idvault/models"
	"idvault/services/embedding"
	"idvault/utils"

	"go.uber.org/zap"
)

// Weights are the per-field contributions to the overall score. They are
// renormalized over the fields actually compared.
type Weights struct {
	Name    float64
	Address float64
}

// Thresholds classify the overall score: >= Match is a match, < NoMatch is a
// no-match, anything between is uncertain.
type Thresholds struct {
	Match   float64
	NoMatch float64
}

// Service matches candidate identity data against a stored profile.
type Service interface {
	Match(ctx context.Context, profileID, fullName, address string) (*models.MatchResult, error)
}

// DefaultMatcherService is a read-only consumer of the profile store.
type DefaultMatcherService struct {
	Repo       profileRepo.Repository
	Embedder   embedding.Embedder
	Weights    Weights
	Thresholds Thresholds
}

func (s *DefaultMatcherService) Match(ctx context.Context, profileID, fullName, address string) (*models.MatchResult, error) {
	profile, err := s.Repo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if len(profile.Embeddings) == 0 {
		return nil, fmt.Errorf("profile %q has no stored embeddings: %w", profileID, profileRepo.ErrNotFound)
	}

	nameSim, nameOK, err := s.fieldSimilarity(ctx, profile, models.FieldFullName, fullName)
	if err != nil {
		return nil, err
	}
	addressSim, addressOK, err := s.fieldSimilarity(ctx, profile, models.FieldAddress, address)
	if err != nil {
		return nil, err
	}

	// Weighted sum over the fields present on both sides, with the weights
	// renormalized so absent fields do not drag the score down.
	var score, totalWeight float64
	if nameOK {
		score += s.Weights.Name * nameSim
		totalWeight += s.Weights.Name
	}
	if addressOK {
		score += s.Weights.Address * addressSim
		totalWeight += s.Weights.Address
	}

	result := &models.MatchResult{
		NameSimilarity:    nameSim,
		AddressSimilarity: addressSim,
	}
	if totalWeight > 0 {
		result.OverallScore = score / totalWeight
		result.Classification = s.classify(result.OverallScore)
	} else {
		result.OverallScore = 0
		result.Classification = models.MatchResultNoMatch
	}

	utils.GetLogger().Info("match computed",
		zap.String("profileID", profileID),
		zap.Float64("nameSimilarity", result.NameSimilarity),
		zap.Float64("addressSimilarity", result.AddressSimilarity),
		zap.Float64("overallScore", result.OverallScore),
		zap.String("classification", string(result.Classification)))

	return result, nil
}

// fieldSimilarity embeds the candidate value and compares it against the
// stored vector. The second return reports whether the field was comparable:
// empty candidates, missing stored vectors and embedding-model mismatches
// all score 0 and are excluded from the weighted sum.
func (s *DefaultMatcherService) fieldSimilarity(ctx context.Context, profile *models.Profile, field, candidate string) (float64, bool, error) {
	if candidate == "" {
		return 0, false, nil
	}
	stored, ok := profile.Embeddings[field]
	if !ok || stored.Model != s.Embedder.Model() {
		return 0, false, nil
	}

	vec, err := s.Embedder.Embed(ctx, candidate)
	if err != nil {
		return 0, false, fmt.Errorf("embed %s: %w", field, err)
	}
	return embedding.CosineSimilarity(vec, stored.Vector), true, nil
}

func (s *DefaultMatcherService) classify(score float64) models.MatchClassification {
	switch {
	case score >= s.Thresholds.Match:
		return models.MatchResultMatch
	case score < s.Thresholds.NoMatch:
		return models.MatchResultNoMatch
	default:
		return models.MatchResultUncertain
	}
}
