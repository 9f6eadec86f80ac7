package matcher_test

import (
	"context"
	"testing"

	profileRepo "idvault/database/repository/profile"
	"idvault/models"
	"idvault/services/embedding"
	"idvault/services/matcher"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatcher(t *testing.T) (*matcher.DefaultMatcherService, profileRepo.Repository, embedding.Embedder) {
	t.Helper()
	repo := profileRepo.NewMemoryProfileRepo()
	embedder := embedding.NewHashEmbedder(256)
	svc := &matcher.DefaultMatcherService{
		Repo:       repo,
		Embedder:   embedder,
		Weights:    matcher.Weights{Name: 0.6, Address: 0.4},
		Thresholds: matcher.Thresholds{Match: 0.82, NoMatch: 0.5},
	}
	return svc, repo, embedder
}

func storeProfile(t *testing.T, repo profileRepo.Repository, embedder embedding.Embedder, id, name, address string) {
	t.Helper()
	ctx := context.Background()
	nameVec, err := embedder.Embed(ctx, name)
	require.NoError(t, err)
	addressVec, err := embedder.Embed(ctx, address)
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(ctx, &models.Profile{
		ID: id,
		Fields: map[string]models.ExtractedField{
			models.FieldFullName: {Value: name, Confidence: 0.95},
			models.FieldAddress:  {Value: address, Confidence: 0.85},
		},
		Embeddings: map[string]models.Embedding{
			models.FieldFullName: {Model: embedder.Model(), Vector: nameVec},
			models.FieldAddress:  {Model: embedder.Model(), Vector: addressVec},
		},
	}))
}

func TestMatchIdentity(t *testing.T) {
	svc, repo, embedder := newMatcher(t)
	storeProfile(t, repo, embedder, "user123", "John Doe", "123 Main Street")

	result, err := svc.Match(context.Background(), "user123", "John Doe", "123 Main Street")
	require.NoError(t, err)

	assert.InDelta(t, 1.0, result.NameSimilarity, 1e-6)
	assert.InDelta(t, 1.0, result.AddressSimilarity, 1e-6)
	assert.InDelta(t, 1.0, result.OverallScore, 1e-6)
	assert.Equal(t, models.MatchResultMatch, result.Classification)
}

func TestMatchDifferentPerson(t *testing.T) {
	svc, repo, embedder := newMatcher(t)
	storeProfile(t, repo, embedder, "user123", "John Doe", "123 Main Street")

	result, err := svc.Match(context.Background(), "user123", "Wolfgang Amadeus", "999 Zanzibar Quay")
	require.NoError(t, err)

	assert.Less(t, result.OverallScore, 0.5)
	assert.Equal(t, models.MatchResultNoMatch, result.Classification)
}

func TestMatchUnknownProfile(t *testing.T) {
	svc, _, _ := newMatcher(t)
	_, err := svc.Match(context.Background(), "ghost", "John Doe", "123 Main Street")
	assert.ErrorIs(t, err, profileRepo.ErrNotFound)
}

func TestMatchProfileWithoutEmbeddings(t *testing.T) {
	svc, repo, _ := newMatcher(t)
	require.NoError(t, repo.Upsert(context.Background(), &models.Profile{
		ID:     "empty",
		Fields: map[string]models.ExtractedField{models.FieldFullName: {Value: "John Doe"}},
	}))

	_, err := svc.Match(context.Background(), "empty", "John Doe", "")
	assert.ErrorIs(t, err, profileRepo.ErrNotFound)
}

func TestMatchEmptyCandidateFieldRenormalizes(t *testing.T) {
	svc, repo, embedder := newMatcher(t)
	storeProfile(t, repo, embedder, "user123", "John Doe", "123 Main Street")

	// With no address supplied, the overall score is the name similarity
	// alone; the absent field contributes neither score nor weight.
	result, err := svc.Match(context.Background(), "user123", "John Doe", "")
	require.NoError(t, err)

	assert.InDelta(t, 1.0, result.NameSimilarity, 1e-6)
	assert.Zero(t, result.AddressSimilarity)
	assert.InDelta(t, result.NameSimilarity, result.OverallScore, 1e-9)
	assert.Equal(t, models.MatchResultMatch, result.Classification)
}

func TestMatchNoComparableFields(t *testing.T) {
	svc, repo, embedder := newMatcher(t)
	storeProfile(t, repo, embedder, "user123", "John Doe", "123 Main Street")

	result, err := svc.Match(context.Background(), "user123", "", "")
	require.NoError(t, err)
	assert.Zero(t, result.OverallScore)
	assert.Equal(t, models.MatchResultNoMatch, result.Classification)
}

func TestMatchEmbeddingModelMismatch(t *testing.T) {
	svc, repo, _ := newMatcher(t)
	ctx := context.Background()

	// Stored vectors from a different embedding model are not comparable.
	require.NoError(t, repo.Upsert(ctx, &models.Profile{
		ID: "stale",
		Embeddings: map[string]models.Embedding{
			models.FieldFullName: {Model: "retired-model", Vector: []float32{1, 0}},
		},
	}))

	result, err := svc.Match(ctx, "stale", "John Doe", "")
	require.NoError(t, err)
	assert.Zero(t, result.OverallScore)
	assert.Equal(t, models.MatchResultNoMatch, result.Classification)
}
