package consent_test

import (
	"context"
	"strings"
	"testing"
	"time"

	profileRepo "idvault/database/repository/profile"
	"idvault/models"
	"idvault/services/consent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConsentService(t *testing.T) (*consent.DefaultConsentService, profileRepo.Repository) {
	t.Helper()
	repo := profileRepo.NewMemoryProfileRepo()
	svc := &consent.DefaultConsentService{
		Repo:       repo,
		Secret:     []byte("test-secret"),
		DefaultTTL: 15 * time.Minute,
	}
	return svc, repo
}

func storeUser123(t *testing.T, repo profileRepo.Repository) {
	t.Helper()
	require.NoError(t, repo.Upsert(context.Background(), &models.Profile{
		ID: "user123",
		Fields: map[string]models.ExtractedField{
			models.FieldFullName:    {Value: "John Doe", Confidence: 0.95},
			models.FieldDateOfBirth: {Value: "1990-01-15", Confidence: 0.90},
			models.FieldAddress:     {Value: "123 Main Street", Confidence: 0.85},
		},
	}))
}

func TestIssueValidation(t *testing.T) {
	svc, _ := newConsentService(t)

	_, _, err := svc.Issue("", []string{"full_name"}, 0)
	assert.ErrorIs(t, err, consent.ErrValidation)

	_, _, err = svc.Issue("user123", nil, 0)
	assert.ErrorIs(t, err, consent.ErrValidation)
}

func TestIssueAndRedeemSubset(t *testing.T) {
	svc, repo := newConsentService(t)
	storeUser123(t, repo)

	token, expiresAt, err := svc.Issue("user123", []string{"full_name", "dob"}, 0)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	fields, err := svc.Redeem(context.Background(), token)
	require.NoError(t, err)

	// Exactly the allowed fields, keyed by the requested names; the stored
	// address must not leak.
	assert.Equal(t, map[string]string{
		"full_name": "John Doe",
		"dob":       "1990-01-15",
	}, fields)
}

func TestRedeemOmitsUnknownFields(t *testing.T) {
	svc, repo := newConsentService(t)
	storeUser123(t, repo)

	token, _, err := svc.Issue("user123", []string{"full_name", "passport_number"}, 0)
	require.NoError(t, err)

	fields, err := svc.Redeem(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"full_name": "John Doe"}, fields)
}

func TestRedeemUnknownProfile(t *testing.T) {
	svc, _ := newConsentService(t)

	// Existence is not checked at issuance.
	token, _, err := svc.Issue("ghost", []string{"full_name"}, 0)
	require.NoError(t, err)

	_, err = svc.Redeem(context.Background(), token)
	assert.ErrorIs(t, err, profileRepo.ErrNotFound)
}

func TestRedeemMalformedToken(t *testing.T) {
	svc, _ := newConsentService(t)

	_, err := svc.Redeem(context.Background(), "definitely-not-a-jwt")
	assert.ErrorIs(t, err, consent.ErrMalformedToken)
}

func TestRedeemTamperedSignature(t *testing.T) {
	svc, repo := newConsentService(t)
	storeUser123(t, repo)

	token, _, err := svc.Issue("user123", []string{"full_name"}, 0)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Flip one character per position; every mutation must be rejected.
	for i := range parts[2] {
		sig := []byte(parts[2])
		if sig[i] == 'A' {
			sig[i] = 'B'
		} else {
			sig[i] = 'A'
		}
		tampered := parts[0] + "." + parts[1] + "." + string(sig)

		_, err = svc.Redeem(context.Background(), tampered)
		assert.ErrorIs(t, err, consent.ErrInvalidSignature, "mutated signature byte %d", i)
	}
}

func TestRedeemRejectsNonCanonicalSignature(t *testing.T) {
	svc, repo := newConsentService(t)
	storeUser123(t, repo)

	token, _, err := svc.Issue("user123", []string{"full_name"}, 0)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// A 32-byte HMAC signature leaves 2 unused bits in the last base64url
	// character, so the next alphabet value decodes to the same bytes. Such
	// a token must still be rejected.
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	sig := []byte(parts[2])
	idx := strings.IndexByte(alphabet, sig[len(sig)-1])
	require.GreaterOrEqual(t, idx, 0)
	require.Zero(t, idx%4)
	sig[len(sig)-1] = alphabet[idx+1]
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.Redeem(context.Background(), tampered)
	assert.ErrorIs(t, err, consent.ErrInvalidSignature)
}

func TestRedeemExpiredToken(t *testing.T) {
	svc, repo := newConsentService(t)
	storeUser123(t, repo)

	// Issue in the past so the token is expired but correctly signed.
	svc.Now = func() time.Time { return time.Now().Add(-16 * time.Minute) }
	token, _, err := svc.Issue("user123", []string{"full_name"}, 15*time.Minute)
	require.NoError(t, err)

	_, err = svc.Redeem(context.Background(), token)
	assert.ErrorIs(t, err, consent.ErrTokenExpired)
}

func TestRedeemIsRepeatable(t *testing.T) {
	svc, repo := newConsentService(t)
	storeUser123(t, repo)

	token, _, err := svc.Issue("user123", []string{"full_name"}, 0)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		fields, err := svc.Redeem(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "John Doe", fields["full_name"])
	}
}

func TestIssuedTokensDiffer(t *testing.T) {
	svc, _ := newConsentService(t)

	base := time.Now()
	svc.Now = func() time.Time { return base }
	first, _, err := svc.Issue("user123", []string{"full_name"}, 0)
	require.NoError(t, err)

	svc.Now = func() time.Time { return base.Add(time.Second) }
	second, _, err := svc.Issue("user123", []string{"full_name"}, 0)
	require.NoError(t, err)

	// issued_at is part of the signed payload.
	assert.NotEqual(t, first, second)
}
