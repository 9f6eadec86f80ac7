package profileRepo

import (
	"context"
	"errors"

	"idvault/models"
)

// ErrNotFound is returned when no profile exists for the given ID.
var ErrNotFound = errors.New("profile not found")

// Repository is the storage boundary for profiles. Implementations must
// serialize access so a concurrent read observes either the fully-old or
// fully-new profile, never a partial update.
type Repository interface {
	// GetByID returns the profile for id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Profile, error)

	// Upsert merges the given profile into the store. Fields and embeddings
	// are merged per key, last write wins.
	Upsert(ctx context.Context, profile *models.Profile) error

	// Search returns all profiles satisfying match. A nil predicate matches
	// every profile.
	Search(ctx context.Context, match func(*models.Profile) bool) ([]*models.Profile, error)

	// ListIDs returns all stored profile IDs.
	ListIDs(ctx context.Context) ([]string, error)
}
