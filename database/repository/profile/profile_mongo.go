package profileRepo

import (
	"context"
	"errors"
	"time"

	"idvault/database"
	"idvault/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoProfileRepo struct {
	coll *mongo.Collection
}

// NewMongoProfileRepo returns a Repository backed by the "profiles"
// collection of the idvault database.
func NewMongoProfileRepo() Repository {
	db := database.MongoClient.Database("idvault")
	return &mongoProfileRepo{
		coll: db.Collection("profiles"),
	}
}

func (r *mongoProfileRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *mongoProfileRepo) Upsert(ctx context.Context, profile *models.Profile) error {
	now := time.Now()

	// Per-key $set keeps field updates last-write-wins without clobbering
	// fields the caller did not supply.
	set := bson.M{"updatedAt": now}
	for k, v := range profile.Fields {
		set["fields."+k] = v
	}
	for k, v := range profile.Embeddings {
		set["embeddings."+k] = v
	}

	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"id": profile.ID, "createdAt": now},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateOne(ctx, bson.M{"id": profile.ID}, update, opts)
	return err
}

// Search fetches all profiles and filters in memory; the predicate is an
// arbitrary Go function and cannot be pushed down to a Mongo query.
func (r *mongoProfileRepo) Search(ctx context.Context, match func(*models.Profile) bool) ([]*models.Profile, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*models.Profile
	for cursor.Next(ctx) {
		var profile models.Profile
		if err := cursor.Decode(&profile); err != nil {
			return nil, err
		}
		if match == nil || match(&profile) {
			out = append(out, &profile)
		}
	}
	return out, cursor.Err()
}

func (r *mongoProfileRepo) ListIDs(ctx context.Context) ([]string, error) {
	raw, err := r.coll.Distinct(ctx, "id", bson.D{})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids, nil
}
