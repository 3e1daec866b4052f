package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/curately/curately/internal/domain/contract"
	"github.com/curately/curately/internal/domain/entity"
)

// LikeRepository represents the MongoDB implementation of the
// ILikeRepository interface.
type LikeRepository struct {
	collection *mongo.Collection
}

// NewLikeRepository creates and returns a new LikeRepository instance.
func NewLikeRepository(db *mongo.Database) *LikeRepository {
	return &LikeRepository{
		collection: db.Collection("curation_likes"),
	}
}

var _ contract.ILikeRepository = (*LikeRepository)(nil)

// SaveLike persists a like relation. The write is an upsert keyed on
// (curation_id, member_id), so saving the same relation twice leaves a
// single document.
func (r *LikeRepository) SaveLike(ctx context.Context, like *entity.Like) error {
	filter := bson.M{
		"curation_id": like.CurationID,
		"member_id":   like.MemberID,
	}
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":        like.ID,
			"created_at": time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save like relation: %w", err)
	}
	return nil
}

// LikeExists reports whether a like relation is already recorded.
func (r *LikeRepository) LikeExists(ctx context.Context, curationID, memberID string) (bool, error) {
	filter := bson.M{"curation_id": curationID, "member_id": memberID}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check like relation: %w", err)
	}
	return count > 0, nil
}

// DeleteLikesByCurationID removes all like relations of a curation.
func (r *LikeRepository) DeleteLikesByCurationID(ctx context.Context, curationID string) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"curation_id": curationID}); err != nil {
		return fmt.Errorf("failed to delete like relations: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique (curation_id, member_id) index backing the
// idempotent upsert.
func (r *LikeRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "curation_id", Value: 1}, {Key: "member_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create like index: %w", err)
	}
	return nil
}
