package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/curately/curately/internal/domain/contract"
	"github.com/curately/curately/internal/domain/entity"
)

// CurationRepository represents the MongoDB implementation of the
// ICurationRepository interface.
type CurationRepository struct {
	collection *mongo.Collection
}

// NewCurationRepository creates and returns a new CurationRepository instance.
func NewCurationRepository(db *mongo.Database) *CurationRepository {
	return &CurationRepository{
		collection: db.Collection("curations"),
	}
}

var _ contract.ICurationRepository = (*CurationRepository)(nil)

// GetCurationByID retrieves a curation by its unique ID.
func (r *CurationRepository) GetCurationByID(ctx context.Context, id string) (*entity.Curation, error) {
	var curation entity.Curation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&curation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, contract.ErrCurationNotFound
		}
		return nil, fmt.Errorf("failed to retrieve curation: %w", err)
	}
	return &curation, nil
}

// GetCurationsByIDs retrieves all curations whose ids are in the given list.
// Order is not guaranteed; callers needing the request order must reorder.
func (r *CurationRepository) GetCurationsByIDs(ctx context.Context, ids []string) ([]entity.Curation, error) {
	if len(ids) == 0 {
		return []entity.Curation{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve curations: %w", err)
	}
	defer cursor.Close(ctx)

	var curations []entity.Curation
	if err := cursor.All(ctx, &curations); err != nil {
		return nil, fmt.Errorf("failed to decode curations: %w", err)
	}
	return curations, nil
}

// GetCurationsByOwnerID retrieves all curations owned by a member.
func (r *CurationRepository) GetCurationsByOwnerID(ctx context.Context, ownerID string) ([]entity.Curation, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve curations by owner: %w", err)
	}
	defer cursor.Close(ctx)

	var curations []entity.Curation
	if err := cursor.All(ctx, &curations); err != nil {
		return nil, fmt.Errorf("failed to decode curations: %w", err)
	}
	return curations, nil
}

// GetCurationsByTags retrieves up to n public curations sharing at least one
// of the given tags, ordered by ascending id.
func (r *CurationRepository) GetCurationsByTags(ctx context.Context, tags []string, n int) ([]entity.Curation, error) {
	if len(tags) == 0 {
		return []entity.Curation{}, nil
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(n))
	cursor, err := r.collection.Find(ctx, bson.M{"is_public": true, "tags": bson.M{"$in": tags}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve curations by tags: %w", err)
	}
	defer cursor.Close(ctx)

	var curations []entity.Curation
	if err := cursor.All(ctx, &curations); err != nil {
		return nil, fmt.Errorf("failed to decode curations: %w", err)
	}
	return curations, nil
}

// CreateCuration inserts a new curation document.
func (r *CurationRepository) CreateCuration(ctx context.Context, curation *entity.Curation) error {
	if _, err := r.collection.InsertOne(ctx, curation); err != nil {
		return fmt.Errorf("failed to create curation: %w", err)
	}
	return nil
}

// UpdateCuration applies a partial update to a curation document.
func (r *CurationRepository) UpdateCuration(ctx context.Context, id string, updates map[string]interface{}) error {
	set := bson.M{"updated_at": time.Now()}
	for k, v := range updates {
		set[k] = v
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update curation: %w", err)
	}
	if res.MatchedCount == 0 {
		return contract.ErrCurationNotFound
	}
	return nil
}

// DeleteCuration removes a curation document.
func (r *CurationRepository) DeleteCuration(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete curation: %w", err)
	}
	if res.DeletedCount == 0 {
		return contract.ErrCurationNotFound
	}
	return nil
}

// GetTopByViewCount returns up to n curations ordered by view_count
// descending, ties broken by ascending id.
func (r *CurationRepository) GetTopByViewCount(ctx context.Context, n int) ([]entity.Curation, error) {
	return r.topBy(ctx, "view_count", n)
}

// GetTopByLikeCount returns up to n curations ordered by like_count
// descending, ties broken by ascending id.
func (r *CurationRepository) GetTopByLikeCount(ctx context.Context, n int) ([]entity.Curation, error) {
	return r.topBy(ctx, "like_count", n)
}

func (r *CurationRepository) topBy(ctx context.Context, field string, n int) ([]entity.Curation, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: field, Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(n))
	cursor, err := r.collection.Find(ctx, bson.M{"is_public": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve top curations by %s: %w", field, err)
	}
	defer cursor.Close(ctx)

	var curations []entity.Curation
	if err := cursor.All(ctx, &curations); err != nil {
		return nil, fmt.Errorf("failed to decode top curations: %w", err)
	}
	return curations, nil
}
