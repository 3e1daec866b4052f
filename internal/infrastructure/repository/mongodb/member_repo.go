package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/curately/curately/internal/domain/contract"
)

// MemberRepository is the read-side MongoDB implementation of
// IMemberRepository. The members collection is written by the identity
// service; this service only checks that accounts exist.
type MemberRepository struct {
	collection *mongo.Collection
}

// NewMemberRepository creates and returns a new MemberRepository instance.
func NewMemberRepository(db *mongo.Database) *MemberRepository {
	return &MemberRepository{
		collection: db.Collection("members"),
	}
}

var _ contract.IMemberRepository = (*MemberRepository)(nil)

// MemberExists reports whether a member id resolves to an account.
func (r *MemberRepository) MemberExists(ctx context.Context, id string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check member: %w", err)
	}
	return count > 0, nil
}
