package entity

import "time"

// Curation is a curated link collection owned by a member. ViewCount and
// LikeCount are the durable counters; between reconciliation runs the live
// values in the counter store may be ahead of them.
type Curation struct {
	ID        string    `bson:"_id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	OwnerID   string    `bson:"owner_id" json:"owner_id"`
	IsPublic  bool      `bson:"is_public" json:"is_public"`
	Tags      []string  `bson:"tags" json:"tags"`
	ViewCount int64     `bson:"view_count" json:"view_count"`
	LikeCount int64     `bson:"like_count" json:"like_count"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
