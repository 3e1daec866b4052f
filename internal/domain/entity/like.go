package entity

import "time"

// Like is the durable record of a member liking a curation. It is written by
// the reconciliation job from the counter store's like sets; one row per
// (curation, member) pair.
type Like struct {
	ID         string    `bson:"_id" json:"id"`
	CurationID string    `bson:"curation_id" json:"curation_id"`
	MemberID   string    `bson:"member_id" json:"member_id"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
