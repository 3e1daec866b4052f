package dto

// CreateCurationRequest is the payload for creating a curation.
type CreateCurationRequest struct {
	Title    string   `json:"title" binding:"required"`
	IsPublic bool     `json:"is_public"`
	Tags     []string `json:"tags"`
}

// LikeStateResponse reports a member's like state and the live like count.
type LikeStateResponse struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}
