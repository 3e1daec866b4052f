package contract

import "context"

// IMemberRepository defines the read-side interface for member lookups.
// Member lifecycle is owned by the identity service.
type IMemberRepository interface {
	MemberExists(ctx context.Context, id string) (bool, error)
}
