package usecase

import "fmt"

// Counter store key namespace. The like-set prefix embeds the curation id so
// the reconciliation job can recover ids by enumerating the namespace.
const (
	likeSetKeyPrefix    = "curation_like:"
	viewMarkerKeyPrefix = "curation:view:"
	memberLikedPrefix   = "member_liked:"
	recommendKeyPrefix  = "curation:recommend:"

	viewCountKey = "curation:view_count"
	likeCountKey = "curation:like_count"
	trendingKey  = "curation:trending:24h"
	popularKey   = "curation:popular:24h"
)

func likeSetKey(curationID string) string {
	return likeSetKeyPrefix + curationID
}

func viewMarkerKey(curationID, clientID string) string {
	return fmt.Sprintf("%s%s:%s", viewMarkerKeyPrefix, curationID, clientID)
}

func memberLikedKey(memberID string) string {
	return memberLikedPrefix + memberID
}

func recommendKey(curationID string) string {
	return recommendKeyPrefix + curationID
}
