package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/curately/curately/internal/handler/http/dto"
	"github.com/curately/curately/internal/handler/http/middleware"
	usecasecontract "github.com/curately/curately/internal/usecase/contract"
)

type InteractionHandler struct {
	engagementUsecase usecasecontract.IEngagementUseCase
}

func NewInteractionHandler(engagementUsecase usecasecontract.IEngagementUseCase) *InteractionHandler {
	return &InteractionHandler{
		engagementUsecase: engagementUsecase,
	}
}

// ToggleLikeHandler flips the authenticated member's like on a curation and
// returns the new state with the live like count.
func (h *InteractionHandler) ToggleLikeHandler(c *gin.Context) {
	curationID := c.Param("curationID")
	memberID := c.GetString(middleware.MemberIDKey)
	if memberID == "" {
		ErrorHandler(c, http.StatusUnauthorized, "Member not authenticated")
		return
	}

	liked, err := h.engagementUsecase.ToggleLike(c.Request.Context(), curationID, memberID)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}
	count, err := h.engagementUsecase.LiveLikeCount(c.Request.Context(), curationID)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.LikeStateResponse{Liked: liked, LikeCount: count})
}

// GetLikedCurationsHandler lists the curations the authenticated member
// currently likes.
func (h *InteractionHandler) GetLikedCurationsHandler(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)
	if memberID == "" {
		ErrorHandler(c, http.StatusUnauthorized, "Member not authenticated")
		return
	}

	curations, err := h.engagementUsecase.LikedCurations(c.Request.Context(), memberID)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, curations)
}

// GetLikeStateHandler reports whether the requester likes the curation and
// the live like count. Anonymous requests get liked=false.
func (h *InteractionHandler) GetLikeStateHandler(c *gin.Context) {
	curationID := c.Param("curationID")
	memberID := c.GetString(middleware.MemberIDKey)

	var liked bool
	if memberID != "" {
		var err error
		liked, err = h.engagementUsecase.IsLiked(c.Request.Context(), curationID, memberID)
		if err != nil {
			respondUsecaseError(c, err)
			return
		}
	}
	count, err := h.engagementUsecase.LiveLikeCount(c.Request.Context(), curationID)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.LikeStateResponse{Liked: liked, LikeCount: count})
}
