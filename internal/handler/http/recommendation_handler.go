package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/curately/curately/internal/handler/http/middleware"
	usecasecontract "github.com/curately/curately/internal/usecase/contract"
)

type RecommendationHandler struct {
	recommendUsecase usecasecontract.IRecommendationUseCase
}

func NewRecommendationHandler(recommendUsecase usecasecontract.IRecommendationUseCase) *RecommendationHandler {
	return &RecommendationHandler{
		recommendUsecase: recommendUsecase,
	}
}

// RecommendHandler returns curations related to the seed curation, ordered
// by the sortType query parameter (views, likes or combined).
func (h *RecommendationHandler) RecommendHandler(c *gin.Context) {
	seedID := c.Param("curationID")
	sortType := c.DefaultQuery("sortType", usecasecontract.SortByCombined)
	actorID := c.GetString(middleware.MemberIDKey)

	curations, err := h.recommendUsecase.Recommend(c.Request.Context(), seedID, sortType, actorID)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, curations)
}

// TrendingHandler returns the top curations of the 24h view window.
func (h *RecommendationHandler) TrendingHandler(c *gin.Context) {
	curations, err := h.recommendUsecase.Trending(c.Request.Context())
	if err != nil {
		respondUsecaseError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, curations)
}
