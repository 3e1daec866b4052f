package http_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	handler "github.com/curately/curately/internal/handler/http"
	"github.com/curately/curately/internal/handler/http/middleware"
	mocks "github.com/curately/curately/internal/handler/http/mocks"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func asMember(memberID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if memberID != "" {
			c.Set(middleware.MemberIDKey, memberID)
		}
		c.Next()
	}
}

func setupInteractionRouter(h *handler.InteractionHandler, memberID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	r.POST("/curations/:curationID/like", asMember(memberID), h.ToggleLikeHandler)
	r.GET("/curations/:curationID/like", asMember(memberID), h.GetLikeStateHandler)
	r.GET("/members/me/likes", asMember(memberID), h.GetLikedCurationsHandler)
	return r
}

func TestToggleLike(t *testing.T) {
	mockUsecase := mocks.NewMockEngagementUsecase()
	h := handler.NewInteractionHandler(mockUsecase)
	r := setupInteractionRouter(h, "member-1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/curations/cur-1/like", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"liked":true`)
	assert.Contains(t, w.Body.String(), `"like_count":7`)
}

func TestToggleLike_Unauthenticated(t *testing.T) {
	mockUsecase := mocks.NewMockEngagementUsecase()
	h := handler.NewInteractionHandler(mockUsecase)
	r := setupInteractionRouter(h, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/curations/cur-1/like", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Member not authenticated")
}

func TestToggleLike_CurationMissing(t *testing.T) {
	mockUsecase := mocks.NewMockEngagementUsecase()
	mockUsecase.CurationMissing = true
	h := handler.NewInteractionHandler(mockUsecase)
	r := setupInteractionRouter(h, "member-1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/curations/missing/like", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Curation not found")
}

func TestToggleLike_StoreUnavailable(t *testing.T) {
	mockUsecase := mocks.NewMockEngagementUsecase()
	mockUsecase.StoreUnavailable = true
	h := handler.NewInteractionHandler(mockUsecase)
	r := setupInteractionRouter(h, "member-1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/curations/cur-1/like", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Temporarily unavailable")
}

func TestGetLikeState(t *testing.T) {
	mockUsecase := mocks.NewMockEngagementUsecase()
	h := handler.NewInteractionHandler(mockUsecase)
	r := setupInteractionRouter(h, "member-1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/curations/cur-1/like", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"liked":true`)
	assert.Contains(t, w.Body.String(), `"like_count":7`)
}

func TestGetLikedCurations(t *testing.T) {
	mockUsecase := mocks.NewMockEngagementUsecase()
	h := handler.NewInteractionHandler(mockUsecase)
	r := setupInteractionRouter(h, "member-1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/members/me/likes", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "liked-1")
	assert.Contains(t, w.Body.String(), "Liked pick")
}

func TestGetLikedCurations_Unauthenticated(t *testing.T) {
	mockUsecase := mocks.NewMockEngagementUsecase()
	h := handler.NewInteractionHandler(mockUsecase)
	r := setupInteractionRouter(h, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/members/me/likes", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Member not authenticated")
}

func TestGetLikeState_Anonymous(t *testing.T) {
	mockUsecase := mocks.NewMockEngagementUsecase()
	h := handler.NewInteractionHandler(mockUsecase)
	r := setupInteractionRouter(h, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/curations/cur-1/like", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"liked":false`)
	assert.Contains(t, w.Body.String(), `"like_count":7`)
}
