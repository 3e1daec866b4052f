package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/curately/curately/internal/handler/http/dto"
	"github.com/curately/curately/internal/handler/http/middleware"
	"github.com/curately/curately/internal/usecase"
	usecasecontract "github.com/curately/curately/internal/usecase/contract"
)

type CurationHandler struct {
	curationUsecase usecasecontract.ICurationUseCase
}

func NewCurationHandler(curationUsecase usecasecontract.ICurationUseCase) *CurationHandler {
	return &CurationHandler{
		curationUsecase: curationUsecase,
	}
}

// CreateCurationHandler creates a curation owned by the authenticated member.
func (h *CurationHandler) CreateCurationHandler(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)
	if memberID == "" {
		ErrorHandler(c, http.StatusUnauthorized, "Member not authenticated")
		return
	}
	var req dto.CreateCurationRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	curation, err := h.curationUsecase.CreateCuration(c.Request.Context(), req.Title, memberID, req.IsPublic, req.Tags)
	if err != nil {
		ErrorHandler(c, http.StatusInternalServerError, err.Error())
		return
	}
	SuccessHandler(c, http.StatusCreated, curation)
}

// GetCurationDetailHandler returns a curation with live counters, counting a
// deduped view for the requesting client.
func (h *CurationHandler) GetCurationDetailHandler(c *gin.Context) {
	curationID := c.Param("curationID")
	memberID := c.GetString(middleware.MemberIDKey)

	detail, err := h.curationUsecase.GetCurationDetail(c.Request.Context(), curationID, clientIdentity(c), memberID)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, detail)
}

// DeleteCurationHandler deletes a curation the authenticated member owns.
func (h *CurationHandler) DeleteCurationHandler(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)
	if memberID == "" {
		ErrorHandler(c, http.StatusUnauthorized, "Member not authenticated")
		return
	}
	err := h.curationUsecase.DeleteCuration(c.Request.Context(), c.Param("curationID"), memberID)
	if err != nil {
		if errors.Is(err, usecase.ErrNotOwner) {
			ErrorHandler(c, http.StatusForbidden, "Only the owner may delete a curation")
			return
		}
		respondUsecaseError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Curation deleted successfully")
}

// respondUsecaseError maps usecase errors onto HTTP statuses.
func respondUsecaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrCurationNotFound):
		ErrorHandler(c, http.StatusNotFound, "Curation not found")
	case errors.Is(err, usecase.ErrMemberNotFound):
		ErrorHandler(c, http.StatusNotFound, "Member not found")
	case usecase.IsTransient(err):
		ErrorHandler(c, http.StatusServiceUnavailable, "Temporarily unavailable, please retry")
	default:
		ErrorHandler(c, http.StatusInternalServerError, err.Error())
	}
}
