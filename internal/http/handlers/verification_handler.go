package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/appedme/konvo-backend/internal/dto"
	"github.com/appedme/konvo-backend/internal/http/handlers/common"
	"github.com/appedme/konvo-backend/internal/service"
)

// VerificationHandler предоставляет HTTP слой для запросов на верификацию.
type VerificationHandler struct {
	verifications *service.VerificationService
}

// NewVerificationHandler создаёт хэндлер.
func NewVerificationHandler(verifications *service.VerificationService) *VerificationHandler {
	return &VerificationHandler{verifications: verifications}
}

// Create обрабатывает POST /verification-requests.
// При указании space_id запрашивается верификация сообщества, иначе —
// собственного аккаунта.
func (h *VerificationHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req struct {
		SpaceID       *uuid.UUID `json:"space_id"`
		Justification string     `json:"justification" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var request interface{}
	if req.SpaceID != nil {
		request, err = h.verifications.RequestSpaceVerification(c.Request.Context(), userID, *req.SpaceID, req.Justification)
	} else {
		request, err = h.verifications.RequestUserVerification(c.Request.Context(), userID, req.Justification)
	}
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

// Get обрабатывает GET /verification-requests/:id.
func (h *VerificationHandler) Get(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}
	role, _ := common.CurrentUserRole(c)

	requestID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	request, err := h.verifications.GetRequest(c.Request.Context(), requestID, userID, role)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// ListMine обрабатывает GET /verification-requests.
func (h *VerificationHandler) ListMine(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	limit, offset := common.GetPagination(c)
	requests, err := h.verifications.ListMyRequests(c.Request.Context(), userID, limit, offset)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{Items: requests, Limit: limit, Offset: offset})
}

// ListPending обрабатывает GET /moderation/verification-requests.
func (h *VerificationHandler) ListPending(c *gin.Context) {
	role, err := common.CurrentUserRole(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	limit, offset := common.GetPagination(c)
	requests, err := h.verifications.ListPending(c.Request.Context(), role, limit, offset)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{Items: requests, Limit: limit, Offset: offset})
}
