package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/appedme/konvo-backend/internal/dto"
	"github.com/appedme/konvo-backend/internal/http/handlers/common"
	"github.com/appedme/konvo-backend/internal/service"
)

// ModerationHandler предоставляет HTTP слой для решений модерации.
type ModerationHandler struct {
	moderation *service.ModerationService
	cache      *service.CacheService
}

// NewModerationHandler создаёт хэндлер.
func NewModerationHandler(moderation *service.ModerationService, cache *service.CacheService) *ModerationHandler {
	return &ModerationHandler{moderation: moderation, cache: cache}
}

// DecideReport обрабатывает POST /moderation/reports/:id/decision.
func (h *ModerationHandler) DecideReport(c *gin.Context) {
	moderatorID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}
	role, _ := common.CurrentUserRole(c)

	reportID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req struct {
		Decision string  `json:"decision" binding:"required"`
		Reason   *string `json:"reason"`
		BanUser  bool    `json:"ban_user"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	report, err := h.moderation.DecideReport(c.Request.Context(), moderatorID, role, reportID, service.ReportDecisionInput{
		Decision: req.Decision,
		Reason:   req.Reason,
		BanUser:  req.BanUser,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	h.cache.InvalidateStats()
	c.JSON(http.StatusOK, report)
}

// DecideVerification обрабатывает POST /moderation/verification-requests/:id/decision.
func (h *ModerationHandler) DecideVerification(c *gin.Context) {
	moderatorID, err := common.CurrentUserID(c)
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

	var req struct {
		Decision string  `json:"decision" binding:"required"`
		Notes    *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	request, err := h.moderation.DecideVerification(c.Request.Context(), moderatorID, role, requestID, service.VerificationDecisionInput{
		Decision: req.Decision,
		Notes:    req.Notes,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	h.cache.InvalidateStats()
	c.JSON(http.StatusOK, request)
}

// ListActions обрабатывает GET /moderation/actions — журнал аудита.
func (h *ModerationHandler) ListActions(c *gin.Context) {
	role, err := common.CurrentUserRole(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	limit, offset := common.GetPagination(c)
	actions, err := h.moderation.ListActions(c.Request.Context(), role, limit, offset)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{Items: actions, Limit: limit, Offset: offset})
}

// BanUser обрабатывает POST /admin/users/:id/ban.
func (h *ModerationHandler) BanUser(c *gin.Context) {
	moderatorID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}
	role, _ := common.CurrentUserRole(c)

	userID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.moderation.BanUser(c.Request.Context(), moderatorID, role, userID, req.Reason); err != nil {
		common.RespondAppError(c, err)
		return
	}

	h.cache.InvalidateStats()
	c.JSON(http.StatusOK, gin.H{"message": "пользователь заблокирован"})
}
