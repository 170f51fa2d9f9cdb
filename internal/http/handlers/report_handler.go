package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/appedme/konvo-backend/internal/dto"
	"github.com/appedme/konvo-backend/internal/http/handlers/common"
	"github.com/appedme/konvo-backend/internal/service"
)

// ReportHandler предоставляет HTTP слой для жалоб.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler создаёт хэндлер.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Create обрабатывает POST /reports.
func (h *ReportHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req struct {
		TargetPostID    *uuid.UUID `json:"target_post_id"`
		TargetCommentID *uuid.UUID `json:"target_comment_id"`
		TargetUserID    *uuid.UUID `json:"target_user_id"`
		TargetSpaceID   *uuid.UUID `json:"target_space_id"`
		Reason          string     `json:"reason" binding:"required"`
		Description     *string    `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	report, err := h.reports.CreateReport(c.Request.Context(), userID, service.CreateReportInput{
		TargetPostID:    req.TargetPostID,
		TargetCommentID: req.TargetCommentID,
		TargetUserID:    req.TargetUserID,
		TargetSpaceID:   req.TargetSpaceID,
		Reason:          req.Reason,
		Description:     req.Description,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

// Get обрабатывает GET /reports/:id.
func (h *ReportHandler) Get(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
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

	report, err := h.reports.GetReport(c.Request.Context(), reportID, userID, role)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ListMine обрабатывает GET /reports — жалобы текущего пользователя.
func (h *ReportHandler) ListMine(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	limit, offset := common.GetPagination(c)
	reports, err := h.reports.ListMyReports(c.Request.Context(), userID, limit, offset)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{Items: reports, Limit: limit, Offset: offset})
}

// ListPending обрабатывает GET /moderation/reports — очередь модерации.
func (h *ReportHandler) ListPending(c *gin.Context) {
	role, err := common.CurrentUserRole(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	limit, offset := common.GetPagination(c)
	reports, err := h.reports.ListPending(c.Request.Context(), role, limit, offset)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{Items: reports, Limit: limit, Offset: offset})
}
