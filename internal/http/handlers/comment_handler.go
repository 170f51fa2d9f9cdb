package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/appedme/konvo-backend/internal/dto"
	"github.com/appedme/konvo-backend/internal/http/handlers/common"
	"github.com/appedme/konvo-backend/internal/service"
)

// CommentHandler предоставляет HTTP слой для комментариев.
type CommentHandler struct {
	comments *service.CommentService
}

// NewCommentHandler создаёт хэндлер.
func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// Create обрабатывает POST /posts/:id/comments.
func (h *CommentHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	postID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req struct {
		Body     string     `json:"body" binding:"required"`
		ParentID *uuid.UUID `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	comment, err := h.comments.CreateComment(c.Request.Context(), userID, postID, req.ParentID, req.Body)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// List обрабатывает GET /posts/:id/comments.
func (h *CommentHandler) List(c *gin.Context) {
	postID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	limit, offset := common.GetPagination(c)
	comments, err := h.comments.ListComments(c.Request.Context(), postID, limit, offset)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{Items: comments, Limit: limit, Offset: offset})
}

// Delete обрабатывает DELETE /comments/:id.
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}
	role, _ := common.CurrentUserRole(c)

	commentID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.comments.DeleteComment(c.Request.Context(), commentID, userID, role); err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
