package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/appedme/konvo-backend/internal/http/handlers/common"
	"github.com/appedme/konvo-backend/internal/service"
)

// VoteHandler предоставляет HTTP слой для голосования за посты.
type VoteHandler struct {
	votes *service.VoteService
}

// NewVoteHandler создаёт хэндлер.
func NewVoteHandler(votes *service.VoteService) *VoteHandler {
	return &VoteHandler{votes: votes}
}

// Cast обрабатывает POST /posts/:id/vote.
//
// Повторный запрос с тем же направлением снимает голос, с противоположным
// — переключает. В ответе — итоговые счётчики и текущий голос пользователя.
func (h *VoteHandler) Cast(c *gin.Context) {
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
		Direction string `json:"direction" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	result, err := h.votes.Cast(c.Request.Context(), userID, postID, req.Direction)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get обрабатывает GET /posts/:id/vote — текущий голос пользователя.
func (h *VoteHandler) Get(c *gin.Context) {
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

	vote, err := h.votes.GetUserVote(c.Request.Context(), userID, postID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_vote": vote})
}
