package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/appedme/konvo-backend/internal/dto"
	"github.com/appedme/konvo-backend/internal/http/handlers/common"
	"github.com/appedme/konvo-backend/internal/service"
)

// SpaceHandler предоставляет HTTP слой для сообществ.
type SpaceHandler struct {
	spaces *service.SpaceService
}

// NewSpaceHandler создаёт хэндлер.
func NewSpaceHandler(spaces *service.SpaceService) *SpaceHandler {
	return &SpaceHandler{spaces: spaces}
}

// Create обрабатывает POST /spaces.
func (h *SpaceHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req struct {
		Name        string  `json:"name" binding:"required"`
		Slug        string  `json:"slug" binding:"required"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	space, err := h.spaces.CreateSpace(c.Request.Context(), userID, req.Name, req.Slug, req.Description)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, space)
}

// GetBySlug обрабатывает GET /spaces/:slug.
func (h *SpaceHandler) GetBySlug(c *gin.Context) {
	space, err := h.spaces.GetSpaceBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	members, err := h.spaces.CountMembers(c.Request.Context(), space.ID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"space":        space,
		"member_count": members,
	})
}

// List обрабатывает GET /spaces.
func (h *SpaceHandler) List(c *gin.Context) {
	limit, offset := common.GetPagination(c)

	spaces, err := h.spaces.ListSpaces(c.Request.Context(), limit, offset)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{Items: spaces, Limit: limit, Offset: offset})
}

// Join обрабатывает POST /spaces/:slug/join.
func (h *SpaceHandler) Join(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	space, err := h.spaces.GetSpaceBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	if err := h.spaces.Join(c.Request.Context(), space.ID, userID); err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "вы вступили в сообщество"})
}

// Leave обрабатывает POST /spaces/:slug/leave.
func (h *SpaceHandler) Leave(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	space, err := h.spaces.GetSpaceBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	if err := h.spaces.Leave(c.Request.Context(), space.ID, userID); err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "вы покинули сообщество"})
}
