package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/appedme/konvo-backend/internal/dto"
	"github.com/appedme/konvo-backend/internal/http/handlers/common"
	"github.com/appedme/konvo-backend/internal/service"
)

// PostHandler предоставляет HTTP слой для постов.
type PostHandler struct {
	posts    *service.PostService
	comments *service.CommentService
}

// NewPostHandler создаёт хэндлер.
func NewPostHandler(posts *service.PostService, comments *service.CommentService) *PostHandler {
	return &PostHandler{posts: posts, comments: comments}
}

// Create обрабатывает POST /posts.
func (h *PostHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req struct {
		SpaceID   *uuid.UUID `json:"space_id"`
		Title     string     `json:"title" binding:"required"`
		Body      string     `json:"body" binding:"required"`
		Anonymous bool       `json:"anonymous"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	post, err := h.posts.CreatePost(c.Request.Context(), userID, service.CreatePostInput{
		SpaceID:   req.SpaceID,
		Title:     req.Title,
		Body:      req.Body,
		Anonymous: req.Anonymous,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// Get обрабатывает GET /posts/:id.
func (h *PostHandler) Get(c *gin.Context) {
	postID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	post, err := h.posts.GetPost(c.Request.Context(), postID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	commentCount, err := h.comments.CountComments(c.Request.Context(), postID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post":          post,
		"comment_count": commentCount,
	})
}

// List обрабатывает GET /posts с фильтрами space_id и author_id.
func (h *PostHandler) List(c *gin.Context) {
	limit, offset := common.GetPagination(c)

	var spaceID, authorID *uuid.UUID
	if raw := c.Query("space_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			common.RespondBadRequest(c, "space_id должен быть валидным UUID")
			return
		}
		spaceID = &id
	}
	if raw := c.Query("author_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			common.RespondBadRequest(c, "author_id должен быть валидным UUID")
			return
		}
		authorID = &id
	}

	posts, err := h.posts.ListPosts(c.Request.Context(), spaceID, authorID, limit, offset)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{Items: posts, Limit: limit, Offset: offset})
}

// Search обрабатывает GET /posts/search?q=...
func (h *PostHandler) Search(c *gin.Context) {
	limit, offset := common.GetPagination(c)

	posts, err := h.posts.SearchPosts(c.Request.Context(), c.Query("q"), limit, offset)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{Items: posts, Limit: limit, Offset: offset})
}

// Delete обрабатывает DELETE /posts/:id.
func (h *PostHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}
	role, _ := common.CurrentUserRole(c)

	postID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.posts.DeletePost(c.Request.Context(), postID, userID, role); err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
