package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/appedme/konvo-backend/internal/service"
)

// SeedHandler генерирует демонстрационные данные. Подключается только
// в dev-окружении.
type SeedHandler struct {
	seed *service.SeedService
}

// NewSeedHandler создаёт новый seed handler.
func NewSeedHandler(seed *service.SeedService) *SeedHandler {
	return &SeedHandler{seed: seed}
}

// Seed обрабатывает POST /api/seed.
func (h *SeedHandler) Seed(c *gin.Context) {
	var req struct {
		NumUsers int `json:"num_users"`
		NumPosts int `json:"num_posts"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		// Пустое тело допустимо — применяются значения по умолчанию
		req.NumUsers, req.NumPosts = 0, 0
	}

	if req.NumUsers < 1 {
		req.NumUsers = 10
	}
	if req.NumPosts < 1 {
		req.NumPosts = 30
	}
	if req.NumUsers > 500 {
		req.NumUsers = 500
	}
	if req.NumPosts > 2000 {
		req.NumPosts = 2000
	}

	if err := h.seed.SeedData(c.Request.Context(), req.NumUsers, req.NumPosts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "не удалось сгенерировать данные",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "демо-данные сгенерированы",
		"num_users": req.NumUsers,
		"num_posts": req.NumPosts,
	})
}
