package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestModerationHandler_DecideReport_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ModerationHandler{moderation: nil}
	r.POST("/moderation/reports/:id/decision", handler.DecideReport)

	reportID := uuid.New()
	req, _ := http.NewRequest("POST", "/moderation/reports/"+reportID.String()+"/decision", strings.NewReader(`{"decision":"resolve"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestModerationHandler_DecideReport_InvalidReportID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", uuid.New())
		c.Set("role", "moderator")
		c.Next()
	})
	handler := &ModerationHandler{moderation: nil}
	r.POST("/moderation/reports/:id/decision", handler.DecideReport)

	req, _ := http.NewRequest("POST", "/moderation/reports/invalid-uuid/decision", strings.NewReader(`{"decision":"resolve"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestModerationHandler_DecideReport_MissingDecision(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", uuid.New())
		c.Set("role", "moderator")
		c.Next()
	})
	handler := &ModerationHandler{moderation: nil}
	r.POST("/moderation/reports/:id/decision", handler.DecideReport)

	reportID := uuid.New()
	req, _ := http.NewRequest("POST", "/moderation/reports/"+reportID.String()+"/decision", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestModerationHandler_DecideVerification_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ModerationHandler{moderation: nil}
	r.POST("/moderation/verification-requests/:id/decision", handler.DecideVerification)

	requestID := uuid.New()
	req, _ := http.NewRequest("POST", "/moderation/verification-requests/"+requestID.String()+"/decision", strings.NewReader(`{"decision":"approve"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestModerationHandler_BanUser_InvalidUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", uuid.New())
		c.Set("role", "admin")
		c.Next()
	})
	handler := &ModerationHandler{moderation: nil}
	r.POST("/admin/users/:id/ban", handler.BanUser)

	req, _ := http.NewRequest("POST", "/admin/users/invalid-uuid/ban", strings.NewReader(`{"reason":"спам"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
