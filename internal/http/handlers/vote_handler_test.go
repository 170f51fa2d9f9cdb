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

func TestVoteHandler_Cast_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &VoteHandler{votes: nil}
	r.POST("/posts/:id/vote", handler.Cast)

	postID := uuid.New()
	req, _ := http.NewRequest("POST", "/posts/"+postID.String()+"/vote", strings.NewReader(`{"direction":"up"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVoteHandler_Cast_InvalidPostID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", uuid.New())
		c.Next()
	})
	handler := &VoteHandler{votes: nil}
	r.POST("/posts/:id/vote", handler.Cast)

	req, _ := http.NewRequest("POST", "/posts/invalid-uuid/vote", strings.NewReader(`{"direction":"up"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVoteHandler_Cast_MissingDirection(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", uuid.New())
		c.Next()
	})
	handler := &VoteHandler{votes: nil}
	r.POST("/posts/:id/vote", handler.Cast)

	postID := uuid.New()
	req, _ := http.NewRequest("POST", "/posts/"+postID.String()+"/vote", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVoteHandler_Get_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &VoteHandler{votes: nil}
	r.GET("/posts/:id/vote", handler.Get)

	postID := uuid.New()
	req, _ := http.NewRequest("GET", "/posts/"+postID.String()+"/vote", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
