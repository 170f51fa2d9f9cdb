package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/appedme/konvo-backend/internal/logger"
	"github.com/appedme/konvo-backend/internal/pkg/apperror"
	"github.com/appedme/konvo-backend/internal/repository"
)

// ErrorHandler обрабатывает ошибки централизованно: переводит ошибки
// приложения в единый формат {"error": ..., "code": ...} и маскирует
// внутренние ошибки.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		if logger.Log != nil {
			logger.Log.WithFields(logrus.Fields{
				"error":  err.Error(),
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			}).Error("request error")
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.Message, "code": appErr.Code})
			return
		}

		statusCode := http.StatusInternalServerError
		message := "внутренняя ошибка сервера"

		switch {
		case errors.Is(err, repository.ErrPostNotFound):
			statusCode, message = http.StatusNotFound, "пост не найден"
		case errors.Is(err, repository.ErrCommentNotFound):
			statusCode, message = http.StatusNotFound, "комментарий не найден"
		case errors.Is(err, repository.ErrSpaceNotFound):
			statusCode, message = http.StatusNotFound, "сообщество не найдено"
		case errors.Is(err, repository.ErrUserNotFound):
			statusCode, message = http.StatusNotFound, "пользователь не найден"
		case errors.Is(err, repository.ErrReportNotFound):
			statusCode, message = http.StatusNotFound, "жалоба не найдена"
		case errors.Is(err, repository.ErrVerificationNotFound):
			statusCode, message = http.StatusNotFound, "запрос на верификацию не найден"
		case errors.Is(err, repository.ErrNotificationNotFound):
			statusCode, message = http.StatusNotFound, "уведомление не найдено"
		case errors.Is(err, repository.ErrAlreadyDecided):
			statusCode, message = http.StatusConflict, "решение по этому объекту уже принято"
		default:
			if msg := err.Error(); msg != "" && !containsInternalKeywords(msg) {
				message = msg
			}
		}

		c.JSON(statusCode, gin.H{"error": message})
	}
}

// containsInternalKeywords отсекает сообщения, раскрывающие детали
// инфраструктуры.
func containsInternalKeywords(s string) bool {
	keywords := []string{
		"sql:",
		"database",
		"connection",
		"timeout",
		"internal",
		"panic",
		"runtime",
		"repository:",
	}

	lower := strings.ToLower(s)
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
