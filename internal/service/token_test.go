package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/appedme/konvo-backend/internal/models"
)

func TestTokenManager_ParseAccess(t *testing.T) {
	manager := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	user := &models.User{ID: uuid.New(), Role: models.RoleModerator}

	pair, _, _, err := manager.GeneratePair(user)
	if err != nil {
		t.Fatalf("не удалось сгенерировать токены: %v", err)
	}

	userID, role, err := manager.ParseAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("парсинг access токена вернул ошибку: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("ожидали userID %s, получили %s", user.ID, userID)
	}
	if role != models.RoleModerator {
		t.Fatalf("ожидали роль moderator, получили %q", role)
	}
}

func TestTokenManager_ParseAccessWrongSecret(t *testing.T) {
	manager := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	other := NewTokenManager("other-secret", "refresh-secret", time.Minute, time.Hour)
	user := &models.User{ID: uuid.New(), Role: models.RoleUser}

	pair, _, _, err := manager.GeneratePair(user)
	if err != nil {
		t.Fatalf("не удалось сгенерировать токены: %v", err)
	}

	if _, _, err := other.ParseAccess(pair.AccessToken); err == nil {
		t.Fatalf("токен с чужим секретом должен быть отклонён")
	}
}

func TestTokenManager_RefreshNotValidAsAccess(t *testing.T) {
	manager := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	user := &models.User{ID: uuid.New(), Role: models.RoleUser}

	pair, _, _, err := manager.GeneratePair(user)
	if err != nil {
		t.Fatalf("не удалось сгенерировать токены: %v", err)
	}

	if _, _, err := manager.ParseAccess(pair.RefreshToken); err == nil {
		t.Fatalf("refresh токен не должен проходить как access")
	}

	if _, err := manager.ParseRefresh(pair.RefreshToken); err != nil {
		t.Fatalf("refresh токен должен парситься своим секретом: %v", err)
	}
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	manager := NewTokenManager("access-secret", "refresh-secret", -time.Minute, time.Hour)
	user := &models.User{ID: uuid.New(), Role: models.RoleUser}

	pair, _, _, err := manager.GeneratePair(user)
	if err != nil {
		t.Fatalf("не удалось сгенерировать токены: %v", err)
	}

	if _, _, err := manager.ParseAccess(pair.AccessToken); err == nil {
		t.Fatalf("просроченный access токен должен быть отклонён")
	}
}
