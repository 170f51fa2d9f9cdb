package service

import (
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/crypto/bcrypt"

	"github.com/appedme/konvo-backend/internal/models"
	"github.com/appedme/konvo-backend/internal/repository"
)

// SeedService генерирует демонстрационные данные для dev-окружения.
type SeedService struct {
	userRepo  *repository.UserRepository
	spaceRepo *repository.SpaceRepository
	postRepo  *repository.PostRepository
}

// NewSeedService создаёт новый сервис для генерации данных.
func NewSeedService(userRepo *repository.UserRepository, spaceRepo *repository.SpaceRepository, postRepo *repository.PostRepository) *SeedService {
	return &SeedService{
		userRepo:  userRepo,
		spaceRepo: spaceRepo,
		postRepo:  postRepo,
	}
}

// SeedData генерирует демо-пользователей, сообщество и посты.
func (s *SeedService) SeedData(ctx context.Context, numUsers, numPosts int) error {
	users, err := s.generateUsers(ctx, numUsers)
	if err != nil {
		return fmt.Errorf("seed service: failed to generate users: %w", err)
	}
	if len(users) == 0 {
		return fmt.Errorf("seed service: no users generated")
	}

	space := &models.Space{
		Name:      "Общая лента",
		Slug:      fmt.Sprintf("general-%d", rand.Intn(100000)),
		CreatedBy: users[0].ID,
	}
	if err := s.spaceRepo.Create(ctx, space); err != nil {
		return fmt.Errorf("seed service: failed to create space: %w", err)
	}

	if err := s.generatePosts(ctx, users, space, numPosts); err != nil {
		return fmt.Errorf("seed service: failed to generate posts: %w", err)
	}

	return nil
}

// generateUsers создаёт демо-пользователей; первый получает роль модератора.
func (s *SeedService) generateUsers(ctx context.Context, count int) ([]*models.User, error) {
	firstNames := []string{
		"Александр", "Дмитрий", "Максим", "Сергей", "Андрей", "Алексей", "Артём", "Илья",
		"Анна", "Мария", "Елена", "Ольга", "Екатерина", "Юлия", "Анастасия", "Дарья",
	}
	lastNames := []string{
		"Иванов", "Петров", "Смирнов", "Козлов", "Соколов", "Попов", "Лебедев", "Новиков",
		"Морозов", "Волков", "Васильев", "Зайцев", "Павлов", "Семёнов", "Фёдоров", "Белов",
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		first := firstNames[rand.Intn(len(firstNames))]
		last := lastNames[rand.Intn(len(lastNames))]
		username := fmt.Sprintf("demo_%d_%d", i, rand.Intn(100000))

		user := &models.User{
			Email:        username + "@example.com",
			Username:     username,
			PasswordHash: string(hash),
			DisplayName:  first + " " + last,
			Role:         models.RoleUser,
		}
		if i == 0 {
			user.Role = models.RoleModerator
		}

		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

// generatePosts создаёт демо-посты в сообществе от случайных авторов.
func (s *SeedService) generatePosts(ctx context.Context, users []*models.User, space *models.Space, count int) error {
	titles := []string{
		"Как вы организуете рабочее место",
		"Подборка полезных материалов за неделю",
		"Вопрос к сообществу про выбор инструментов",
		"Делюсь опытом переезда на новый стек",
		"Что почитать на выходных",
		"Обсуждение последних новостей",
	}
	bodies := []string{
		"Расскажите, какие практики используете вы. Интересен любой опыт.",
		"Собрал в одном месте всё, что показалось полезным. Дополняйте в комментариях.",
		"Долго выбирал между несколькими вариантами и в итоге остановился на самом простом.",
		"Кратко о том, что получилось, что нет, и что бы я сделал иначе.",
	}

	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]
		post := &models.Post{
			SpaceID:  &space.ID,
			AuthorID: &author.ID,
			Title:    fmt.Sprintf("%s #%d", titles[rand.Intn(len(titles))], i+1),
			Body:     bodies[rand.Intn(len(bodies))],
			Status:   models.PostStatusPublished,
		}
		if err := s.postRepo.Create(ctx, post); err != nil {
			return err
		}
	}

	return nil
}
