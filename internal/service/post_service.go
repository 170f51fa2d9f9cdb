package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/appedme/konvo-backend/internal/models"
	"github.com/appedme/konvo-backend/internal/pkg/apperror"
	"github.com/appedme/konvo-backend/internal/repository"
	"github.com/appedme/konvo-backend/internal/validation"
)

// PostStore описывает взаимодействие сервиса с хранилищем постов.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	List(ctx context.Context, spaceID, authorID *uuid.UUID, limit, offset int) ([]models.Post, error)
	Search(ctx context.Context, term string, limit, offset int) ([]models.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostSpaceReader проверяет существование сообщества перед публикацией.
type PostSpaceReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Space, error)
}

// CreatePostInput параметры публикации поста.
// При Anonymous == true автор не сохраняется.
type CreatePostInput struct {
	SpaceID   *uuid.UUID
	Title     string
	Body      string
	Anonymous bool
}

// PostService содержит бизнес-логику работы с постами.
type PostService struct {
	posts  PostStore
	spaces PostSpaceReader
}

// NewPostService создаёт новый сервис постов.
func NewPostService(posts PostStore, spaces PostSpaceReader) *PostService {
	return &PostService{posts: posts, spaces: spaces}
}

// CreatePost публикует новый пост от имени пользователя.
func (s *PostService) CreatePost(ctx context.Context, authorID uuid.UUID, input CreatePostInput) (*models.Post, error) {
	title := strings.TrimSpace(input.Title)
	if err := validation.ValidatePostTitle(title); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidatePostBody(input.Body); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	if input.SpaceID != nil {
		if _, err := s.spaces.GetByID(ctx, *input.SpaceID); err != nil {
			if errors.Is(err, repository.ErrSpaceNotFound) {
				return nil, apperror.ErrSpaceNotFound
			}
			return nil, err
		}
	}

	post := &models.Post{
		SpaceID: input.SpaceID,
		Title:   title,
		Body:    input.Body,
		Status:  models.PostStatusPublished,
	}
	if !input.Anonymous {
		post.AuthorID = &authorID
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost возвращает пост по идентификатору.
func (s *PostService) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, apperror.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// ListPosts возвращает опубликованные посты с фильтрами по сообществу
// и автору.
func (s *PostService) ListPosts(ctx context.Context, spaceID, authorID *uuid.UUID, limit, offset int) ([]models.Post, error) {
	limit, offset = normalizePagination(limit, offset)
	return s.posts.List(ctx, spaceID, authorID, limit, offset)
}

// SearchPosts ищет посты по подстроке в заголовке или теле.
func (s *PostService) SearchPosts(ctx context.Context, term string, limit, offset int) ([]models.Post, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "поисковый запрос не может быть пустым")
	}

	limit, offset = normalizePagination(limit, offset)
	return s.posts.Search(ctx, term, limit, offset)
}

// DeletePost удаляет пост. Доступно автору либо модератору.
func (s *PostService) DeletePost(ctx context.Context, id, userID uuid.UUID, role string) error {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return err
	}

	owns := post.AuthorID != nil && *post.AuthorID == userID
	if !owns && !models.IsModeratorRole(role) {
		return apperror.ErrForbidden
	}

	return s.posts.Delete(ctx, id)
}

func normalizePagination(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
