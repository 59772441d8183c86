// Package user содержит бизнес-логику учетных записей: регистрацию,
// списки пользователей и одноразовую проверку учетных данных.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/enrollment-system/internal/models"
	"github.com/magabrotheeeer/enrollment-system/internal/storage"
)

// Service реализует операции над учетными записями.
type Service struct {
	store storage.Store
	log   *slog.Logger
}

// New создает новый Service.
func New(store storage.Store, log *slog.Logger) *Service {
	return &Service{
		store: store,
		log:   log,
	}
}

// Register создает пользователя с уникальным email и возвращает его ID.
func (s *Service) Register(ctx context.Context, req models.DummyUser) (string, error) {
	const op = "services.user.Register"

	var existing models.User
	err := s.store.FindOne(ctx, storage.CollectionUser, storage.Filter{"email": req.Email}, &existing)
	if err == nil {
		return "", storage.ErrEmailTaken
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.store.Create(ctx, storage.CollectionUser, models.User{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Password: req.Password,
		IsActive: true,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("created new user", slog.String("id", id), slog.String("role", req.Role))
	return id, nil
}

// List возвращает пользователей, опционально отфильтрованных по роли.
// Пароль не попадает в ответ: поле не сериализуется в JSON.
func (s *Service) List(ctx context.Context, role string) ([]models.User, error) {
	filter := storage.Filter{}
	if role != "" {
		filter["role"] = role
	}

	var result []models.User
	if err := s.store.FindMany(ctx, storage.CollectionUser, filter, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Login выполняет одноразовую проверку учетных данных и возвращает
// пользователя. Токен или сессия не создаются. Неизвестный email и
// неверный пароль неразличимы для вызывающего.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	const op = "services.user.Login"

	var user models.User
	err := s.store.FindOne(ctx, storage.CollectionUser, storage.Filter{"email": email}, &user)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, storage.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Учетные данные хранятся и сравниваются как есть.
	if user.Password != password {
		return nil, storage.ErrInvalidCredentials
	}
	return &user, nil
}
