// Package subject содержит бизнес-логику каталога предметов, включая кеширование.
package subject

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/enrollment-system/internal/models"
	"github.com/magabrotheeeer/enrollment-system/internal/storage"
)

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// Service реализует операции каталога предметов с кешированием чтений.
// Предметы в этой области неизменяемы, поэтому кеш не инвалидируется.
type Service struct {
	store storage.Store
	cache Cache
	log   *slog.Logger
}

// New создает новый Service.
func New(store storage.Store, cache Cache, log *slog.Logger) *Service {
	return &Service{
		store: store,
		cache: cache,
		log:   log,
	}
}

// Create создает предмет каталога и возвращает его ID.
func (s *Service) Create(ctx context.Context, req models.DummySubject) (string, error) {
	id, err := s.store.Create(ctx, storage.CollectionSubject, models.Subject{
		Code:       req.Code,
		Title:      req.Title,
		Units:      req.Units,
		FeePerUnit: req.FeePerUnit,
		FacultyID:  req.FacultyID,
	})
	if err != nil {
		return "", err
	}

	s.log.Info("created new subject", slog.String("id", id), slog.String("code", req.Code))
	return id, nil
}

// List возвращает предметы, опционально отфильтрованные по преподавателю.
func (s *Service) List(ctx context.Context, facultyID string) ([]models.Subject, error) {
	filter := storage.Filter{}
	if facultyID != "" {
		filter["faculty_id"] = facultyID
	}

	var result []models.Subject
	if err := s.store.FindMany(ctx, storage.CollectionSubject, filter, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Get возвращает предмет по ID, используя кеш или хранилище.
func (s *Service) Get(ctx context.Context, id string) (*models.Subject, error) {
	var result models.Subject
	cacheKey := fmt.Sprintf("subject:%s", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return &result, nil
	}

	if err := s.store.FindOne(ctx, storage.CollectionSubject, storage.Filter{"_id": id}, &result); err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache subject", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return &result, nil
}
