// Package attendance содержит бизнес-логику журналов посещаемости.
package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/enrollment-system/internal/models"
	"github.com/magabrotheeeer/enrollment-system/internal/storage"
)

// sessionDateLayout формат даты занятия в JSON-запросе.
const sessionDateLayout = "2006-01-02"

// Service реализует операции над журналами посещаемости.
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

// Create создает журнал посещаемости занятия и возвращает его ID.
// Пустой статус отметки трактуется как present.
func (s *Service) Create(ctx context.Context, req models.DummyAttendance) (string, error) {
	sessionDate, err := time.Parse(sessionDateLayout, req.SessionDate)
	if err != nil {
		return "", fmt.Errorf("invalid session date: %w", err)
	}

	records := make([]models.AttendanceRecord, 0, len(req.Records))
	for _, r := range req.Records {
		status := r.Status
		if status == "" {
			status = models.AttendanceStatusPresent
		}
		records = append(records, models.AttendanceRecord{
			StudentID: r.StudentID,
			Status:    status,
		})
	}

	id, err := s.store.Create(ctx, storage.CollectionAttendance, models.Attendance{
		SubjectID:   req.SubjectID,
		FacultyID:   req.FacultyID,
		SessionDate: sessionDate,
		Records:     records,
	})
	if err != nil {
		return "", err
	}

	s.log.Info("created new attendance log", slog.String("id", id))
	return id, nil
}

// List возвращает журналы посещаемости по необязательным фильтрам.
func (s *Service) List(ctx context.Context, subjectID, facultyID string) ([]models.Attendance, error) {
	filter := storage.Filter{}
	if subjectID != "" {
		filter["subject_id"] = subjectID
	}
	if facultyID != "" {
		filter["faculty_id"] = facultyID
	}

	var result []models.Attendance
	if err := s.store.FindMany(ctx, storage.CollectionAttendance, filter, &result); err != nil {
		return nil, err
	}
	return result, nil
}
