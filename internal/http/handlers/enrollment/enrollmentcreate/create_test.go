package enrollmentcreate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/enrollment-system/internal/models"
	"github.com/magabrotheeeer/enrollment-system/internal/storage"
)

// MockService реализует интерфейс enrollmentcreate.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) CreateEnrollment(ctx context.Context, req models.DummyEnrollment) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func TestCreateEnrollmentHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	validBody := `{"student_id":"student-1","subject_id":"subj-1","semester":"2025-1"}`

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное зачисление",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("CreateEnrollment", mock.Anything, models.DummyEnrollment{
					StudentID: "student-1", SubjectID: "subj-1", Semester: "2025-1",
				}).Return("64b2f8f1a2c3d4e5f6a7b8c9", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"64b2f8f1a2c3d4e5f6a7b8c9"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"student_id":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "отсутствует семестр",
			body:           `{"student_id":"student-1","subject_id":"subj-1"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Semester is a required field`,
		},
		{
			name:           "недопустимый статус",
			body:           `{"student_id":"student-1","subject_id":"subj-1","semester":"2025-1","status":"paused"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Status must be one of: enrolled dropped completed`,
		},
		{
			name: "повторное зачисление",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("CreateEnrollment", mock.Anything, mock.Anything).
					Return("", storage.ErrDuplicateEnrollment)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"already enrolled"`,
		},
		{
			name: "ошибка сервиса",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("CreateEnrollment", mock.Anything, mock.Anything).
					Return("", errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not create enrollment"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/enrollments", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
