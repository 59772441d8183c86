package subjectread

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/enrollment-system/internal/models"
	"github.com/magabrotheeeer/enrollment-system/internal/storage"
)

// MockService реализует интерфейс subjectread.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Get(ctx context.Context, id string) (*models.Subject, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Subject), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestReadSubjectHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное чтение предмета",
			id:   "64b2f8f1a2c3d4e5f6a7b8c9",
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, "64b2f8f1a2c3d4e5f6a7b8c9").
					Return(&models.Subject{Code: "CS101", Title: "Computer Science", Units: 3, FeePerUnit: 100}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"code":"CS101"`,
		},
		{
			name: "некорректный id",
			id:   "not-a-hex",
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, "not-a-hex").
					Return(nil, storage.ErrInvalidID)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid subject id"`,
		},
		{
			name: "предмет не найден",
			id:   "64b2f8f1a2c3d4e5f6a7b8c9",
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, "64b2f8f1a2c3d4e5f6a7b8c9").
					Return(nil, storage.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"subject not found"`,
		},
		{
			name: "ошибка сервиса",
			id:   "64b2f8f1a2c3d4e5f6a7b8c9",
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, "64b2f8f1a2c3d4e5f6a7b8c9").
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not read subject"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/subjects/"+tt.id, nil)
			// Устанавливаем URL params с помощью роутера chi
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
