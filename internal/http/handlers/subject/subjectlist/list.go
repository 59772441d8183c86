// Package subjectlist реализует HTTP-обработчик для получения списка предметов.
package subjectlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/enrollment-system/internal/http/response"
	"github.com/magabrotheeeer/enrollment-system/internal/lib/sl"
	"github.com/magabrotheeeer/enrollment-system/internal/models"
)

// Handler обрабатывает запросы на получение списка предметов.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики каталога предметов
}

// Service описывает интерфейс бизнес-логики списка предметов.
type Service interface {
	List(ctx context.Context, facultyID string) ([]models.Subject, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список предметов
// @Description Возвращает предметы каталога, опционально отфильтрованные по преподавателю.
// @Tags Subjects
// @Produce  json
// @Param faculty_id query string false "Фильтр по преподавателю"
// @Success 200 {object} map[string]any "Список предметов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subjects [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subject.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	facultyID := r.URL.Query().Get("faculty_id")

	items, err := h.service.List(r.Context(), facultyID)
	if err != nil {
		log.Error("failed to list subjects", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list subjects"))
		return
	}

	log.Info("success to list subjects", slog.Int("count", len(items)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"items": items,
	}))
}
