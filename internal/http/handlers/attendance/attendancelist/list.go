// Package attendancelist реализует HTTP-обработчик для получения журналов посещаемости.
package attendancelist

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

// Handler обрабатывает запросы на получение журналов посещаемости.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики посещаемости
}

// Service описывает интерфейс бизнес-логики списка журналов посещаемости.
type Service interface {
	List(ctx context.Context, subjectID, facultyID string) ([]models.Attendance, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список журналов посещаемости
// @Description Возвращает журналы посещаемости, опционально отфильтрованные по предмету и преподавателю.
// @Tags Attendance
// @Produce  json
// @Param subject_id query string false "Фильтр по предмету"
// @Param faculty_id query string false "Фильтр по преподавателю"
// @Success 200 {object} map[string]any "Список журналов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /attendance [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.attendance.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	query := r.URL.Query()

	items, err := h.service.List(r.Context(), query.Get("subject_id"), query.Get("faculty_id"))
	if err != nil {
		log.Error("failed to list attendance logs", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list attendance logs"))
		return
	}

	log.Info("success to list attendance logs", slog.Int("count", len(items)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"items": items,
	}))
}
