// Package enrollmentlist реализует HTTP-обработчик для получения списка зачислений.
package enrollmentlist

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

// Handler обрабатывает запросы на получение списка зачислений.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики биллинга
}

// Service описывает интерфейс бизнес-логики списка зачислений.
type Service interface {
	ListEnrollments(ctx context.Context, studentID, subjectID, semester string) ([]models.Enrollment, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список зачислений
// @Description Возвращает зачисления, опционально отфильтрованные по студенту, предмету и семестру.
// @Tags Enrollments
// @Produce  json
// @Param student_id query string false "Фильтр по студенту"
// @Param subject_id query string false "Фильтр по предмету"
// @Param semester query string false "Фильтр по семестру"
// @Success 200 {object} map[string]any "Список зачислений"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /enrollments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.enrollment.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	query := r.URL.Query()

	items, err := h.service.ListEnrollments(r.Context(),
		query.Get("student_id"), query.Get("subject_id"), query.Get("semester"))
	if err != nil {
		log.Error("failed to list enrollments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list enrollments"))
		return
	}

	log.Info("success to list enrollments", slog.Int("count", len(items)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"items": items,
	}))
}
