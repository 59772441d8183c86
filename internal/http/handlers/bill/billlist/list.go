// Package billlist реализует HTTP-обработчик для получения списка счетов.
package billlist

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

// Handler обрабатывает запросы на получение списка счетов.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики биллинга
}

// Service описывает интерфейс бизнес-логики списка счетов.
type Service interface {
	ListBills(ctx context.Context, studentID, status string) ([]models.Bill, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список счетов
// @Description Возвращает счета, опционально отфильтрованные по студенту и статусу оплаты.
// @Tags Bills
// @Produce  json
// @Param student_id query string false "Фильтр по студенту"
// @Param status query string false "Фильтр по статусу: unpaid, partial или paid"
// @Success 200 {object} map[string]any "Список счетов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /bills [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.bill.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	query := r.URL.Query()

	items, err := h.service.ListBills(r.Context(), query.Get("student_id"), query.Get("status"))
	if err != nil {
		log.Error("failed to list bills", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list bills"))
		return
	}

	log.Info("success to list bills", slog.Int("count", len(items)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"items": items,
	}))
}
