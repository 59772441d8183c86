// Package subjectread реализует HTTP-обработчик для получения предмета по ID.
//
// Handler извлекает ID из URL-параметров, вызывает бизнес-логику каталога
// и возвращает данные предмета в JSON-формате. Некорректный формат ID
// и отсутствующая запись различаются кодами 400 и 404.
package subjectread

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/enrollment-system/internal/http/response"
	"github.com/magabrotheeeer/enrollment-system/internal/lib/sl"
	"github.com/magabrotheeeer/enrollment-system/internal/models"
	"github.com/magabrotheeeer/enrollment-system/internal/storage"
)

// Handler обрабатывает запросы на получение предмета по уникальному идентификатору.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики каталога предметов
}

// Service описывает интерфейс бизнес-логики чтения предмета.
type Service interface {
	Get(ctx context.Context, id string) (*models.Subject, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить предмет
// @Description Возвращает предмет каталога по ID.
// @Tags Subjects
// @Produce  json
// @Param id path string true "ID предмета"
// @Success 200 {object} map[string]any "Данные предмета"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Предмет не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subjects/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subject.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	subject, err := h.service.Get(r.Context(), id)
	if errors.Is(err, storage.ErrInvalidID) {
		log.Error("invalid subject id", slog.String("id", id))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid subject id"))
		return
	}
	if errors.Is(err, storage.ErrNotFound) {
		log.Error("subject not found", slog.String("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("subject not found"))
		return
	}
	if err != nil {
		log.Error("failed to read subject", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read subject"))
		return
	}

	log.Info("success to read subject", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"subject": subject,
	}))
}
