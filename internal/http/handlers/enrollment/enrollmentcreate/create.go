// Package enrollmentcreate реализует HTTP-обработчик для зачисления студента на предмет.
//
// Handler принимает JSON-запрос с данными зачисления, валидирует их,
// вызывает бизнес-логику биллинга (создание зачисления запускает начисление
// платы в счет студента) и возвращает ID созданной записи в JSON-формате.
package enrollmentcreate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/enrollment-system/internal/http/response"
	"github.com/magabrotheeeer/enrollment-system/internal/lib/sl"
	"github.com/magabrotheeeer/enrollment-system/internal/models"
	"github.com/magabrotheeeer/enrollment-system/internal/storage"
)

// Handler управляет HTTP-запросами на создание зачислений.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики биллинга
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания зачисления.
type Service interface {
	CreateEnrollment(ctx context.Context, req models.DummyEnrollment) (string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Зачислить студента на предмет
// @Description Создает зачисление и начисляет плату за предмет в счет студента за семестр. Возвращает ID созданной записи.
// @Tags Enrollments
// @Accept  json
// @Produce  json
// @Param request body models.DummyEnrollment true "Данные зачисления"
// @Success 200 {object} map[string]any "Успешное зачисление"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или повторное зачисление"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при зачислении"
// @Router /enrollments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.enrollment.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyEnrollment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	id, err := h.service.CreateEnrollment(r.Context(), req)
	if errors.Is(err, storage.ErrDuplicateEnrollment) {
		log.Error("already enrolled", slog.String("student_id", req.StudentID),
			slog.String("subject_id", req.SubjectID), slog.String("semester", req.Semester))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("already enrolled"))
		return
	}
	if err != nil {
		log.Error("failed to create enrollment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create enrollment"))
		return
	}

	log.Info("success to create enrollment", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}
