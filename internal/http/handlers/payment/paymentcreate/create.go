// Package paymentcreate реализует HTTP-обработчик для приёма платежа по счету.
//
// Handler принимает JSON-запрос с данными платежа, валидирует их,
// вызывает бизнес-логику биллинга (приём платежа пересчитывает paid и status
// счета) и возвращает ID созданной записи в JSON-формате.
package paymentcreate

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

// Handler управляет HTTP-запросами на приём платежей.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики биллинга
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики приёма платежа.
type Service interface {
	RecordPayment(ctx context.Context, req models.DummyPayment) (string, error)
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
// @Summary Принять платеж по счету
// @Description Сохраняет платеж и пересчитывает оплату и статус счета. Возвращает ID созданной записи.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body models.DummyPayment true "Данные платежа"
// @Success 200 {object} map[string]any "Успешный приём платежа"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или некорректный ID счета"
// @Failure 404 {object} response.ErrorResponse "Счет не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при приёме платежа"
// @Router /payments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyPayment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("bill_id", req.BillID))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	id, err := h.service.RecordPayment(r.Context(), req)
	if errors.Is(err, storage.ErrInvalidID) {
		log.Error("invalid bill id", slog.String("bill_id", req.BillID))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid bill id"))
		return
	}
	if errors.Is(err, storage.ErrBillNotFound) {
		log.Error("bill not found", slog.String("bill_id", req.BillID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("bill not found"))
		return
	}
	if err != nil {
		log.Error("failed to record payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not record payment"))
		return
	}

	log.Info("success to record payment", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}
