// Package health реализует диагностический HTTP-обработчик доступности хранилища.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/enrollment-system/internal/http/response"
	"github.com/magabrotheeeer/enrollment-system/internal/lib/sl"
)

// Handler обрабатывает запросы диагностики доступности хранилища.
type Handler struct {
	log    *slog.Logger
	pinger Pinger
}

// Pinger проверяет доступность хранилища записей.
type Pinger interface {
	Ping(ctx context.Context) error
}

// New создает новый Handler.
func New(log *slog.Logger, pinger Pinger) *Handler {
	return &Handler{
		log:    log,
		pinger: pinger,
	}
}

// ServeHTTP godoc
// @Summary Диагностика
// @Description Возвращает состояние сервиса и доступность хранилища.
// @Tags Health
// @Produce  json
// @Success 200 {object} map[string]any "Состояние сервиса"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	database := "connected"
	if err := h.pinger.Ping(r.Context()); err != nil {
		h.log.Error("storage ping failed", slog.String("op", op), sl.Err(err))
		database = "unavailable"
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"backend":  "running",
		"database": database,
	}))
}
