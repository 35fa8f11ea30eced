// Package reload реализует административную перезагрузку датасета.
package reload

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/http/response"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/lib/sl"
)

// Service перечитывает датасет из источника.
type Service interface {
	Reload(ctx context.Context) (int, error)
}

// Handler запускает перезагрузку и возвращает число строк нового снимка.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Перезагрузить датасет
// @Description Перечитывает источник и атомарно заменяет снимок. При ошибке остаётся прежний снимок.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse "Нет или неверный токен"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка загрузки"
// @Router /admin/reload [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.system.reload"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	rows, err := h.service.Reload(r.Context())
	if err != nil {
		log.Error("failed to reload dataset", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not reload dataset"))
		return
	}

	log.Info("dataset reloaded", slog.Int("rows", rows))
	render.JSON(w, r, response.StatusOKWithData(map[string]int{"rows": rows}))
}
