// Package filters реализует HTTP-обработчик словаря значений фильтров.
package filters

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/models"
)

// Service описывает источник словаря фильтров.
type Service interface {
	ListFilters() models.FilterVocabulary
}

// Handler отдаёт значения для выпадающих списков фронтенда.
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
// @Summary Словарь фильтров
// @Description Периоды, сегменты, интернет-сервисы и типы договоров.
// @Tags Analytics
// @Produce json
// @Success 200 {object} models.FilterVocabulary
// @Router /filters [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analytics.filters"

	vocab := h.service.ListFilters()

	h.log.Debug("filters listed",
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Int("services", len(vocab.Services)),
		slog.Int("contracts", len(vocab.Contracts)),
	)
	render.JSON(w, r, vocab)
}
