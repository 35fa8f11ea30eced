// Package chart реализует HTTP-обработчик построения графика по имени из каталога.
package chart

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/http/request"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/models"
)

// URLParam имя параметра пути с названием графика.
const URLParam = "chartName"

// Handler отдаёт данные графика. Неизвестный график возвращает {} со статусом 200.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает фасад построения графиков.
type Service interface {
	ComputeChart(name string, spec models.FilterSpec) models.ChartResult
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Данные графика
// @Description Возвращает {labels, values} или {labels, churned, not_churned}; для неизвестного графика {}.
// @Tags Analytics
// @Produce json
// @Param chartName path string true "Имя графика"
// @Param time_period query string false "Период"
// @Param segment query string false "Сегмент"
// @Param service query string false "Интернет-сервис"
// @Param contract query string false "Тип договора"
// @Success 200 {object} models.BreakdownResult
// @Router /chart/{chartName} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analytics.chart"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	name := chi.URLParam(r, URLParam)
	res := h.service.ComputeChart(name, request.FilterSpec(r))

	log.Debug("chart computed", slog.String("chart", name))
	render.JSON(w, r, res)
}
