// Package stats реализует HTTP-обработчик сводной статистики оттока.
package stats

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/http/request"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/models"
)

// Handler отдаёт статистику по отфильтрованному срезу.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает фасад запросов статистики.
type Service interface {
	ComputeStats(spec models.FilterSpec) models.Stats
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводная статистика
// @Description Число клиентов, доля оттока, средний платёж и средний стаж по фильтру.
// @Tags Analytics
// @Produce json
// @Param time_period query string false "Период" Enums(Last 30 days, Last 90 days, Last 6 months, Last year)
// @Param segment query string false "Сегмент" Enums(All Segments, New Customers, Long-term Customers, High-value Customers)
// @Param service query string false "Интернет-сервис"
// @Param contract query string false "Тип договора"
// @Success 200 {object} models.Stats
// @Router /stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analytics.stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	spec := request.FilterSpec(r)
	res := h.service.ComputeStats(spec)

	log.Debug("stats computed", slog.Any("filter", spec), slog.Int("total_customers", res.TotalCustomers))
	render.JSON(w, r, res)
}
