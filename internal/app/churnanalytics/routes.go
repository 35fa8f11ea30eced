// Package churnanalytics собирает HTTP-маршруты и зависимости сервиса аналитики оттока.
package churnanalytics

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/analytics"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/config"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/http/handlers/analytics/chart"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/http/handlers/analytics/charts"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/http/handlers/analytics/filters"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/http/handlers/analytics/stats"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/http/handlers/prediction/predict"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/http/handlers/system/health"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/http/handlers/system/hello"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/http/handlers/system/reload"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/http/middlewarectx"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/metrics"
)

// Dataset текущий снимок датасета и его перезагрузка.
type Dataset interface {
	health.Service
	reload.Service
}

// Deps зависимости HTTP-маршрутов.
type Deps struct {
	Analytics *analytics.Service
	Dataset   Dataset
	Predictor predict.Service
	Tokens    middlewarectx.TokenParser
	Metrics   *metrics.Metrics
	RateLimit config.RateLimit
	CORS      config.CORS
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, d Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		cors.Handler(cors.Options{
			AllowedOrigins: d.CORS.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		}),
		middlewarectx.MetricsMiddleware(d.Metrics),
	)

	r.Get("/test", hello.New().ServeHTTP)
	r.Get("/health", health.New(d.Dataset).ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger, d.RateLimit.RPS, d.RateLimit.Burst))

		r.Get("/filters", filters.New(logger, d.Analytics).ServeHTTP)
		r.Get("/stats", stats.New(logger, d.Analytics).ServeHTTP)
		r.Get("/charts", charts.New(d.Analytics).ServeHTTP)
		r.Get("/chart/{"+chart.URLParam+"}", chart.New(logger, d.Analytics).ServeHTTP)
		r.Post("/predict", predict.New(logger, d.Predictor).ServeHTTP)
	})

	// Администрирование датасета
	r.Route("/admin", func(r chi.Router) {
		r.Use(middlewarectx.AdminMiddleware(d.Tokens, logger))
		r.Post("/reload", reload.New(logger, d.Dataset).ServeHTTP)
	})

	r.Handle("/metrics", d.Metrics.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
