// Package predict реализует HTTP-обработчик скоринга одного клиента.
//
// Handler принимает JSON с полями клиента, валидирует его и возвращает
// вероятность ухода, бинарный прогноз, метку и вектор признаков.
package predict

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/http/response"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/lib/sl"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/models"
)

// Handler управляет HTTP-запросами скоринга.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис скоринга
	validate *validator.Validate // Валидатор входных данных
}

// Service описывает интерфейс сервиса скоринга.
type Service interface {
	Predict(ctx context.Context, in models.PredictionInput) (models.PredictionOutput, error)
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
// @Summary Скоринг клиента
// @Description Оценивает вероятность ухода клиента обученной моделью.
// @Tags Prediction
// @Accept json
// @Produce json
// @Param request body models.PredictionInput true "Данные клиента"
// @Success 200 {object} models.PredictionOutput
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка скоринга"
// @Router /predict [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.prediction.predict"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.PredictionInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		msg := "invalid request body"
		if errors.Is(err, io.EOF) {
			msg = "empty request body"
		}
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(msg))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid request body"))
			return
		}
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(verrs))
		return
	}

	out, err := h.service.Predict(r.Context(), req)
	if err != nil {
		log.Error("prediction failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	log.Info("prediction done",
		slog.Float64("probability", out.Probability),
		slog.String("label", out.PredictionLabel),
	)
	render.JSON(w, r, out)
}
