// Package health реализует HTTP-проверку готовности сервиса.
package health

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/http/response"
)

// Service сообщает размер текущего снимка датасета.
type Service interface {
	Rows() int
}

// Handler отвечает статусом OK и числом строк датасета.
type Handler struct {
	service Service
}

// New создает новый Handler.
func New(service Service) *Handler {
	return &Handler{service: service}
}

// ServeHTTP godoc
// @Summary Проверка готовности
// @Tags System
// @Produce json
// @Success 200 {object} response.Response
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(map[string]int{
		"rows": h.service.Rows(),
	}))
}
