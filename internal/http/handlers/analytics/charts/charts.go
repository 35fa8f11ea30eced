// Package charts реализует HTTP-обработчик списка доступных графиков.
package charts

import (
	"net/http"

	"github.com/go-chi/render"
)

// Response тело ответа со списком графиков.
type Response struct {
	Charts []string `json:"charts"`
}

// Service описывает источник каталога графиков.
type Service interface {
	Charts() []string
}

// Handler отдаёт каталог графиков.
type Handler struct {
	service Service
}

// New создает новый Handler.
func New(service Service) *Handler {
	return &Handler{service: service}
}

// ServeHTTP godoc
// @Summary Каталог графиков
// @Tags Analytics
// @Produce json
// @Success 200 {object} charts.Response
// @Router /charts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, Response{Charts: h.service.Charts()})
}
