// Package hello реализует проверочный обработчик /test.
package hello

import (
	"net/http"

	"github.com/go-chi/render"
)

// Message текст приветствия.
const Message = "Hello, churn analytics!"

// Handler отвечает фиксированным сообщением.
type Handler struct{}

// New создает новый Handler.
func New() *Handler {
	return &Handler{}
}

// ServeHTTP godoc
// @Summary Проверка доступности API
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /test [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"message": Message})
}
