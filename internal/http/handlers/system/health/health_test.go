package health

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubService int

func (s stubService) Rows() int { return int(s) }

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	New(stubService(7043)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK","data":{"rows":7043}}`, w.Body.String())
}
