package chart

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ComputeChart(name string, spec models.FilterSpec) models.ChartResult {
	return m.Called(name, spec).Get(0).(models.ChartResult)
}

func TestChartHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name         string
		chart        string
		query        string
		spec         models.FilterSpec
		result       models.ChartResult
		expectedBody string
	}{
		{
			name:  "распределение оттока",
			chart: "churnRate",
			spec:  models.FilterSpec{},
			result: &models.SeriesResult{
				Labels: []string{"No", "Yes"},
				Values: []float64{5174, 1869},
			},
			expectedBody: `{"labels":["No","Yes"],"values":[5174,1869]}`,
		},
		{
			name:  "разбивка с фильтром по договору",
			chart: "genderChurn",
			query: "?contract=Two+year",
			spec:  models.FilterSpec{Contract: "Two year"},
			result: &models.BreakdownResult{
				Labels:     []string{"Female", "Male"},
				Churned:    []float64{1, 0},
				NotChurned: []float64{2, 3},
			},
			expectedBody: `{"labels":["Female","Male"],"churned":[1,0],"not_churned":[2,3]}`,
		},
		{
			name:         "неизвестный график",
			chart:        "unknownName",
			spec:         models.FilterSpec{},
			result:       models.EmptyResult{},
			expectedBody: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("ComputeChart", tt.chart, tt.spec).Return(tt.result).Once()

			req := httptest.NewRequest(http.MethodGet, "/chart/"+tt.chart+tt.query, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add(URLParam, tt.chart)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
