package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.IncChartRequest("churnRate", true)
	m.IncChartRequest("churnRate", true)
	m.IncChartRequest("bogus", false)
	m.IncChartRequest("other_bogus", false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.chartRequests.WithLabelValues("churnRate", "true")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.chartRequests.WithLabelValues("unknown", "false")))

	m.IncReload(true)
	m.IncReload(false)
	m.IncReload(false)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reloads.WithLabelValues("ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.reloads.WithLabelValues("error")))

	m.SetDatasetRows(7043)
	assert.Equal(t, 7043.0, testutil.ToFloat64(m.datasetRows))

	m.IncPrediction("Churn", false)
	m.IncPrediction("Churn", true)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.predictions.WithLabelValues("Churn", "cache")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.predictions.WithLabelValues("Churn", "model")))

	m.ObserveHTTP(http.MethodGet, "/stats", http.StatusOK, time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/stats", "200")))

	m.ObserveQuery("stats", 2*time.Millisecond)
	assert.Equal(t, 1, testutil.CollectAndCount(m.queryDuration))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.SetDatasetRows(3)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "churn_dataset_rows 3")
	assert.Contains(t, string(body), "go_goroutines")
}
