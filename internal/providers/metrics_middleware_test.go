package providers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"cpd/internal/providers"
	"cpd/internal/testutil"
)

func TestMetricsMiddleware_CountsRequests(t *testing.T) {
	metrics := testutil.NewMockMetrics()
	logger := &testutil.MockLogger{}

	handler := providers.MetricsMiddleware(metrics, logger, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/blogs", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, 1, metrics.Requests)
	assert.True(t, logger.HasLevel("debug"))
}

func TestMetricsMiddleware_DefaultsStatusTo200(t *testing.T) {
	metrics := testutil.NewMockMetrics()

	handler := providers.MetricsMiddleware(metrics, &testutil.MockLogger{}, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok")) // implicit 200
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/personas", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, metrics.Requests)
}
