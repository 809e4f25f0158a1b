package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_AssetOperations(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New("test", reg)
	require.NoError(t, err)

	m.ObserveUpload(nil)
	m.ObserveUpload(errors.New("boom"))
	m.ObserveRemoval("replaced", nil)
	m.ObserveRemoval("create_compensation", errors.New("boom"))
	m.ObserveRemoval("create_compensation", errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.assetOps.WithLabelValues("upload", "", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.assetOps.WithLabelValues("upload", "", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.assetOps.WithLabelValues("remove", "replaced", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.assetOps.WithLabelValues("remove", "create_compensation", "error")))
}

func TestMetrics_HTTPAndHandler(t *testing.T) {
	m, err := New("", nil)
	require.NoError(t, err)

	m.ObserveHTTP(http.MethodPost, "/pets/", http.StatusCreated, 20*time.Millisecond)
	m.ObserveHTTP(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `pet_social_http_requests_total{method="POST",route="/pets/",status="201"} 1`), body)
	assert.True(t, strings.Contains(body, `route="unmatched"`))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}

func TestMetrics_ReRegisterReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := New("dup", reg)
	require.NoError(t, err)
	b, err := New("dup", reg)
	require.NoError(t, err)

	a.ObserveUpload(nil)
	b.ObserveUpload(nil)
	assert.Equal(t, 2.0, testutil.ToFloat64(b.assetOps.WithLabelValues("upload", "", "ok")))
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveUpload(nil)
	m.ObserveRemoval("deleted", errors.New("x"))
	m.ObserveHTTP("GET", "/", 200, time.Second)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
