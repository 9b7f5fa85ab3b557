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

	m.IncInserted("Map")
	m.IncInserted("Map")
	m.IncInserted("Item")
	m.ObserveRequest("mutation", false)
	m.ObserveRequest("query", true)
	m.ObserveField("createMap", 2*time.Millisecond, "VAL_001")
	m.ObserveField("getMap", time.Millisecond, "")
	m.ObserveCache(CacheHit)
	m.ObserveCache(CacheMiss)
	m.ObserveCache(CacheMiss)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.inserted.WithLabelValues("Map")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.inserted.WithLabelValues("Item")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("query", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fieldErrors.WithLabelValues("createMap", "VAL_001")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.fieldErrors))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheRequests.WithLabelValues(CacheMiss)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.fieldDuration))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncInserted("Map")
		m.ObserveRequest("query", false)
		m.ObserveField("items", time.Millisecond, "")
		m.ObserveCache(CacheHit)
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.IncInserted("Aisles")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `quickart_store_documents_inserted_total{collection="Aisles"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
