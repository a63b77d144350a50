package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-vision/internal/infrastructure/metrics"
)

func TestMetrics_ContadoresYExposicion(t *testing.T) {
	m := metrics.New()
	m.ObserveReset("success", 120*time.Millisecond)
	m.ObserveReset("blocked", time.Millisecond)
	m.ObserveReset("blocked", time.Millisecond)
	m.ObserveMutation("ASSIGN")

	n, err := testutil.GatherAndCount(m.Registry(), "warehouse_resets_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `warehouse_resets_total{outcome="blocked"} 2`)
	assert.Contains(t, string(body), `warehouse_inventory_mutations_total{action="ASSIGN"} 1`)
	assert.Contains(t, string(body), "warehouse_reset_duration_seconds_count 3")
}
