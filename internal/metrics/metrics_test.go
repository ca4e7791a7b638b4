package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New()
	m.RunStarted()
	m.Tick(2)
	m.Tick(0)
	m.Delivered(1)
	m.DefenseApplied("block_ip")
	m.RunEnded("time_limit")
	m.Scored(68)

	if got := testutil.ToFloat64(m.Ticks); got != 2 {
		t.Errorf("ticks = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.EventsDelivered); got != 3 {
		t.Errorf("events = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.DefensesApplied.WithLabelValues("block_ip")); got != 1 {
		t.Errorf("defenses = %v, want 1", got)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RunStarted()
	m.Tick(1)
	m.Delivered(1)
	m.DefenseApplied("x")
	m.RunEnded("manual")
	m.Scored(50)
	m.SinkFailed()
}

func TestHandlerServesRegistry(t *testing.T) {
	m := New()
	m.RunStarted()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Result().Body)
	if !strings.Contains(string(body), "vncrypt_runs_started_total 1") {
		t.Fatalf("metrics output missing counter:\n%s", body)
	}
}
