package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_RecordLoad(t *testing.T) {
	m := New()

	m.RecordLoad(ResultSuccess, 20*time.Millisecond)
	m.RecordLoad(ResultSuccess, 30*time.Millisecond)
	m.RecordLoad(ResultError, time.Millisecond)

	if got := testutil.ToFloat64(m.loadsTotal.WithLabelValues(ResultSuccess)); got != 2 {
		t.Errorf("successful loads = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.loadsTotal.WithLabelValues(ResultError)); got != 1 {
		t.Errorf("failed loads = %v, want 1", got)
	}
}

func TestMetrics_SnapshotAndQueries(t *testing.T) {
	m := New()

	m.SetSnapshotUsers(10)
	m.RecordQuery("find_users", ResultSuccess)
	m.RecordQuery("find_users", ResultError)
	m.RecordQuery("find_users", ResultError)

	if got := testutil.ToFloat64(m.snapshotUsers); got != 10 {
		t.Errorf("snapshot users = %v, want 10", got)
	}
	if got := testutil.ToFloat64(m.queriesTotal.WithLabelValues("find_users", ResultError)); got != 2 {
		t.Errorf("failed queries = %v, want 2", got)
	}
}

func TestMetrics_WriteToTextfile(t *testing.T) {
	m := New()
	m.SetSnapshotUsers(3)

	path := filepath.Join(t.TempDir(), "userdata.prom")
	if err := m.WriteToTextfile(path); err != nil {
		t.Fatalf("WriteToTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read textfile: %v", err)
	}
	if !strings.Contains(string(data), "userdata_accessor_snapshot_users 3") {
		t.Errorf("textfile missing snapshot gauge:\n%s", data)
	}
}

func TestMetrics_MiddlewareAndHandler(t *testing.T) {
	m := New()

	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users", nil))

	if got := testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues(http.MethodGet, "unknown", "418")); got != 1 {
		t.Errorf("requests_total = %v, want 1", got)
	}

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics handler status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "userdata_http_requests_total") {
		t.Error("metrics output missing userdata_http_requests_total")
	}
}
