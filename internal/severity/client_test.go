package severity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/situation_dashboard/internal/conf"
	"github.com/iWorld-y/situation_dashboard/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(&conf.Severity{BaseUrl: srv.URL, Rpm: 6000, Qps: 100}, log.DefaultLogger)
	if c == nil {
		t.Fatal("NewClient() returned nil for configured service")
	}
	return c
}

func TestFieldSeverity_Success(t *testing.T) {
	var gotType, gotField string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotType = r.URL.Query().Get("assessmentType")
		gotField = r.URL.Query().Get("fieldName")
		w.Write([]byte(`{"success": true, "data": {"severity": "MEDIUM"}}`))
	})

	s, ok := c.FieldSeverity(context.Background(), domain.CategoryFood, "isFoodSufficient")
	if !ok {
		t.Fatal("FieldSeverity() ok = false, want true")
	}
	if s != domain.SeverityMedium {
		t.Errorf("severity = %v, want MEDIUM", s)
	}
	if gotType != "FOOD" || gotField != "isFoodSufficient" {
		t.Errorf("query params = %s/%s", gotType, gotField)
	}
}

func TestFieldSeverity_SilentFallback(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-200", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"application error", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success": false, "error": "field not configured"}`))
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success": tru`))
		}},
		{"unknown severity", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success": true, "data": {"severity": "EXTREME"}}`))
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, tc.handler)
			if _, ok := c.FieldSeverity(context.Background(), domain.CategoryWash, "isWaterSufficient"); ok {
				t.Error("FieldSeverity() ok = true, want silent failure")
			}
		})
	}
}

func TestFieldSeverity_RateLimited(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"success": true, "data": {"severity": "LOW"}}`))
	}))
	t.Cleanup(srv.Close)

	// 突发额度 1：第二次调用应被限流直接放弃
	c := NewClient(&conf.Severity{BaseUrl: srv.URL, Rpm: 1, Qps: 1}, log.DefaultLogger)
	if _, ok := c.FieldSeverity(context.Background(), domain.CategoryFood, "isFoodSufficient"); !ok {
		t.Fatal("first call should pass the limiter")
	}
	if _, ok := c.FieldSeverity(context.Background(), domain.CategoryFood, "hasInfantNutrition"); ok {
		t.Error("second call should be dropped by the limiter")
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1", hits)
	}
}

func TestNewClient_Disabled(t *testing.T) {
	if NewClient(nil, log.DefaultLogger) != nil {
		t.Error("NewClient(nil) should be nil")
	}
	if NewClient(&conf.Severity{}, log.DefaultLogger) != nil {
		t.Error("NewClient without BaseUrl should be nil")
	}
}

func TestTable_SnapshotAfterRefresh(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("fieldName") == "isFoodSufficient" {
			w.Write([]byte(`{"success": true, "data": {"severity": "HIGH"}}`))
			return
		}
		w.Write([]byte(`{"success": false, "error": "not configured"}`))
	})

	table := NewTable(c, &conf.Severity{Refresh: "1ms"}, log.DefaultLogger)
	if table.Snapshot(domain.CategoryFood) != nil {
		t.Fatal("snapshot should start empty")
	}

	// 同步跑一轮刷新，便于断言
	table.refreshing = true
	table.refresh()

	snap := table.Snapshot(domain.CategoryFood)
	if snap == nil {
		t.Fatal("snapshot still empty after refresh")
	}
	if snap["isFoodSufficient"] != domain.SeverityHigh {
		t.Errorf("snapshot[isFoodSufficient] = %v, want HIGH", snap["isFoodSufficient"])
	}
	if _, ok := snap["hasInfantNutrition"]; ok {
		t.Error("unconfigured field must not appear in snapshot")
	}
}
