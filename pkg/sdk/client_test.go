package postquery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/postquery/internal/domain/search/request"
	"github.com/kailas-cloud/postquery/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/postquery/internal/usecase/health"
)

func TestNew_RequiresDSN(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error without a database")
	}
	if !strings.Contains(err.Error(), "WithPostgres") {
		t.Errorf("error = %q", err)
	}
}

func TestClient_Ping(t *testing.T) {
	c := newTestClient(&mockSearchUC{})
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.database = &mockPinger{err: errors.New("connection refused")}
	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestClient_Health(t *testing.T) {
	c := newTestClient(&mockSearchUC{})
	c.healthSvc = &mockHealthUC{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK, "cache": healthuc.CheckError},
	}}

	h := c.Health(context.Background())
	if h.Status != "degraded" {
		t.Errorf("Status = %q, want degraded", h.Status)
	}
	if h.Checks["cache"] != "error" || h.Checks["database"] != "ok" {
		t.Errorf("Checks = %v", h.Checks)
	}
}

func TestClient_Close(t *testing.T) {
	var order []string
	c := newTestClient(&mockSearchUC{})
	c.closers = []func(){
		func() { order = append(order, "database") },
		func() { order = append(order, "cache") },
	}

	c.Close()
	c.Close()

	if strings.Join(order, ",") != "cache,database" {
		t.Errorf("close order = %v, want cache before database, once", order)
	}
}

func TestWireClient_DefaultMaxLimit(t *testing.T) {
	c := newTestClient(&mockSearchUC{})
	if c.maxLimit != 100 {
		t.Errorf("maxLimit = %d, want 100", c.maxLimit)
	}

	c = newTestClient(&mockSearchUC{}, WithMaxLimit(10))
	if c.maxLimit != 10 {
		t.Errorf("maxLimit = %d, want 10", c.maxLimit)
	}
}

func TestObserver_MetricsAndLogs(t *testing.T) {
	reg := prometheus.NewRegistry()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	obs, err := newObserver(logger, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	c := newTestClient(&mockSearchUC{
		searchFn: func(context.Context, *request.Request) ([]result.Post, error) {
			return nil, fmt.Errorf("compile query: %w", &ParseError{Kind: ErrUnknownField, Chunk: "foo:bar"})
		},
	})
	c.obs = obs

	_, _ = c.Search(context.Background(), "foo:bar")
	c.database = &mockPinger{err: errors.New("down")}
	_ = c.Ping(context.Background())

	if got := testutil.ToFloat64(obs.metrics.operations.WithLabelValues("search", "rejected")); got != 1 {
		t.Errorf("operations{search,rejected} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(obs.metrics.operations.WithLabelValues("ping", "error")); got != 1 {
		t.Errorf("operations{ping,error} = %v, want 1", got)
	}

	out := buf.String()
	if !strings.Contains(out, "query rejected") || !strings.Contains(out, "query=foo:bar") {
		t.Errorf("missing rejected query log line:\n%s", out)
	}
	if !strings.Contains(out, "operation failed") || !strings.Contains(out, "op=ping") {
		t.Errorf("missing failed ping log line:\n%s", out)
	}
}

func TestNewSDKMetrics_ReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := newSDKMetrics(reg)
	if err != nil {
		t.Fatalf("first register: %v", err)
	}
	second, err := newSDKMetrics(reg)
	if err != nil {
		t.Fatalf("second register: %v", err)
	}
	if first.operations != second.operations {
		t.Error("expected the already registered counter to be reused")
	}
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe(context.Background(), "search", "q", timeZero(), nil)
}
