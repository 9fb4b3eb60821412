package http_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"potholes/internal/platform/config"
	phttp "potholes/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestNewServer_DefaultPort(t *testing.T) {
	t.Setenv("PORT", "")
	srv := phttp.NewServer(config.New())
	if srv.Addr() != ":5000" {
		t.Fatalf("Addr = %q, want :5000", srv.Addr())
	}

	t.Setenv("PORT", "8081")
	if got := phttp.NewServer(config.New()).Addr(); got != ":8081" {
		t.Fatalf("Addr = %q, want :8081", got)
	}
}

func TestServer_ServeAndShutdownOnCancel(t *testing.T) {
	optCalled := false
	srv := phttp.NewServer(config.New(), func(m *chi.Mux) { optCalled = true })
	if !optCalled {
		t.Fatalf("expected NewServer option to be called")
	}
	srv.Router().Get("/ping", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "pong") })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/ping")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(b) != "pong" {
		t.Fatalf("body = %q", b)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Serve did not return after cancel")
	}
}

func TestMountProfiler(t *testing.T) {
	on := phttp.NewServer(config.New()).Router()
	phttp.MountProfiler(on, "/debug", true)
	rec := httptest.NewRecorder()
	on.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/debug/pprof/cmdline", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 at /debug/pprof/cmdline, got %d", rec.Code)
	}

	off := phttp.NewServer(config.New()).Router()
	phttp.MountProfiler(off, "/debug", false)
	rec2 := httptest.NewRecorder()
	off.Mux().ServeHTTP(rec2, httptest.NewRequest("GET", "/debug/pprof/", nil))
	if rec2.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when disabled, got %d", rec2.Code)
	}
}
