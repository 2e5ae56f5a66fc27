package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskdesk/internal/platform/db"
	"taskdesk/internal/platform/metrics"
)

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || rec.Header().Get("X-Request-ID") != seen {
		t.Fatalf("expected generated id in context and header, got %q / %q", seen, rec.Header().Get("X-Request-ID"))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if seen != "abc-123" {
		t.Fatalf("expected caller id to be reused, got %q", seen)
	}
}

func TestRecovererReturnsEnvelope(t *testing.T) {
	handler := RequestID(Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tasks", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"internal_error"`) {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
}

func TestLoggerRecordsStatus(t *testing.T) {
	collector := metrics.New()
	handler := Logger(collector)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/employees", nil))
	routes := collector.Snapshot()["routes"].([]metrics.RouteSnapshot)
	if len(routes) != 1 || routes[0].Statuses["418"] != 1 {
		t.Fatalf("unexpected route stats: %+v", routes)
	}
}

func TestBodyLimitCapsWrites(t *testing.T) {
	handler := BodyLimit(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"name":"too long"}`)))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected oversized body to fail, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{}`)))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected small body to pass, got %d", rec.Code)
	}
}

func TestSecureHeaders(t *testing.T) {
	handler := SecureHeaders(true)(http.HandlerFunc(noContent))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("expected nosniff header")
	}
	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Fatal("expected HSTS in production")
	}
}

type fakeHandle struct {
	released int
}

func (h *fakeHandle) Release() { h.released++ }

type fakeAcquirer struct {
	handle *fakeHandle
	err    error
}

func (a *fakeAcquirer) Acquire(context.Context) (db.Handle, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.handle, nil
}

func TestDBSessionReleasesHandle(t *testing.T) {
	acquirer := &fakeAcquirer{handle: &fakeHandle{}}
	var attached db.Handle
	handler := DBSession(acquirer, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attached = db.HandleFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees", nil))
	if attached != acquirer.handle {
		t.Fatal("expected handle on request context")
	}
	if acquirer.handle.released != 1 {
		t.Fatalf("expected one release, got %d", acquirer.handle.released)
	}
}

func TestDBSessionReleasesOnPanic(t *testing.T) {
	acquirer := &fakeAcquirer{handle: &fakeHandle{}}
	handler := Recoverer(DBSession(acquirer, nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("store exploded")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/tasks/1", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if acquirer.handle.released != 1 {
		t.Fatalf("expected handle released after panic, got %d", acquirer.handle.released)
	}
}

func TestDBSessionUnavailable(t *testing.T) {
	collector := metrics.New()
	called := false
	handler := DBSession(&fakeAcquirer{err: errors.New("pool closed")}, collector)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees", nil))
	if called {
		t.Fatal("handler must not run without a handle")
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if collector.Snapshot()["dbAcquireFailures"].(uint64) != 1 {
		t.Fatal("expected acquire failure to be counted")
	}
}
