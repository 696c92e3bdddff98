//go:build integration

package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"lighthouse-mcp-server/internal/config"
)

// Requires a locally installed Chromium; run with -tags integration.

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><h1>hello</h1></body></html>"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEnsureSessionIsIdempotent(t *testing.T) {
	m := NewManager(config.BrowserConfig{Headless: true}, zap.NewNop())
	t.Cleanup(func() { _ = m.Close() })

	ctx := context.Background()
	s1, err := m.EnsureSession(ctx)
	if err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	s2, err := m.EnsureSession(ctx)
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if s1.ID() != s2.ID() {
		t.Errorf("second ensure created a new session: %s != %s", s1.ID(), s2.ID())
	}
}

func TestCloseThenEnsureCreatesNewSession(t *testing.T) {
	m := NewManager(config.BrowserConfig{Headless: true}, zap.NewNop())
	t.Cleanup(func() { _ = m.Close() })

	ctx := context.Background()
	s1, err := m.EnsureSession(ctx)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	s2, err := m.EnsureSession(ctx)
	if err != nil {
		t.Fatalf("ensure after close: %v", err)
	}
	if s1.ID() == s2.ID() {
		t.Error("expected a fresh session after close")
	}
}

func TestNavigateAndScreenshot(t *testing.T) {
	srv := testServer(t)
	m := NewManager(config.BrowserConfig{Headless: true}, zap.NewNop())
	t.Cleanup(func() { _ = m.Close() })

	ctx := context.Background()
	if _, err := m.Navigate(ctx, srv.URL); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	data, err := m.Screenshot(ctx, false)
	if err != nil {
		t.Fatalf("screenshot: %v", err)
	}
	if len(data) == 0 {
		t.Error("empty screenshot")
	}
}

func TestWithSessionClosesOnError(t *testing.T) {
	m := NewManager(config.BrowserConfig{Headless: true}, zap.NewNop())

	wantErr := context.Canceled
	err := m.WithSession(context.Background(), func(s *Session) error {
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}

	m.mu.Lock()
	open := m.session != nil
	m.mu.Unlock()
	if open {
		t.Error("session still open after WithSession returned")
	}
}
