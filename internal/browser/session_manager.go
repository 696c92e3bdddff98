// Package browser owns the single shared browser/page pair behind the MCP
// tools. The session is created lazily, exposed to the audit engine via a
// fixed remote debugging port, and torn down after every invocation.
package browser

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"lighthouse-mcp-server/internal/config"
)

const screenshotQuality = 80

// Session is the live browser/page pair. Exactly one exists at a time.
type Session struct {
	id        string
	browser   *rod.Browser
	page      *rod.Page
	launch    *launcher.Launcher
	debugPort int
	createdAt time.Time
}

// ID returns the session identifier used for log correlation.
func (s *Session) ID() string { return s.id }

// Page returns the underlying Rod page.
func (s *Session) Page() *rod.Page { return s.page }

// DebugPort returns the remote debugging port the audit engine drives the
// page through.
func (s *Session) DebugPort() int { return s.debugPort }

// Manager owns the shared session. Tool invocations are serialized behind
// WithSession so concurrent calls never race on the same handles.
type Manager struct {
	cfg config.BrowserConfig
	log *zap.Logger

	invokeMu sync.Mutex // serializes whole invocations
	mu       sync.Mutex // guards session state
	session  *Session
}

// NewManager creates a session manager.
func NewManager(cfg config.BrowserConfig, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{cfg: cfg, log: logger}
}

// EnsureSession launches the browser and opens the single page if no session
// exists, and returns the existing one unchanged otherwise.
func (m *Manager) EnsureSession(ctx context.Context) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil {
		return m.session, nil
	}

	port := m.cfg.GetDebugPort()
	launch := launcher.New().
		Headless(m.cfg.IsHeadless()).
		Set(flags.Flag("remote-debugging-port"), strconv.Itoa(port))
	if m.cfg.IgnoreCertificateErrors {
		launch = launch.Set(flags.Flag("ignore-certificate-errors"))
	}

	controlURL, err := launchWithTimeout(ctx, launch, m.cfg.LaunchTimeout())
	if err != nil {
		launch.Kill()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		launch.Kill()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		launch.Kill()
		return nil, fmt.Errorf("create page: %w", err)
	}

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             m.cfg.GetViewportWidth(),
		Height:            m.cfg.GetViewportHeight(),
		DeviceScaleFactor: 1.0,
		Mobile:            false,
	}).Call(page); err != nil {
		m.log.Warn("failed to set viewport", zap.Error(err))
	}

	m.session = &Session{
		id:        uuid.NewString(),
		browser:   browser,
		page:      page,
		launch:    launch,
		debugPort: port,
		createdAt: time.Now(),
	}
	m.log.Debug("session opened",
		zap.String("session_id", m.session.id),
		zap.Int("debug_port", port))
	return m.session, nil
}

// launchWithTimeout bounds the blocking launcher call. The launched process is
// killed when the bound is exceeded.
func launchWithTimeout(ctx context.Context, l *launcher.Launcher, timeout time.Duration) (string, error) {
	type result struct {
		url string
		err error
	}
	ch := make(chan result, 1)
	go func() {
		url, err := l.Launch()
		ch <- result{url: url, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-ch:
		return r.url, r.err
	case <-timer.C:
		return "", fmt.Errorf("timed out after %v", timeout)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Navigate ensures a session and loads url, waiting for the load event. On
// failure the session is left open; the caller owns cleanup.
func (m *Manager) Navigate(ctx context.Context, url string) (*rod.Page, error) {
	s, err := m.EnsureSession(ctx)
	if err != nil {
		return nil, err
	}

	page := s.page.Context(ctx).Timeout(m.cfg.NavigationTimeout())
	if err := page.Navigate(url); err != nil {
		return nil, &NavigationError{URL: url, Err: err}
	}
	if err := page.WaitLoad(); err != nil {
		return nil, &NavigationError{URL: url, Err: err}
	}
	return s.page, nil
}

// Screenshot captures the current page as JPEG.
func (m *Manager) Screenshot(ctx context.Context, fullPage bool) ([]byte, error) {
	s, err := m.EnsureSession(ctx)
	if err != nil {
		return nil, err
	}

	quality := screenshotQuality
	data, err := s.page.Context(ctx).Screenshot(fullPage, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: &quality,
	})
	if err != nil {
		return nil, &ScreenshotError{Err: err}
	}
	return data, nil
}

// Close releases the browser and page handles. Safe to call when no session
// is open.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil
	}
	s := m.session
	m.session = nil

	var err error
	if s.browser != nil {
		err = s.browser.Close()
	}
	if s.launch != nil {
		s.launch.Kill()
		s.launch.Cleanup()
	}
	m.log.Debug("session closed",
		zap.String("session_id", s.id),
		zap.Duration("lifetime", time.Since(s.createdAt)))
	return err
}

// WithSession runs fn against an ensured session and guarantees the session is
// released on every exit path. Invocations are serialized, so two concurrent
// tool calls never share live handles.
func (m *Manager) WithSession(ctx context.Context, fn func(s *Session) error) error {
	m.invokeMu.Lock()
	defer m.invokeMu.Unlock()
	defer func() {
		if err := m.Close(); err != nil {
			m.log.Warn("failed to close session", zap.Error(err))
		}
	}()

	s, err := m.EnsureSession(ctx)
	if err != nil {
		return err
	}
	return fn(s)
}
