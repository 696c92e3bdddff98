// Package tools implements the MCP tools served by lighthouse-mcp: a
// page-quality audit and a screenshot capture, both backed by the shared
// browser session.
package tools

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"lighthouse-mcp-server/internal/audit"
	"lighthouse-mcp-server/internal/browser"
	"lighthouse-mcp-server/internal/config"
)

// Pipeline wires the browser session, the audit engine, and result resolution
// into the operations the tools expose. Every invocation acquires the session
// through Manager.WithSession, which serializes calls and guarantees the
// session is released on success, error, and early return alike.
type Pipeline struct {
	sessions       *browser.Manager
	runner         *audit.Runner
	reportsDir     string
	screenshotsDir string
	log            *zap.Logger
}

// NewPipeline creates the invocation pipeline.
func NewPipeline(sessions *browser.Manager, runner *audit.Runner, out config.OutputConfig, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		sessions:       sessions,
		runner:         runner,
		reportsDir:     out.GetReportsDir(),
		screenshotsDir: out.GetScreenshotsDir(),
		log:            logger,
	}
}

// Audit runs the full audit pipeline for one request: navigate, run the
// engine, resolve the raw result through the fallback chain, then aggregate.
func (p *Pipeline) Audit(ctx context.Context, req audit.Request) (*audit.Report, error) {
	host, err := hostnameOf(req.URL)
	if err != nil {
		return nil, err
	}

	var rep *audit.Report
	err = p.sessions.WithSession(ctx, func(s *browser.Session) error {
		if _, err := p.sessions.Navigate(ctx, req.URL); err != nil {
			return err
		}

		reportPath := filepath.Join(p.reportsDir, audit.ReportFileName(host, time.Now()))
		raw, err := p.runner.Run(ctx, req.URL, s.DebugPort(), reportPath)
		if err != nil {
			return err
		}

		resolved, source, err := audit.Resolve(raw, reportPath, p.reportsDir)
		if err != nil {
			return err
		}
		p.log.Debug("audit result resolved",
			zap.String("url", req.URL),
			zap.String("source", string(source)))

		rep = audit.Summarize(resolved, req.Categories, req.MaxItems)
		rep.ReportPath = reportPath
		rep.Source = source
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rep, nil
}

// Capture navigates to url and saves a JPEG screenshot, returning the saved
// path and the raw image bytes.
func (p *Pipeline) Capture(ctx context.Context, rawURL string, fullPage bool) (string, []byte, error) {
	if _, err := hostnameOf(rawURL); err != nil {
		return "", nil, err
	}

	var path string
	var data []byte
	err := p.sessions.WithSession(ctx, func(s *browser.Session) error {
		if _, err := p.sessions.Navigate(ctx, rawURL); err != nil {
			return err
		}

		img, err := p.sessions.Screenshot(ctx, fullPage)
		if err != nil {
			return err
		}

		name := fmt.Sprintf("screenshot-%d.jpg", time.Now().UnixMilli())
		path = filepath.Join(p.screenshotsDir, name)
		if err := os.WriteFile(path, img, 0o644); err != nil {
			return fmt.Errorf("save screenshot: %w", err)
		}
		data = img
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	return path, data, nil
}

// hostnameOf extracts the hostname used in report file names. An unparsable
// or host-less URL is a navigation error before any session is acquired.
func hostnameOf(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", &browser.NavigationError{URL: raw, Err: err}
	}
	if u.Hostname() == "" {
		return "", &browser.NavigationError{URL: raw, Err: errors.New("url has no hostname")}
	}
	return u.Hostname(), nil
}
