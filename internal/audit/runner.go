package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"lighthouse-mcp-server/internal/config"
)

// Runner invokes the Lighthouse CLI against a page already opened on the
// session's remote debugging port.
type Runner struct {
	bin        string
	timeout    time.Duration
	extraFlags []string
	log        *zap.Logger
}

// NewRunner creates a runner from the audit configuration.
func NewRunner(cfg config.AuditConfig, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		bin:        cfg.Bin(),
		timeout:    cfg.Timeout(),
		extraFlags: cfg.ExtraFlags,
		log:        logger,
	}
}

// Run executes the engine with JSON output written to reportPath, then reads
// the written report back as the direct in-memory result. A nil result with a
// nil error means the engine ran but its output is unusable; the resolver
// falls back to the report files in that case. Engine failures surface as
// AuditEngineError.
func (r *Runner) Run(ctx context.Context, url string, debugPort int, reportPath string) (*EngineResult, error) {
	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	args := r.buildArgs(url, debugPort, reportPath)
	r.log.Debug("running lighthouse",
		zap.String("url", url),
		zap.Int("debug_port", debugPort),
		zap.String("report_path", reportPath))

	cmd := exec.CommandContext(runCtx, r.bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			err = fmt.Errorf("%w: %s", err, detail)
		}
		return nil, &AuditEngineError{Err: fmt.Errorf("%s: %w", r.bin, err)}
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		r.log.Warn("engine succeeded but report file is unreadable",
			zap.String("report_path", reportPath), zap.Error(err))
		return nil, nil
	}
	var res EngineResult
	if err := json.Unmarshal(data, &res); err != nil {
		r.log.Warn("engine succeeded but report file is not valid JSON",
			zap.String("report_path", reportPath), zap.Error(err))
		return nil, nil
	}
	return &res, nil
}

// buildArgs assembles the CLI invocation: machine-readable JSON only, written
// to reportPath, default category rule set, no score gating.
func (r *Runner) buildArgs(url string, debugPort int, reportPath string) []string {
	args := []string{
		url,
		"--port=" + strconv.Itoa(debugPort),
		"--output=json",
		"--output-path=" + reportPath,
		"--quiet",
	}
	return append(args, r.extraFlags...)
}
