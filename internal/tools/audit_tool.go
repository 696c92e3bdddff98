package tools

import (
	"context"

	"go.uber.org/zap"

	"lighthouse-mcp-server/internal/audit"
	"lighthouse-mcp-server/internal/mcp"
)

const (
	defaultMaxItems = 3
	minMaxItems     = 1
	maxMaxItems     = 5
)

// auditService runs the audit pipeline for one invocation. Satisfied by
// *Pipeline; tests inject fakes.
type auditService interface {
	Audit(ctx context.Context, req audit.Request) (*audit.Report, error)
}

// RunLighthouseTool runs a page-quality audit and summarizes the findings.
type RunLighthouseTool struct {
	pipeline auditService
	log      *zap.Logger
}

// NewRunLighthouseTool creates the run-lighthouse tool.
func NewRunLighthouseTool(pipeline auditService, logger *zap.Logger) *RunLighthouseTool {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RunLighthouseTool{pipeline: pipeline, log: logger}
}

func (t *RunLighthouseTool) Name() string { return "run-lighthouse" }

func (t *RunLighthouseTool) Description() string {
	return `Run a Lighthouse page-quality audit against a URL.

WHAT IT DOES:
- Opens the page in the shared headless browser
- Runs Lighthouse over the browser's debug port
- Summarizes per-category scores (0-100) with a quality tier
- Lists the lowest-scoring audits as improvement items

CATEGORIES: performance (default), accessibility, best-practices, seo, pwa

EXAMPLE:
run-lighthouse(url: "https://example.com", categories: ["performance", "seo"], max_items: 3)

Returns: score summary, improvement items grouped by category, and the path
of the saved JSON report.`
}

func (t *RunLighthouseTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"url": map[string]interface{}{
				"type":        "string",
				"description": "URL to audit",
			},
			"categories": map[string]interface{}{
				"type":        "array",
				"description": "Categories to audit (default: [\"performance\"])",
				"items": map[string]interface{}{
					"type": "string",
					"enum": []string{"performance", "accessibility", "best-practices", "seo", "pwa"},
				},
			},
			"max_items": map[string]interface{}{
				"type":        "integer",
				"description": "Maximum improvement items per category (1-5, default: 3)",
				"minimum":     1,
				"maximum":     5,
			},
		},
		"required": []string{"url"},
	}
}

func (t *RunLighthouseTool) Execute(ctx context.Context, args map[string]interface{}) (*mcp.ToolResult, error) {
	url := mcp.StringArg(args, "url")
	if url == "" {
		return mcp.ErrorResult("url is required"), nil
	}

	categories, unknown := parseCategories(mcp.StringSliceArg(args, "categories"))
	if unknown != "" {
		return mcp.ErrorResult("unknown category: %s", unknown), nil
	}

	maxItems := mcp.IntArg(args, "max_items", defaultMaxItems)
	if maxItems < minMaxItems {
		maxItems = minMaxItems
	}
	if maxItems > maxMaxItems {
		maxItems = maxMaxItems
	}

	report, err := t.pipeline.Audit(ctx, audit.Request{
		URL:        url,
		Categories: categories,
		MaxItems:   maxItems,
	})
	if err != nil {
		t.log.Warn("audit failed", zap.String("url", url), zap.Error(err))
		return mcp.ErrorResult("lighthouse audit failed: %v", err), nil
	}

	scoreText, improvementText := audit.Render(report)
	return &mcp.ToolResult{
		Content: []mcp.Content{
			mcp.TextContent(scoreText),
			mcp.TextContent(improvementText),
		},
	}, nil
}

// parseCategories validates the requested categories, defaulting to
// performance. Duplicates are collapsed, keeping first occurrence order.
func parseCategories(raw []string) ([]audit.Category, string) {
	if len(raw) == 0 {
		return []audit.Category{audit.CategoryPerformance}, ""
	}

	seen := make(map[audit.Category]bool, len(raw))
	out := make([]audit.Category, 0, len(raw))
	for _, s := range raw {
		cat, ok := audit.ParseCategory(s)
		if !ok {
			return nil, s
		}
		if seen[cat] {
			continue
		}
		seen[cat] = true
		out = append(out, cat)
	}
	return out, ""
}
