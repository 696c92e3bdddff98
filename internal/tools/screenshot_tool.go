package tools

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"lighthouse-mcp-server/internal/mcp"
)

// screenshotService captures one page. Satisfied by *Pipeline.
type screenshotService interface {
	Capture(ctx context.Context, url string, fullPage bool) (string, []byte, error)
}

// TakeScreenshotTool captures a page as a JPEG.
type TakeScreenshotTool struct {
	pipeline screenshotService
	log      *zap.Logger
}

// NewTakeScreenshotTool creates the take-screenshot tool.
func NewTakeScreenshotTool(pipeline screenshotService, logger *zap.Logger) *TakeScreenshotTool {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TakeScreenshotTool{pipeline: pipeline, log: logger}
}

func (t *TakeScreenshotTool) Name() string { return "take-screenshot" }

func (t *TakeScreenshotTool) Description() string {
	return `Capture a screenshot of a URL.

WHAT IT DOES:
- Opens the page in the shared headless browser
- Captures the viewport (or the full page with full_page: true) as JPEG
- Saves the image next to the audit reports and returns it inline

EXAMPLE:
take-screenshot(url: "https://example.com", full_page: true)

Returns: a confirmation message with the saved path plus the image itself.`
}

func (t *TakeScreenshotTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"url": map[string]interface{}{
				"type":        "string",
				"description": "URL to capture",
			},
			"full_page": map[string]interface{}{
				"type":        "boolean",
				"description": "Capture the full scrollable page instead of the viewport (default: false)",
			},
		},
		"required": []string{"url"},
	}
}

func (t *TakeScreenshotTool) Execute(ctx context.Context, args map[string]interface{}) (*mcp.ToolResult, error) {
	url := mcp.StringArg(args, "url")
	if url == "" {
		return mcp.ErrorResult("url is required"), nil
	}
	fullPage := mcp.BoolArg(args, "full_page", false)

	path, data, err := t.pipeline.Capture(ctx, url, fullPage)
	if err != nil {
		t.log.Warn("screenshot failed", zap.String("url", url), zap.Error(err))
		return mcp.ErrorResult("screenshot failed: %v", err), nil
	}

	return &mcp.ToolResult{
		Content: []mcp.Content{
			mcp.TextContent(fmt.Sprintf("Screenshot saved to %s", path)),
			mcp.ImageContent(data, "image/jpeg"),
		},
	}, nil
}
