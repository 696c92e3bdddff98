// Package config holds lighthouse-mcp configuration.
// Settings are read from an optional YAML file and can be overridden per-key
// with LIGHTHOUSE_MCP_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all lighthouse-mcp configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Browser BrowserConfig `yaml:"browser"`
	Audit   AuditConfig   `yaml:"audit"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig identifies the MCP server to clients.
type ServerConfig struct {
	Name string `yaml:"name"`
}

// OutputConfig locates the persisted artifacts.
type OutputConfig struct {
	ReportsDir     string `yaml:"reports_dir"`
	ScreenshotsDir string `yaml:"screenshots_dir"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default returns sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Name: "lighthouse-mcp",
		},
		Browser: BrowserConfig{
			Headless:                true,
			DebugPort:               9222,
			IgnoreCertificateErrors: true,
			ViewportWidth:           1920,
			ViewportHeight:          1080,
			LaunchTimeoutMs:         30000,
			NavigationTimeoutMs:     30000,
		},
		Audit: AuditConfig{
			Binary:    "lighthouse",
			TimeoutMs: 120000,
		},
		Output: OutputConfig{
			ReportsDir:     "reports",
			ScreenshotsDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from path, falling back to defaults when the file
// does not exist. Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv overrides individual settings from the environment.
func applyEnv(cfg *Config) {
	if v := os.Getenv("LIGHTHOUSE_MCP_DEBUG_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Browser.DebugPort = port
		}
	}
	if v := os.Getenv("LIGHTHOUSE_MCP_HEADLESS"); v != "" {
		if headless, err := strconv.ParseBool(v); err == nil {
			cfg.Browser.Headless = headless
		}
	}
	if v := os.Getenv("LIGHTHOUSE_MCP_LIGHTHOUSE_BIN"); v != "" {
		cfg.Audit.Binary = v
	}
	if v := os.Getenv("LIGHTHOUSE_MCP_REPORTS_DIR"); v != "" {
		cfg.Output.ReportsDir = v
	}
	if v := os.Getenv("LIGHTHOUSE_MCP_SCREENSHOTS_DIR"); v != "" {
		cfg.Output.ScreenshotsDir = v
	}
	if v := os.Getenv("LIGHTHOUSE_MCP_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// GetReportsDir returns the reports directory.
func (c OutputConfig) GetReportsDir() string {
	if c.ReportsDir == "" {
		return "reports"
	}
	return c.ReportsDir
}

// GetScreenshotsDir returns the screenshots directory.
func (c OutputConfig) GetScreenshotsDir() string {
	if c.ScreenshotsDir == "" {
		return "screenshots"
	}
	return c.ScreenshotsDir
}
