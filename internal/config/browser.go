package config

import "time"

// BrowserConfig holds the fixed launch configuration for the shared browser.
type BrowserConfig struct {
	Headless                bool `yaml:"headless"`
	DebugPort               int  `yaml:"debug_port"`
	IgnoreCertificateErrors bool `yaml:"ignore_certificate_errors"`
	ViewportWidth           int  `yaml:"viewport_width"`
	ViewportHeight          int  `yaml:"viewport_height"`
	LaunchTimeoutMs         int  `yaml:"launch_timeout_ms"`
	NavigationTimeoutMs     int  `yaml:"navigation_timeout_ms"`
}

// IsHeadless returns the headless setting.
func (c BrowserConfig) IsHeadless() bool {
	return c.Headless
}

// GetDebugPort returns the remote debugging port the audit engine connects to.
func (c BrowserConfig) GetDebugPort() int {
	if c.DebugPort == 0 {
		return 9222
	}
	return c.DebugPort
}

// GetViewportWidth returns viewport width.
func (c BrowserConfig) GetViewportWidth() int {
	if c.ViewportWidth == 0 {
		return 1920
	}
	return c.ViewportWidth
}

// GetViewportHeight returns viewport height.
func (c BrowserConfig) GetViewportHeight() int {
	if c.ViewportHeight == 0 {
		return 1080
	}
	return c.ViewportHeight
}

// LaunchTimeout bounds the browser launch.
func (c BrowserConfig) LaunchTimeout() time.Duration {
	if c.LaunchTimeoutMs == 0 {
		return 30 * time.Second
	}
	return time.Duration(c.LaunchTimeoutMs) * time.Millisecond
}

// NavigationTimeout bounds page loads.
func (c BrowserConfig) NavigationTimeout() time.Duration {
	if c.NavigationTimeoutMs == 0 {
		return 30 * time.Second
	}
	return time.Duration(c.NavigationTimeoutMs) * time.Millisecond
}
