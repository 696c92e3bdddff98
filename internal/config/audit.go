package config

import "time"

// AuditConfig configures the external Lighthouse engine invocation.
type AuditConfig struct {
	Binary     string   `yaml:"binary"`
	TimeoutMs  int      `yaml:"timeout_ms"`
	ExtraFlags []string `yaml:"extra_flags"`
}

// Bin returns the engine binary.
func (c AuditConfig) Bin() string {
	if c.Binary == "" {
		return "lighthouse"
	}
	return c.Binary
}

// Timeout bounds a single engine run.
func (c AuditConfig) Timeout() time.Duration {
	if c.TimeoutMs == 0 {
		return 2 * time.Minute
	}
	return time.Duration(c.TimeoutMs) * time.Millisecond
}
