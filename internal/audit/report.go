package audit

import (
	"strings"
	"time"
)

const (
	reportPrefix = "lighthouse-"

	// ReportSuffix is the extension shared by all persisted report files.
	ReportSuffix = ".json"
)

// ReportFileName derives the report file name from the target hostname and
// the request timestamp. Dots in the hostname and colons in the timestamp
// become dashes and fractional seconds are stripped, so the name is
// filesystem-safe and lexicographic order equals chronological order.
func ReportFileName(hostname string, ts time.Time) string {
	host := strings.ReplaceAll(hostname, ".", "-")
	stamp := ts.UTC().Format("2006-01-02T15-04-05")
	return reportPrefix + host + "-" + stamp + ReportSuffix
}
