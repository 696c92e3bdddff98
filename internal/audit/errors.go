package audit

import (
	"errors"
	"fmt"
)

// ErrReportNotFound is returned when every resolution tier is exhausted.
var ErrReportNotFound = errors.New("no usable lighthouse report found")

// AuditEngineError reports a failed engine invocation.
type AuditEngineError struct {
	Err error
}

func (e *AuditEngineError) Error() string {
	return fmt.Sprintf("lighthouse engine: %v", e.Err)
}

func (e *AuditEngineError) Unwrap() error { return e.Err }

// ReportParseError reports a malformed or non-conforming report file.
type ReportParseError struct {
	Path string
	Err  error
}

func (e *ReportParseError) Error() string {
	return fmt.Sprintf("parse report %s: %v", e.Path, e.Err)
}

func (e *ReportParseError) Unwrap() error { return e.Err }
