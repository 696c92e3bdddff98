package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolve recovers a usable engine result through the ordered fallback chain,
// first match wins:
//
//  1. Direct: raw is non-nil and exposes a non-empty categories mapping.
//  2. ExactFile: the file at exactPath exists and parses.
//  3. LatestFile: the lexicographically greatest report file in reportsDir
//     parses. The embedded timestamp makes lexicographic order chronological.
//  4. NotFound: ErrReportNotFound.
//
// A parse failure at tier 2 or 3 is a hard ReportParseError for that tier,
// never a silent fall-through.
func Resolve(raw *EngineResult, exactPath, reportsDir string) (*EngineResult, Source, error) {
	if raw != nil && len(raw.Categories) > 0 {
		return raw, SourceDirect, nil
	}

	if _, err := os.Stat(exactPath); err == nil {
		res, err := parseReportFile(exactPath)
		if err != nil {
			return nil, SourceExactFile, err
		}
		return res, SourceExactFile, nil
	}

	latest, ok, err := latestReport(reportsDir)
	if err != nil {
		return nil, SourceLatestFile, err
	}
	if ok {
		res, err := parseReportFile(latest)
		if err != nil {
			return nil, SourceLatestFile, err
		}
		return res, SourceLatestFile, nil
	}

	return nil, SourceNotFound, ErrReportNotFound
}

// latestReport picks the lexicographically greatest report file name in dir.
func latestReport(dir string) (string, bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("list reports in %s: %w", dir, err)
	}

	best := ""
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ReportSuffix) {
			continue
		}
		if name > best {
			best = name
		}
	}
	if best == "" {
		return "", false, nil
	}
	return filepath.Join(dir, best), true, nil
}

// parseReportFile validates a report file into the fixed engine schema. The
// file must expose both a categories and an audits mapping.
func parseReportFile(path string) (*EngineResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReportParseError{Path: path, Err: err}
	}
	var res EngineResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, &ReportParseError{Path: path, Err: err}
	}
	if res.Categories == nil || res.Audits == nil {
		return nil, &ReportParseError{Path: path, Err: errors.New("missing categories or audits mapping")}
	}
	return &res, nil
}
