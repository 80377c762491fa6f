// Package metrics extracts summary metrics from the reports of assembly
// quality assessment tools: CEGMA, BUSCO, DETONATE, Transrate and FastQC.
//
// Every extractor takes a directory and a glob pattern for the report within
// it. If no file matches, the extractor returns a single "no information"
// entry keyed by the tool's name rather than an error. If more than one file
// matches, only the lexicographically first is read. A report that doesn't
// look the way the tool is expected to write it is a *FormatError.
package metrics

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrFormatMismatch is wrapped by every FormatError.
var ErrFormatMismatch = errors.New("report format mismatch")

// FormatError is returned for a report that couldn't be parsed.
type FormatError struct {
	Tool   string
	Path   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s report %s: %s: %s", e.Tool, e.Path, ErrFormatMismatch, e.Reason)
}

func (e *FormatError) Unwrap() error { return ErrFormatMismatch }

// Metrics maps a metric's name to its value, as written in the report.
type Metrics map[string]string

// Keys returns the metric names, sorted.
func (m Metrics) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Extractor parses one tool's report from a directory.
type Extractor func(dir, pattern string) (Metrics, error)

// Extractors by tool name.
var Extractors = map[string]Extractor{
	"cegma":               CEGMA,
	"busco":               BUSCO,
	"detonate":            DETONATE,
	"transrate":           Transrate,
	"transrate-readcount": TransrateReadCount,
	"fastqc": func(dir, pattern string) (Metrics, error) {
		report, err := FastQC(dir, pattern)
		if err != nil {
			return nil, err
		}
		return report.Metrics(), nil
	},
}

// Tools returns the names of the known extractors, sorted.
func Tools() []string {
	tools := make([]string, 0, len(Extractors))
	for t := range Extractors {
		tools = append(tools, t)
	}
	sort.Strings(tools)
	return tools
}

// Extract runs the named tool's extractor.
func Extract(tool, dir, pattern string) (Metrics, error) {
	extract, ok := Extractors[tool]
	if !ok {
		return nil, fmt.Errorf("no metrics extractor for %q, expected one of %v", tool, Tools())
	}
	return extract(dir, pattern)
}

// firstMatch is the first regular file matching the pattern within dir.
// It's empty if there are no matches.
func firstMatch(dir, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", fmt.Errorf("bad report pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)

	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.Mode().IsRegular() {
			return m, nil
		}
	}
	return "", nil
}

// readFirst reads the first report matching the pattern. found is false
// if there wasn't one.
func readFirst(dir, pattern string) (path, content string, found bool, err error) {
	path, err = firstMatch(dir, pattern)
	if err != nil || path == "" {
		return "", "", false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return path, "", true, fmt.Errorf("failed to read report %s: %w", path, err)
	}
	return path, string(data), true, nil
}
