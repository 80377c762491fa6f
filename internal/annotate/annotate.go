// Package annotate joins BLAST hits with descriptions from a reference
// lookup table, eg the stitle (subject title) of every hit in nr or swissprot.
package annotate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/shenwei356/xopen"
	"go.uber.org/zap"
)

// Options for the join.
type Options struct {
	// HitKey is the 0-based column in the hits table with the join key (the subject id)
	HitKey int

	// LookupKey is the 0-based column in the lookup table with the join key
	LookupKey int

	// Compact drops the blank line written after each row
	Compact bool
}

// DefaultOptions joins column 2 of the BLAST table against column 1 of the lookup.
func DefaultOptions() Options {
	return Options{HitKey: 1, LookupKey: 0}
}

// RowError is returned for a hits row without a key column.
type RowError struct {
	Line    int
	Columns int
	Key     int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d has %d columns, need a key in column %d", e.Line, e.Columns, e.Key+1)
}

// Table is the in-memory index of the hits file.
type Table struct {
	opts Options

	// rows in input order
	rows [][]string

	// key to the indexes of every row with that key
	index map[string][]int

	// keys that were already matched by a lookup line
	matched map[string]bool
}

// ReadHits reads a tab-separated hits table into memory.
func ReadHits(r io.Reader, opts Options) (*Table, error) {
	t := &Table{
		opts:    opts,
		index:   make(map[string][]int),
		matched: make(map[string]bool),
	}

	lineNum := 0
	err := eachLine(r, func(line string) error {
		lineNum++
		fields := strings.Split(line, "\t")
		if len(fields) <= opts.HitKey {
			return &RowError{Line: lineNum, Columns: len(fields), Key: opts.HitKey}
		}

		key := fields[opts.HitKey]
		t.index[key] = append(t.index[key], len(t.rows))
		t.rows = append(t.rows, fields)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

// Len is the number of hits rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns the (possibly annotated) rows in input order.
func (t *Table) Rows() [][]string {
	return t.rows
}

// Annotate streams the lookup table one line at a time. The fields of every
// line with a key in the index, minus the key column, are appended to the
// hits rows with that key. Only the first lookup line for a key is used.
// Returns the number of annotated rows.
func (t *Table) Annotate(lookup io.Reader) (int, error) {
	annotated := 0
	err := eachLine(lookup, func(line string) error {
		if line == "" {
			return nil
		}

		fields := strings.Split(line, "\t")
		if len(fields) <= t.opts.LookupKey {
			return nil
		}

		key := fields[t.opts.LookupKey]
		rowIndexes, ok := t.index[key]
		if !ok || t.matched[key] {
			return nil
		}
		t.matched[key] = true

		extra := make([]string, 0, len(fields)-1)
		extra = append(extra, fields[:t.opts.LookupKey]...)
		extra = append(extra, fields[t.opts.LookupKey+1:]...)
		for _, i := range rowIndexes {
			t.rows[i] = append(t.rows[i], extra...)
			annotated++
		}
		return nil
	})

	return annotated, err
}

// Write the rows, tab-joined, in their input order.
func (t *Table) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, row := range t.rows {
		bw.WriteString(strings.Join(row, "\t"))
		bw.WriteByte('\n')
		if !t.opts.Compact {
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

// Files joins the hits file against the lookup file and writes the result to w.
// Either file may be gzipped.
func Files(hitsPath, lookupPath string, w io.Writer, opts Options, logger *zap.Logger) error {
	hits, err := xopen.Ropen(hitsPath)
	if errors.Is(err, xopen.ErrNoContent) {
		logger.Warn("empty hits file", zap.String("path", hitsPath))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open hits file %s: %w", hitsPath, err)
	}
	defer hits.Close()

	t, err := ReadHits(hits, opts)
	if err != nil {
		return fmt.Errorf("failed to read hits file %s: %w", hitsPath, err)
	}
	logger.Debug("indexed hits", zap.String("path", hitsPath), zap.Int("rows", t.Len()))

	lookup, err := xopen.Ropen(lookupPath)
	if err != nil {
		if !errors.Is(err, xopen.ErrNoContent) {
			return fmt.Errorf("failed to open lookup file %s: %w", lookupPath, err)
		}
		logger.Warn("empty lookup file", zap.String("path", lookupPath))
		return t.Write(w)
	}
	defer lookup.Close()

	annotated, err := t.Annotate(lookup)
	if err != nil {
		return fmt.Errorf("failed to read lookup file %s: %w", lookupPath, err)
	}
	logger.Info("annotated hits",
		zap.Int("rows", t.Len()),
		zap.Int("annotated", annotated),
		zap.Int("unmatched", t.Len()-annotated))

	return t.Write(w)
}

// eachLine calls fn on every line of r, without its trailing whitespace.
// Lines aren't length capped, descriptions in nr can be very long.
func eachLine(r io.Reader, fn func(line string) error) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if fnErr := fn(strings.TrimRightFunc(line, unicode.IsSpace)); fnErr != nil {
				return fnErr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
