// Package replay reads a CSV file whose column headers are structural
// paths (driver.name, signal[0], /acceleration/x) and replays each data
// row as a nested document. It supports cursor iteration, loop mode
// with automatic rewind, and bulk playback with bounded cycles.
package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bisegni/replay/pkg/document"
	"github.com/bisegni/replay/pkg/keypath"
)

var (
	// ErrOpen wraps failures to open the underlying file.
	ErrOpen = errors.New("cannot open replay source")

	// ErrNoHeader is returned when the file contains no line that could
	// serve as a header (only comments and blanks before EOF).
	ErrNoHeader = errors.New("no header line found")

	// ErrStop may be returned by a Play callback to stop playback
	// early; Play then returns nil.
	ErrStop = errors.New("playback stopped")
)

// Replay owns one open CSV file and replays its rows as documents.
// The compiled header paths are built once at open time and never
// change. A Replay is not safe for concurrent use: every read mutates
// the cursor position.
type Replay struct {
	filename string
	file     *os.File
	scanner  *bufio.Scanner
	headers  []keypath.Path
	strategy Strategy
	loop     bool
	eof      bool
}

// Open opens the file and compiles its header line. The header is the
// first line that is neither a comment (leading '#', optionally
// preceded by spaces) nor blank. On any failure the file is released
// and no usable Replay is returned.
func Open(filename string) (*Replay, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpen, filename, err)
	}

	r := &Replay{
		filename: filename,
		file:     file,
		scanner:  bufio.NewScanner(file),
		strategy: StrategyGrouped,
	}

	if err := r.compileHeaders(); err != nil {
		file.Close()
		return nil, err
	}
	return r, nil
}

func (r *Replay) compileHeaders() error {
	for r.scanner.Scan() {
		line := r.scanner.Text()
		if isCommentLine(line) || isBlankLine(line) {
			continue
		}
		fields := splitFields(line)
		r.headers = make([]keypath.Path, 0, len(fields))
		for _, field := range fields {
			r.headers = append(r.headers, keypath.Parse(field))
		}
		return nil
	}
	if err := r.scanner.Err(); err != nil {
		return err
	}
	return fmt.Errorf("%w: %s", ErrNoHeader, r.filename)
}

// Close releases the underlying file.
func (r *Replay) Close() error {
	return r.file.Close()
}

// Headers returns the compiled header paths in column order. The slice
// must be treated as read-only.
func (r *Replay) Headers() []keypath.Path {
	return r.headers
}

// SetStrategy selects the document building strategy. The default is
// StrategyGrouped.
func (r *Replay) SetStrategy(s Strategy) {
	r.strategy = s
}

// SetLoop enables loop mode: reaching end of data triggers an
// automatic rewind instead of terminating.
func (r *Replay) SetLoop(enabled bool) {
	r.loop = enabled
}

// IsLoopEnabled reports the current loop mode.
func (r *Replay) IsLoopEnabled() bool {
	return r.loop
}

// Advance reads the next data row and builds its document. When the
// source is exhausted it returns the empty document if loop mode is
// off; with loop mode on it rewinds and retries the read once, so a
// file with zero data rows still yields the empty document rather than
// looping forever. The error return covers underlying read failures
// only.
func (r *Replay) Advance() (document.Document, error) {
	doc, err := r.readRow()
	if err != nil || !doc.IsEmpty() {
		return doc, err
	}
	if r.loop {
		if err := r.Reset(); err != nil {
			return nil, err
		}
		return r.readRow()
	}
	return doc, nil
}

func (r *Replay) readRow() (document.Document, error) {
	for r.scanner.Scan() {
		line := r.scanner.Text()
		if isCommentLine(line) || isBlankLine(line) {
			continue
		}
		return r.build(splitFields(line)), nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	r.eof = true
	return document.Document{}, nil
}

func (r *Replay) build(row []string) document.Document {
	if r.strategy == StrategyPointer {
		return buildPointer(r.headers, row)
	}
	return buildGrouped(r.headers, row)
}

// HasNext reports whether another data row can be read. In loop mode
// it always reports true.
func (r *Replay) HasNext() bool {
	if r.loop {
		return true
	}
	return !r.eof
}

// Reset rewinds to the start of the file and skips past the header
// line, leaving the cursor on the first data row. Headers are not
// recompiled.
func (r *Replay) Reset() error {
	if _, err := r.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	r.scanner = bufio.NewScanner(r.file)
	r.eof = false

	for r.scanner.Scan() {
		line := r.scanner.Text()
		if isCommentLine(line) || isBlankLine(line) {
			continue
		}
		// Header line found, the cursor now sits on the first data row.
		break
	}
	return r.scanner.Err()
}

// Count scans the number of data rows in the file. It reads through a
// fresh file handle, so the cursor visible to the caller is never
// disturbed. The file is the source of truth: the count is recomputed
// on every call, never cached.
func (r *Replay) Count() (int, error) {
	file, err := os.Open(r.filename)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrOpen, r.filename, err)
	}
	defer file.Close()

	count := -1 // the first data-shaped line is the header
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if isCommentLine(line) || isBlankLine(line) {
			continue
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	if count < 0 {
		count = 0
	}
	return count, nil
}

// Play drives Advance and invokes fn for every document. With loop
// mode off or maxCycles zero it runs until the empty document appears;
// note that looping with maxCycles zero never returns unless fn stops
// it by returning an error (ErrStop for a clean stop). Looping with
// maxCycles > 0 first counts the rows per cycle, rewinds, then plays
// exactly rows*maxCycles documents.
func (r *Replay) Play(fn func(document.Document) error, maxCycles int) error {
	if !r.loop || maxCycles == 0 {
		for r.HasNext() {
			doc, err := r.Advance()
			if err != nil {
				return err
			}
			if doc.IsEmpty() {
				break
			}
			if err := fn(doc); err != nil {
				if errors.Is(err, ErrStop) {
					return nil
				}
				return err
			}
		}
		return nil
	}

	rows, err := r.Count()
	if err != nil {
		return err
	}
	if rows == 0 {
		return nil
	}
	if err := r.Reset(); err != nil {
		return err
	}

	total := rows * maxCycles
	for processed := 0; processed < total; processed++ {
		doc, err := r.Advance()
		if err != nil {
			return err
		}
		if doc.IsEmpty() {
			break
		}
		if err := fn(doc); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
	return nil
}
