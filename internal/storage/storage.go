// Package storage reads and writes the line-based task file.
//
// Each task is one line of pipe-delimited fields:
//
//	T|<0|1>|<description>
//	D|<0|1>|<description>|<yyyy-mm-dd>
//	E|<0|1>|<description>|<yyyy-mm-dd>|<yyyy-mm-dd>
//
// Whitespace around the delimiter is tolerated on read and never written.
// Blank lines are skipped. The first malformed line aborts the whole load.
package storage

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nibzard/kiki-go/internal/dates"
	"github.com/nibzard/kiki-go/internal/kikierr"
	"github.com/nibzard/kiki-go/internal/task"
)

// Store persists tasks to a single file.
type Store struct {
	path string
}

// New returns a Store backed by path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads every task from the file.
//
// A missing file yields an empty slice and creates the parent directory.
// On corruption or a read failure Load returns an empty, non-nil slice
// together with the error, which callers report as a diagnostic.
func (s *Store) Load() ([]*task.Task, error) {
	empty := []*task.Task{}

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := ensureDir(s.path); err != nil {
				return empty, err
			}
			return empty, nil
		}
		return empty, kikierr.Wrap(kikierr.KindStorageIO, kikierr.CodeReadFailed, err,
			"read save file %s", s.path)
	}
	defer f.Close()

	tasks, err := Decode(f)
	if err != nil {
		return empty, err
	}
	return tasks, nil
}

// Save overwrites the file with tasks, one serialized line each.
// The content is written to a sibling temp file and renamed into place.
func (s *Store) Save(tasks []*task.Task) error {
	if err := ensureDir(s.path); err != nil {
		return err
	}

	tmpPath := s.path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return writeErr(err, s.path)
	}

	w := bufio.NewWriter(f)
	if err := Encode(w, tasks); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return writeErr(err, s.path)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return writeErr(err, s.path)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return writeErr(err, s.path)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return writeErr(err, s.path)
	}
	return nil
}

func writeErr(err error, path string) error {
	return kikierr.Wrap(kikierr.KindStorageIO, kikierr.CodeWriteFailed, err, "write save file %s", path)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return kikierr.Wrap(kikierr.KindStorageIO, kikierr.CodeWriteFailed, err,
			"create data directory %s", dir)
	}
	return nil
}

// Encode writes one serialized line per task.
func Encode(w io.Writer, tasks []*task.Task) error {
	for _, t := range tasks {
		if _, err := io.WriteString(w, t.Serialize()+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Decode parses every non-blank line of r. It stops at the first
// malformed line and returns a corruption error naming it.
func Decode(r io.Reader) ([]*task.Task, error) {
	tasks := []*task.Task{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		t, err := DecodeLine(line, lineNumber)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, kikierr.Wrap(kikierr.KindStorageIO, kikierr.CodeReadFailed, err,
			"read save file after line %d", lineNumber)
	}
	return tasks, nil
}

// DecodeLine parses a single trimmed, non-blank line. lineNumber is
// 1-based and only used in error messages.
func DecodeLine(line string, lineNumber int) (*task.Task, error) {
	fields := splitFields(line)
	if len(fields) < 3 {
		return nil, corrupt(kikierr.CodeCorruptLine, nil, "Corrupted save file at line %d: %s", lineNumber, line)
	}

	kind, ok := task.KindFromTag(fields[0])
	if !ok {
		return nil, corrupt(kikierr.CodeUnknownTag, nil, "Unknown task type at line %d: %s", lineNumber, fields[0])
	}

	var done bool
	switch fields[1] {
	case "1":
		done = true
	case "0":
	default:
		return nil, corrupt(kikierr.CodeCorruptLine, nil, "Invalid done flag at line %d: %s", lineNumber, line)
	}

	var (
		t   *task.Task
		err error
	)
	switch kind {
	case task.KindTodo:
		t, err = task.NewTodo(fields[2])
	case task.KindDeadline:
		if len(fields) < 4 {
			return nil, corrupt(kikierr.CodeCorruptLine, nil, "Corrupted save file at line %d: %s", lineNumber, line)
		}
		var by dates.Date
		if by, err = dates.Parse(fields[3]); err == nil {
			t, err = task.NewDeadline(fields[2], by)
		}
	case task.KindEvent:
		if len(fields) < 5 {
			return nil, corrupt(kikierr.CodeCorruptLine, nil, "Malformed event record at line %d: %s", lineNumber, line)
		}
		var from, to dates.Date
		if from, err = dates.Parse(fields[3]); err == nil {
			if to, err = dates.Parse(fields[4]); err == nil {
				t, err = task.NewEvent(fields[2], from, to)
			}
		}
	}
	if err != nil {
		return nil, corrupt(kikierr.CodeCorruptLine, err, "Invalid task at line %d: %s", lineNumber, line)
	}

	if done {
		t.MarkDone()
	}
	return t, nil
}

func splitFields(line string) []string {
	parts := strings.Split(line, task.Delimiter)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func corrupt(code kikierr.Code, cause error, format string, args ...any) error {
	return kikierr.Wrap(kikierr.KindStorageCorruption, code, cause, format, args...)
}

