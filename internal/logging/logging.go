// Package logging writes the per-session JSONL journal and tails it back.
package logging

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Journal records every command of one session as a JSON line.
type Journal struct {
	Dir     string
	RunID   string
	LogPath string
	file    *os.File
	logger  *log.Logger
}

// NewJournal creates <baseDir>/<slug>-<hash>/<runID>.jsonl for the session
// that works on dataFile. Sessions over the same data file share a directory.
func NewJournal(baseDir, dataFile string) (*Journal, error) {
	logDir, err := FindLogDir(baseDir, dataFile)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	id := runID()
	logPath := filepath.Join(logDir, id+".jsonl")
	file, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	logger := log.NewWithOptions(file, log.Options{
		Formatter:       log.JSONFormatter,
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})

	return &Journal{
		Dir:     logDir,
		RunID:   id,
		LogPath: logPath,
		file:    file,
		logger:  logger,
	}, nil
}

// Entry is one journal line.
type Entry struct {
	// Input is the raw line the user typed.
	Input string
	// Command is the parsed keyword, empty when parsing failed.
	Command string
	OK      bool
	// Kind is the error kind when OK is false.
	Kind string
	// Size is the list length after the command ran.
	Size int
}

// Record appends e to the journal. A nil Journal discards it.
func (j *Journal) Record(e Entry) {
	if j == nil || j.logger == nil {
		return
	}
	fields := []any{"input", e.Input, "ok", e.OK, "size", e.Size}
	if e.Command != "" {
		fields = append(fields, "cmd", e.Command)
	}
	if !e.OK {
		fields = append(fields, "kind", e.Kind)
		j.logger.Warn("command", fields...)
		return
	}
	j.logger.Info("command", fields...)
}

// Event appends a free-form session event such as start or end.
func (j *Journal) Event(msg string, keyvals ...any) {
	if j == nil || j.logger == nil {
		return
	}
	j.logger.Info(msg, keyvals...)
}

// Close closes the journal file.
func (j *Journal) Close() error {
	if j == nil || j.file == nil {
		return nil
	}
	return j.file.Close()
}

// FindLogDir returns the journal directory for sessions over dataFile.
// A relative baseDir is resolved against the data file's directory.
func FindLogDir(baseDir, dataFile string) (string, error) {
	if baseDir == "" {
		return "", fmt.Errorf("log base dir is empty")
	}

	dataDir := "."
	if dataFile != "" {
		dataDir = filepath.Dir(dataFile)
	}
	if abs, err := filepath.Abs(dataDir); err == nil {
		dataDir = abs
	}

	return filepath.Join(resolveBaseDir(baseDir, dataDir), projectSlug(dataDir)), nil
}

func resolveBaseDir(baseDir, workDir string) string {
	if filepath.IsAbs(baseDir) {
		return filepath.Clean(baseDir)
	}
	return filepath.Clean(filepath.Join(workDir, baseDir))
}

func projectSlug(dir string) string {
	return fmt.Sprintf("%s-%s", slugify(filepath.Base(dir)), hashPath(dir))
}

func slugify(input string) string {
	if strings.TrimSpace(input) == "" {
		return "kiki"
	}

	var b strings.Builder
	lastUnderscore := false
	for i := 0; i < len(input); i++ {
		c := input[i]
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '.' || c == '_' || c == '-'
		if !valid {
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
			continue
		}
		b.WriteByte(c)
		lastUnderscore = false
	}

	slug := strings.Trim(b.String(), "_.")
	if slug == "" {
		return "kiki"
	}
	return slug
}

func hashPath(input string) string {
	sum := sha1.Sum([]byte(input))
	return hex.EncodeToString(sum[:])[:8]
}

func runID() string {
	return fmt.Sprintf("%s-%d", time.Now().UTC().Format("20060102-150405"), os.Getpid())
}

// JournalFile describes one journal on disk.
type JournalFile struct {
	Path    string
	RunID   string
	ModTime time.Time
	Size    int64
}

// ListJournals returns the journals in logDir, newest first.
// A missing directory yields an empty list.
func ListJournals(logDir string) ([]JournalFile, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read log dir: %w", err)
	}

	var journals []JournalFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		journals = append(journals, JournalFile{
			Path:    filepath.Join(logDir, entry.Name()),
			RunID:   strings.TrimSuffix(entry.Name(), ".jsonl"),
			ModTime: info.ModTime(),
			Size:    info.Size(),
		})
	}

	sort.Slice(journals, func(i, j int) bool {
		if journals[i].ModTime.Equal(journals[j].ModTime) {
			return journals[i].RunID > journals[j].RunID
		}
		return journals[i].ModTime.After(journals[j].ModTime)
	})
	return journals, nil
}

// FindLatestLog returns the newest journal path in logDir, or "" if none.
func FindLatestLog(logDir string) (string, error) {
	journals, err := ListJournals(logDir)
	if err != nil || len(journals) == 0 {
		return "", err
	}
	return journals[0].Path, nil
}

// TailLog copies the last n lines of path to w (all lines when n <= 0).
// With follow set it keeps polling for appended data until ctx is done.
func TailLog(ctx context.Context, w io.Writer, path string, n int, follow bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if n > 0 {
		if err := tailSeek(file, n); err != nil {
			return fmt.Errorf("seek to tail position: %w", err)
		}
	}

	if _, err := io.Copy(w, file); err != nil {
		return err
	}
	if !follow {
		return nil
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := io.Copy(w, file); err != nil {
				return err
			}
		}
	}
}

// tailSeek positions file at the start of the n-th line from the end.
func tailSeek(file *os.File, n int) error {
	stat, err := file.Stat()
	if err != nil {
		return err
	}
	size := stat.Size()
	if size == 0 {
		return nil
	}

	const chunk = 4096
	buf := make([]byte, chunk)
	newlines := 0
	offset := size

	// A trailing newline terminates the last line rather than starting a new one.
	last := make([]byte, 1)
	if _, err := file.ReadAt(last, size-1); err != nil {
		return err
	}
	if last[0] == '\n' {
		newlines = -1
	}

	for offset > 0 {
		readSize := int64(chunk)
		if offset < readSize {
			readSize = offset
		}
		offset -= readSize
		if _, err := file.ReadAt(buf[:readSize], offset); err != nil {
			return err
		}
		for i := readSize - 1; i >= 0; i-- {
			if buf[i] != '\n' {
				continue
			}
			newlines++
			if newlines == n {
				_, err := file.Seek(offset+i+1, io.SeekStart)
				return err
			}
		}
	}

	_, err = file.Seek(0, io.SeekStart)
	return err
}
