package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nibzard/kiki-go/internal/kikierr"
	"github.com/nibzard/kiki-go/internal/logging"
	"github.com/nibzard/kiki-go/internal/storage"
	"github.com/nibzard/kiki-go/internal/task"
)

// scriptUI replays fixed input lines and records output.
type scriptUI struct {
	lines  []string
	shown  []string
	errors []string
}

func (u *scriptUI) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(u.lines) == 0 {
		return "", io.EOF
	}
	line := u.lines[0]
	u.lines = u.lines[1:]
	return line, nil
}

func (u *scriptUI) Show(msg string)      { u.shown = append(u.shown, msg) }
func (u *scriptUI) ShowError(msg string) { u.errors = append(u.errors, msg) }

type failingStore struct {
	loadErr error
	saveErr error
}

func (f failingStore) Load() ([]*task.Task, error) { return []*task.Task{}, f.loadErr }
func (f failingStore) Save([]*task.Task) error     { return f.saveErr }

func TestRunScenarioPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "kiki.txt")
	ui := &scriptUI{lines: []string{
		"todo read book",
		"deadline return book /by 2025-10-15",
		"event trip /from 2025-10-10 /to 2025-10-12",
		"mark 2",
		"on 2025-10-11",
		"delete 1",
		"bye",
		"todo never reached",
	}}

	s := New(storage.New(path), nil, nil)
	if err := s.Run(context.Background(), ui); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(ui.errors) != 0 {
		t.Errorf("unexpected errors: %q", ui.errors)
	}
	if ui.shown[0] != Welcome {
		t.Errorf("first output: got %q, want welcome", ui.shown[0])
	}
	if last := ui.shown[len(ui.shown)-1]; last != Farewell {
		t.Errorf("last output: got %q, want farewell", last)
	}
	if len(ui.lines) != 1 {
		t.Errorf("input after bye should be left unread, remaining %q", ui.lines)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "D|1|return book|2025-10-15\nE|0|trip|2025-10-10|2025-10-12\n"
	if string(data) != want {
		t.Errorf("saved file:\ngot  %q\nwant %q", data, want)
	}

	reloaded := New(storage.New(path), nil, nil)
	if diag := reloaded.Load(); diag != "" {
		t.Fatalf("reload diagnostic: %s", diag)
	}
	if reloaded.Tasks().Len() != 2 {
		t.Errorf("reloaded Len: got %d, want 2", reloaded.Tasks().Len())
	}
}

func TestRunEndOfInputSaysGoodbye(t *testing.T) {
	ui := &scriptUI{lines: []string{"list"}}
	s := New(failingStore{}, nil, nil)
	if err := s.Run(context.Background(), ui); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := ui.shown[len(ui.shown)-1]; got != Farewell {
		t.Errorf("last output: got %q, want farewell", got)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ui := &scriptUI{lines: []string{"list"}}

	err := New(failingStore{}, nil, nil).Run(ctx, ui)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run: got %v, want context.Canceled", err)
	}
}

func TestRunReportsCorruptSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kiki.txt")
	if err := os.WriteFile(path, []byte("T|0|ok\nX|0|bad\n"), 0644); err != nil {
		t.Fatal(err)
	}
	ui := &scriptUI{lines: []string{"list"}}

	s := New(storage.New(path), nil, nil)
	if err := s.Run(context.Background(), ui); err != nil {
		t.Fatal(err)
	}

	if len(ui.errors) != 1 {
		t.Fatalf("errors: got %q, want one diagnostic", ui.errors)
	}
	diag := ui.errors[0]
	for _, want := range []string{
		"OOPS!!! Your save file is corrupted or unreadable.",
		"Details: Unknown task type at line 2",
		"Starting with an empty task list.",
	} {
		if !strings.Contains(diag, want) {
			t.Errorf("diagnostic %q missing %q", diag, want)
		}
	}
	if ui.shown[1] != "Here are the tasks in your list:" {
		t.Errorf("list after corruption: %q", ui.shown[1])
	}
}

func TestHandleErrorsArePrefixed(t *testing.T) {
	s := New(failingStore{}, nil, nil)
	s.Load()

	tests := []struct {
		line string
		want string
	}{
		{"blah", "OOPS!!! I'm sorry, but I don't know what that means :-("},
		{"todo", "OOPS!!! The description of a todo cannot be empty."},
		{"mark 1", "OOPS!!! Task number is out of range. You have 0 task(s)."},
	}
	for _, tt := range tests {
		reply := s.Handle(tt.line)
		if reply.Error != tt.want {
			t.Errorf("Handle(%q): got %q, want %q", tt.line, reply.Error, tt.want)
		}
		if reply.Message != "" || reply.Exit {
			t.Errorf("Handle(%q): unexpected reply %+v", tt.line, reply)
		}
	}
}

func TestHandleSaveFailureWarns(t *testing.T) {
	saveErr := kikierr.New(kikierr.KindStorageIO, kikierr.CodeWriteFailed, "disk full")
	s := New(failingStore{saveErr: saveErr}, nil, nil)
	s.Load()

	reply := s.Handle("todo a")
	if !strings.HasPrefix(reply.Message, "Got it.") {
		t.Errorf("message: %q", reply.Message)
	}
	if reply.Warning != "OOPS!!! Failed to save tasks: disk full" {
		t.Errorf("warning: %q", reply.Warning)
	}
	if s.Tasks().Len() != 1 {
		t.Errorf("in-memory change lost")
	}

	ui := &scriptUI{}
	Show(ui, reply)
	if len(ui.shown) != 1 || len(ui.errors) != 1 {
		t.Errorf("Show: shown %q, errors %q", ui.shown, ui.errors)
	}
}

func TestHandleJournals(t *testing.T) {
	dir := t.TempDir()
	journal, err := logging.NewJournal(filepath.Join(dir, "logs"), filepath.Join(dir, "kiki.txt"))
	if err != nil {
		t.Fatal(err)
	}

	s := New(failingStore{}, nil, journal)
	ui := &scriptUI{lines: []string{"todo a", "mark 7", "bye"}}
	if err := s.Run(context.Background(), ui); err != nil {
		t.Fatal(err)
	}
	if err := journal.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(journal.LogPath)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// start, three commands, end
	if len(lines) != 5 {
		t.Fatalf("journal lines: got %d, want 5:\n%s", len(lines), data)
	}
	if !strings.Contains(lines[2], "index_out_of_range") {
		t.Errorf("failed command not journaled with kind: %s", lines[2])
	}
}

func TestLoadDiagnostic(t *testing.T) {
	got := LoadDiagnostic(errors.New("boom"))
	want := "OOPS!!! Your save file is corrupted or unreadable.\nDetails: boom\nStarting with an empty task list."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHandleLogsSavedMutations(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(&buf, logging.Options{Level: "debug", Format: "logfmt"})
	if err != nil {
		t.Fatal(err)
	}
	s := New(storage.New(filepath.Join(t.TempDir(), "kiki.txt")), logger, nil)
	s.Load()

	s.Handle("list")
	if strings.Contains(buf.String(), "tasks saved") {
		t.Errorf("list should not log a save:\n%s", buf.String())
	}

	s.Handle("todo a")
	if !strings.Contains(buf.String(), "tasks saved") {
		t.Errorf("todo should log a save:\n%s", buf.String())
	}
}

func TestCloseJournalsOnce(t *testing.T) {
	dir := t.TempDir()
	journal, err := logging.NewJournal(filepath.Join(dir, "logs"), filepath.Join(dir, "kiki.txt"))
	if err != nil {
		t.Fatal(err)
	}

	s := New(failingStore{}, nil, journal)
	s.Load()
	s.Handle("todo a")
	s.Close()
	s.Close()
	if err := journal.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(journal.LogPath)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "session end"); got != 1 {
		t.Errorf("session end events: got %d, want 1:\n%s", got, data)
	}
}
