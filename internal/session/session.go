// Package session drives one interactive conversation with the tracker.
//
// A Session owns the task list for its lifetime. Each input line is parsed,
// executed, persisted when it changed the list, journaled, and turned into a
// Reply. Front-ends either call Run with a UI or feed lines to Handle
// themselves.
package session

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/kiki-go/internal/command"
	"github.com/nibzard/kiki-go/internal/kikierr"
	"github.com/nibzard/kiki-go/internal/logging"
	"github.com/nibzard/kiki-go/internal/task"
)

const (
	Welcome  = "Hello! I'm Kiki\nWhat can I do for you?"
	Farewell = "Bye. Hope to see you again soon!"

	errorPrefix = "OOPS!!! "
)

// Store loads and saves the task list.
type Store interface {
	Load() ([]*task.Task, error)
	Save(tasks []*task.Task) error
}

// UI supplies input lines and displays replies.
type UI interface {
	// ReadLine blocks for the next line. It returns io.EOF when input ends
	// and ctx.Err() when ctx is cancelled first.
	ReadLine(ctx context.Context) (string, error)
	Show(msg string)
	ShowError(msg string)
}

// Reply is what the user sees after one line.
type Reply struct {
	// Message is the normal output, empty when the command failed.
	Message string
	// Error is the user-facing failure text, already prefixed.
	Error string
	// Warning reports a change that was kept in memory but not saved.
	Warning string
	Exit    bool
}

// Session holds the live task list and its collaborators.
type Session struct {
	store   Store
	state   *command.State
	logger  *log.Logger
	journal *logging.Journal
	closed  bool
}

// New returns a Session over store. logger and journal may be nil.
func New(store Store, logger *log.Logger, journal *logging.Journal) *Session {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Session{
		store:   store,
		state:   command.NewState(task.NewList(), store),
		logger:  logger,
		journal: journal,
	}
}

// Tasks returns the live list.
func (s *Session) Tasks() *task.List {
	return s.state.Tasks
}

// Load replaces the list with the stored tasks. When the store cannot be
// read the list starts empty and the returned diagnostic explains why;
// otherwise the diagnostic is empty.
func (s *Session) Load() string {
	tasks, err := s.store.Load()
	s.state.Tasks = task.NewList(tasks...)
	if err == nil {
		s.logger.Debug("tasks loaded", "count", len(tasks))
		s.journal.Event("session start", "size", s.state.Tasks.Len())
		return ""
	}

	s.logger.Warn("starting with an empty task list", "kind", kikierr.KindOf(err), "err", err)
	s.journal.Event("session start", "size", 0, "load_error", err.Error())
	return LoadDiagnostic(err)
}

// LoadDiagnostic renders a load failure for the user.
func LoadDiagnostic(err error) string {
	return errorPrefix + "Your save file is corrupted or unreadable.\n" +
		"Details: " + err.Error() + "\n" +
		"Starting with an empty task list."
}

// Handle processes one input line.
func (s *Session) Handle(line string) Reply {
	cmd, err := command.Parse(line)
	if err != nil {
		return s.fail(line, "", err)
	}

	res, err := cmd.Execute(s.state)
	if err != nil {
		return s.fail(line, cmd.Name(), err)
	}

	s.journal.Record(logging.Entry{
		Input:   line,
		Command: cmd.Name(),
		OK:      true,
		Size:    s.state.Tasks.Len(),
	})

	if res.Exit {
		return Reply{Message: Farewell, Exit: true}
	}

	if command.Mutates(cmd) && res.SaveErr == nil {
		s.logger.Debug("tasks saved", "cmd", cmd.Name(), "count", s.state.Tasks.Len())
	}

	reply := Reply{Message: res.Message}
	if res.Warning != "" {
		s.logger.Warn("save failed", "cmd", cmd.Name(), "err", res.SaveErr)
		reply.Warning = errorPrefix + res.Warning
	}
	return reply
}

func (s *Session) fail(line, name string, err error) Reply {
	kind := kikierr.KindOf(err)
	s.logger.Debug("command rejected", "input", line, "kind", kind, "err", err)
	s.journal.Record(logging.Entry{
		Input:   line,
		Command: name,
		OK:      false,
		Kind:    kind.String(),
		Size:    s.state.Tasks.Len(),
	})
	return Reply{Error: errorPrefix + err.Error()}
}

// Run loads the list, greets, and processes lines from ui until the user
// exits, input ends, or ctx is cancelled. Cancellation is returned as
// ctx.Err(); exit and end of input return nil.
func (s *Session) Run(ctx context.Context, ui UI) error {
	if diag := s.Load(); diag != "" {
		ui.ShowError(diag)
	}
	ui.Show(Welcome)
	defer s.Close()

	for {
		line, err := ui.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				ui.Show(Farewell)
				return nil
			}
			return err
		}

		reply := s.Handle(line)
		Show(ui, reply)
		if reply.Exit {
			return nil
		}
	}
}

// Close journals the end of the session. Calls after the first do nothing.
// Front-ends that drive Handle themselves must call it when they stop.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.journal.Event("session end", "size", s.state.Tasks.Len())
}

// Show sends reply to ui.
func Show(ui UI, reply Reply) {
	if reply.Error != "" {
		ui.ShowError(reply.Error)
		return
	}
	ui.Show(reply.Message)
	if reply.Warning != "" {
		ui.ShowError(reply.Warning)
	}
}
