// Package task defines the task variants and the ordered task list.
package task

import (
	"fmt"
	"strings"

	"github.com/nibzard/kiki-go/internal/dates"
	"github.com/nibzard/kiki-go/internal/kikierr"
)

// Delimiter separates fields in a serialized task.
const Delimiter = "|"

// Kind is the closed set of task variants.
type Kind int

const (
	KindTodo Kind = iota
	KindDeadline
	KindEvent
)

// Tag returns the single-letter tag used in rendering and storage.
func (k Kind) Tag() string {
	switch k {
	case KindTodo:
		return "T"
	case KindDeadline:
		return "D"
	case KindEvent:
		return "E"
	default:
		return "?"
	}
}

func (k Kind) String() string {
	switch k {
	case KindTodo:
		return "todo"
	case KindDeadline:
		return "deadline"
	case KindEvent:
		return "event"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// KindFromTag maps a storage tag back to its Kind.
func KindFromTag(tag string) (Kind, bool) {
	switch tag {
	case "T":
		return KindTodo, true
	case "D":
		return KindDeadline, true
	case "E":
		return KindEvent, true
	default:
		return 0, false
	}
}

// Task is one entry in the list. Deadline uses By; Event uses From and To.
// Fields that do not belong to the variant are always zero.
type Task struct {
	kind        Kind
	description string
	done        bool
	by          dates.Date
	from        dates.Date
	to          dates.Date
}

// NewTodo creates an undated task.
func NewTodo(description string) (*Task, error) {
	desc, err := checkDescription(KindTodo, description)
	if err != nil {
		return nil, err
	}
	return &Task{kind: KindTodo, description: desc}, nil
}

// NewDeadline creates a task due on a single date.
func NewDeadline(description string, by dates.Date) (*Task, error) {
	desc, err := checkDescription(KindDeadline, description)
	if err != nil {
		return nil, err
	}
	if by.IsZero() {
		return nil, kikierr.New(kikierr.KindValidation, kikierr.CodeEmptyField,
			"The date of a deadline cannot be empty.")
	}
	return &Task{kind: KindDeadline, description: desc, by: by}, nil
}

// NewEvent creates a task spanning from..to inclusive. to must not be before from.
func NewEvent(description string, from, to dates.Date) (*Task, error) {
	desc, err := checkDescription(KindEvent, description)
	if err != nil {
		return nil, err
	}
	if from.IsZero() || to.IsZero() {
		return nil, kikierr.New(kikierr.KindValidation, kikierr.CodeEmptyField,
			"The start and end dates of an event cannot be empty.")
	}
	if to.Before(from) {
		return nil, kikierr.New(kikierr.KindValidation, kikierr.CodeDateOrder,
			"The end date of an event cannot be before its start date.")
	}
	return &Task{kind: KindEvent, description: desc, from: from, to: to}, nil
}

func checkDescription(kind Kind, description string) (string, error) {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return "", kikierr.New(kikierr.KindValidation, kikierr.CodeEmptyField,
			"The description of %s %s cannot be empty.", articleFor(kind), kind)
	}
	if strings.Contains(desc, Delimiter) || strings.ContainsAny(desc, "\r\n") {
		return "", kikierr.New(kikierr.KindValidation, kikierr.CodeInvalidField,
			"The description of %s %s cannot contain '%s' or line breaks.", articleFor(kind), kind, Delimiter)
	}
	return desc, nil
}

func articleFor(kind Kind) string {
	if kind == KindEvent {
		return "an"
	}
	return "a"
}

// Kind returns the variant.
func (t *Task) Kind() Kind { return t.kind }

// Description returns the trimmed description.
func (t *Task) Description() string { return t.description }

// IsDone reports whether the task is marked done.
func (t *Task) IsDone() bool { return t.done }

// By returns the deadline date. Zero for other variants.
func (t *Task) By() dates.Date { return t.by }

// From returns the event start. Zero for other variants.
func (t *Task) From() dates.Date { return t.from }

// To returns the event end. Zero for other variants.
func (t *Task) To() dates.Date { return t.to }

// MarkDone sets the task as done. Idempotent.
func (t *Task) MarkDone() { t.done = true }

// MarkNotDone clears the done flag. Idempotent.
func (t *Task) MarkNotDone() { t.done = false }

// StatusIcon returns "[X]" when done and "[ ]" otherwise.
func (t *Task) StatusIcon() string {
	if t.done {
		return "[X]"
	}
	return "[ ]"
}

// Render returns the line shown to the user.
func (t *Task) Render() string {
	head := "[" + t.kind.Tag() + "]" + t.StatusIcon() + " " + t.description
	switch t.kind {
	case KindTodo:
		return head
	case KindDeadline:
		return fmt.Sprintf("%s (by: %s)", head, dates.Format(t.by))
	case KindEvent:
		return fmt.Sprintf("%s (from: %s to: %s)", head, dates.Format(t.from), dates.Format(t.to))
	default:
		return head
	}
}

// String implements fmt.Stringer with the user-facing rendering.
func (t *Task) String() string {
	return t.Render()
}

// Serialize returns the persisted line without a trailing newline.
func (t *Task) Serialize() string {
	flag := "0"
	if t.done {
		flag = "1"
	}
	fields := []string{t.kind.Tag(), flag, t.description}
	switch t.kind {
	case KindTodo:
	case KindDeadline:
		fields = append(fields, dates.FormatISO(t.by))
	case KindEvent:
		fields = append(fields, dates.FormatISO(t.from), dates.FormatISO(t.to))
	}
	return strings.Join(fields, Delimiter)
}

// OccursOn reports whether the task falls on day. Todos never do; a
// deadline matches its date; an event matches any day in [from, to].
func (t *Task) OccursOn(day dates.Date) bool {
	switch t.kind {
	case KindDeadline:
		return t.by.Equal(day)
	case KindEvent:
		return day.Within(t.from, t.to)
	default:
		return false
	}
}

// Matches reports whether keyword appears in the description, ignoring case.
func (t *Task) Matches(keyword string) bool {
	return strings.Contains(strings.ToLower(t.description), strings.ToLower(keyword))
}

// Equal compares every field, including the done flag.
func (t *Task) Equal(other *Task) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.kind == other.kind &&
		t.description == other.description &&
		t.done == other.done &&
		t.by.Equal(other.by) &&
		t.from.Equal(other.from) &&
		t.to.Equal(other.to)
}
