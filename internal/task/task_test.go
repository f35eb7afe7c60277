package task

import (
	"testing"

	"github.com/nibzard/kiki-go/internal/dates"
	"github.com/nibzard/kiki-go/internal/kikierr"
)

func mustTodo(t *testing.T, desc string) *Task {
	t.Helper()
	task, err := NewTodo(desc)
	if err != nil {
		t.Fatalf("NewTodo(%q): %v", desc, err)
	}
	return task
}

func mustDeadline(t *testing.T, desc, by string) *Task {
	t.Helper()
	task, err := NewDeadline(desc, dates.MustParse(by))
	if err != nil {
		t.Fatalf("NewDeadline(%q): %v", desc, err)
	}
	return task
}

func mustEvent(t *testing.T, desc, from, to string) *Task {
	t.Helper()
	task, err := NewEvent(desc, dates.MustParse(from), dates.MustParse(to))
	if err != nil {
		t.Fatalf("NewEvent(%q): %v", desc, err)
	}
	return task
}

func TestRender(t *testing.T) {
	done := mustDeadline(t, "return book", "2025-10-15")
	done.MarkDone()

	tests := []struct {
		name string
		task *Task
		want string
	}{
		{"todo", mustTodo(t, "read book"), "[T][ ] read book"},
		{"deadline done", done, "[D][X] return book (by: Oct 15 2025)"},
		{"event", mustEvent(t, "trip", "2025-10-10", "2025-10-12"), "[E][ ] trip (from: Oct 10 2025 to: Oct 12 2025)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.Render(); got != tt.want {
				t.Errorf("Render: got %q, want %q", got, tt.want)
			}
			if got := tt.task.String(); got != tt.want {
				t.Errorf("String: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerialize(t *testing.T) {
	todo := mustTodo(t, "read book")
	todo.MarkDone()

	tests := []struct {
		name string
		task *Task
		want string
	}{
		{"todo done", todo, "T|1|read book"},
		{"deadline", mustDeadline(t, "return book", "2025-10-15"), "D|0|return book|2025-10-15"},
		{"event", mustEvent(t, "trip", "2025-10-10", "2025-10-12"), "E|0|trip|2025-10-10|2025-10-12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.Serialize(); got != tt.want {
				t.Errorf("Serialize: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConstructorValidation(t *testing.T) {
	from := dates.MustParse("2025-10-12")
	to := dates.MustParse("2025-10-10")

	tests := []struct {
		name     string
		build    func() (*Task, error)
		wantCode kikierr.Code
	}{
		{"empty todo", func() (*Task, error) { return NewTodo("   ") }, kikierr.CodeEmptyField},
		{"todo with delimiter", func() (*Task, error) { return NewTodo("a|b") }, kikierr.CodeInvalidField},
		{"todo with newline", func() (*Task, error) { return NewTodo("a\nb") }, kikierr.CodeInvalidField},
		{"deadline zero date", func() (*Task, error) { return NewDeadline("x", dates.Date{}) }, kikierr.CodeEmptyField},
		{"empty event", func() (*Task, error) { return NewEvent("", to, from) }, kikierr.CodeEmptyField},
		{"event end before start", func() (*Task, error) { return NewEvent("trip", from, to) }, kikierr.CodeDateOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := tt.build()
			if err == nil {
				t.Fatalf("expected error, got task %v", task)
			}
			if task != nil {
				t.Errorf("expected nil task on error, got %v", task)
			}
			if kikierr.KindOf(err) != kikierr.KindValidation {
				t.Errorf("kind: got %v, want validation", kikierr.KindOf(err))
			}
			if kikierr.CodeOf(err) != tt.wantCode {
				t.Errorf("code: got %q, want %q", kikierr.CodeOf(err), tt.wantCode)
			}
		})
	}
}

func TestEmptyDescriptionMessages(t *testing.T) {
	_, err := NewEvent(" ", dates.MustParse("2025-01-01"), dates.MustParse("2025-01-01"))
	if err == nil || err.Error() != "The description of an event cannot be empty." {
		t.Errorf("event message: got %v", err)
	}
	_, err = NewTodo("")
	if err == nil || err.Error() != "The description of a todo cannot be empty." {
		t.Errorf("todo message: got %v", err)
	}
}

func TestDescriptionIsTrimmed(t *testing.T) {
	task := mustTodo(t, "  read book  ")
	if task.Description() != "read book" {
		t.Errorf("Description: got %q", task.Description())
	}
}

func TestSameDayEvent(t *testing.T) {
	task := mustEvent(t, "talk", "2025-10-10", "2025-10-10")
	if !task.OccursOn(dates.MustParse("2025-10-10")) {
		t.Error("single-day event should occur on its day")
	}
}

func TestMarkIsIdempotent(t *testing.T) {
	task := mustTodo(t, "x")
	task.MarkDone()
	task.MarkDone()
	if !task.IsDone() || task.StatusIcon() != "[X]" {
		t.Error("expected done")
	}
	task.MarkNotDone()
	task.MarkNotDone()
	if task.IsDone() || task.StatusIcon() != "[ ]" {
		t.Error("expected not done")
	}
}

func TestOccursOn(t *testing.T) {
	todo := mustTodo(t, "read book")
	deadline := mustDeadline(t, "return book", "2025-10-15")
	event := mustEvent(t, "trip", "2025-10-10", "2025-10-12")

	tests := []struct {
		name string
		task *Task
		day  string
		want bool
	}{
		{"todo never", todo, "2025-10-15", false},
		{"deadline same day", deadline, "2025-10-15", true},
		{"deadline other day", deadline, "2025-10-14", false},
		{"event day before", event, "2025-10-09", false},
		{"event first day", event, "2025-10-10", true},
		{"event middle", event, "2025-10-11", true},
		{"event last day", event, "2025-10-12", true},
		{"event day after", event, "2025-10-13", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.OccursOn(dates.MustParse(tt.day)); got != tt.want {
				t.Errorf("OccursOn(%s): got %v, want %v", tt.day, got, tt.want)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	task := mustTodo(t, "Read Book")
	for _, kw := range []string{"book", "BOOK", "read b", "Read Book"} {
		if !task.Matches(kw) {
			t.Errorf("Matches(%q): expected true", kw)
		}
	}
	if task.Matches("magazine") {
		t.Error("Matches(magazine): expected false")
	}
}

func TestKindFromTag(t *testing.T) {
	for _, k := range []Kind{KindTodo, KindDeadline, KindEvent} {
		got, ok := KindFromTag(k.Tag())
		if !ok || got != k {
			t.Errorf("KindFromTag(%q): got %v, %v", k.Tag(), got, ok)
		}
	}
	if _, ok := KindFromTag("X"); ok {
		t.Error("KindFromTag(X): expected false")
	}
}

func TestEqual(t *testing.T) {
	a := mustDeadline(t, "x", "2025-01-01")
	b := mustDeadline(t, "x", "2025-01-01")
	if !a.Equal(b) {
		t.Error("expected equal")
	}
	b.MarkDone()
	if a.Equal(b) {
		t.Error("done flag should break equality")
	}
	var nilTask *Task
	if a.Equal(nil) || !nilTask.Equal(nil) {
		t.Error("nil handling mismatch")
	}
}
