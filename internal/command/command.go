// Package command parses input lines and executes them against the task list.
//
// Parsing is purely syntactic. Each Command then validates what depends on
// the current list (index range, date conversion) inside Execute, mutates
// State.Tasks, and persists through State.Store. A failed persist is reported
// as Result.Warning; the in-memory change is kept.
package command

import (
	"fmt"
	"strings"

	"github.com/nibzard/kiki-go/internal/dates"
	"github.com/nibzard/kiki-go/internal/kikierr"
	"github.com/nibzard/kiki-go/internal/task"
)

// Saver persists a full snapshot of the task list.
type Saver interface {
	Save(tasks []*task.Task) error
}

// State is everything a command may read or change.
type State struct {
	Tasks *task.List
	Store Saver
}

// NewState returns a State over tasks persisted by store.
func NewState(tasks *task.List, store Saver) *State {
	if tasks == nil {
		tasks = task.NewList()
	}
	return &State{Tasks: tasks, Store: store}
}

// Result is the outcome of a successful Execute.
type Result struct {
	// Message is the text to show the user.
	Message string
	// Warning is set when the change was applied but could not be saved.
	Warning string
	// SaveErr is the underlying persistence error behind Warning.
	SaveErr error
	// Exit asks the caller to end the session.
	Exit bool
}

// Command is one parsed user instruction.
type Command interface {
	// Name is the command keyword.
	Name() string
	// Execute applies the command to st.
	Execute(st *State) (Result, error)
}

const taskIndent = "  "

// Exit ends the session.
type Exit struct{}

func (Exit) Name() string { return "bye" }

func (Exit) Execute(*State) (Result, error) {
	return Result{Exit: true}, nil
}

// List shows every task with its 1-based position.
type List struct{}

func (List) Name() string { return "list" }

func (List) Execute(st *State) (Result, error) {
	var b strings.Builder
	b.WriteString("Here are the tasks in your list:")
	for i, t := range st.Tasks.All() {
		fmt.Fprintf(&b, "\n%d. %s", i+1, t.Render())
	}
	return Result{Message: b.String()}, nil
}

// Mark sets a task as done.
type Mark struct {
	Index int
}

func (Mark) Name() string { return "mark" }

func (c Mark) Execute(st *State) (Result, error) {
	t, err := st.Tasks.Mark(c.Index)
	if err != nil {
		return Result{}, err
	}
	res := Result{Message: "Nice! I've marked this task as done:\n" + taskIndent + t.Render()}
	return persist(st, res), nil
}

// Unmark clears a task's done flag.
type Unmark struct {
	Index int
}

func (Unmark) Name() string { return "unmark" }

func (c Unmark) Execute(st *State) (Result, error) {
	t, err := st.Tasks.Unmark(c.Index)
	if err != nil {
		return Result{}, err
	}
	res := Result{Message: "OK, I've marked this task as not done yet:\n" + taskIndent + t.Render()}
	return persist(st, res), nil
}

// Delete removes a task.
type Delete struct {
	Index int
}

func (Delete) Name() string { return "delete" }

func (c Delete) Execute(st *State) (Result, error) {
	t, err := st.Tasks.Delete(c.Index)
	if err != nil {
		return Result{}, err
	}
	res := Result{Message: fmt.Sprintf("Noted. I've removed this task:\n%s%s\nNow you have %d tasks in the list.",
		taskIndent, t.Render(), st.Tasks.Len())}
	return persist(st, res), nil
}

// AddTodo appends an undated task.
type AddTodo struct {
	Description string
}

func (AddTodo) Name() string { return "todo" }

func (c AddTodo) Execute(st *State) (Result, error) {
	t, err := task.NewTodo(c.Description)
	if err != nil {
		return Result{}, err
	}
	return add(st, t), nil
}

// AddDeadline appends a task due on By (yyyy-mm-dd).
type AddDeadline struct {
	Description string
	By          string
}

func (AddDeadline) Name() string { return "deadline" }

func (c AddDeadline) Execute(st *State) (Result, error) {
	by, err := dates.Parse(c.By)
	if err != nil {
		return Result{}, kikierr.New(kikierr.KindValidation, kikierr.CodeInvalidDate,
			"Please use date format yyyy-mm-dd (e.g., 2019-10-15).")
	}
	t, err := task.NewDeadline(c.Description, by)
	if err != nil {
		return Result{}, err
	}
	return add(st, t), nil
}

// AddEvent appends a task spanning From..To (yyyy-mm-dd, inclusive).
type AddEvent struct {
	Description string
	From        string
	To          string
}

func (AddEvent) Name() string { return "event" }

func (c AddEvent) Execute(st *State) (Result, error) {
	from, errFrom := dates.Parse(c.From)
	to, errTo := dates.Parse(c.To)
	if errFrom != nil || errTo != nil {
		return Result{}, kikierr.New(kikierr.KindValidation, kikierr.CodeInvalidDate,
			"Please use date format yyyy-mm-dd for both /from and /to.")
	}
	t, err := task.NewEvent(c.Description, from, to)
	if err != nil {
		return Result{}, err
	}
	return add(st, t), nil
}

// OnDate lists deadlines and events that fall on Date, keeping their
// original positions.
type OnDate struct {
	Date dates.Date
}

func (OnDate) Name() string { return "on" }

func (c OnDate) Execute(st *State) (Result, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Tasks on %s:", dates.Format(c.Date))
	count := 0
	for i, t := range st.Tasks.All() {
		if t.OccursOn(c.Date) {
			fmt.Fprintf(&b, "\n%d. %s", i+1, t.Render())
			count++
		}
	}
	if count == 0 {
		b.WriteString("\n(none)")
	}
	return Result{Message: b.String()}, nil
}

// Find lists tasks whose description contains Keyword, ignoring case.
// Matches are numbered in match order.
type Find struct {
	Keyword string
}

func (Find) Name() string { return "find" }

func (c Find) Execute(st *State) (Result, error) {
	var b strings.Builder
	b.WriteString("Here are the matching tasks in your list:")
	shown := 0
	for _, t := range st.Tasks.All() {
		if t.Matches(c.Keyword) {
			shown++
			fmt.Fprintf(&b, "\n%d. %s", shown, t.Render())
		}
	}
	if shown == 0 {
		b.WriteString("\n(no match)")
	}
	return Result{Message: b.String()}, nil
}

func add(st *State, t *task.Task) Result {
	st.Tasks.Add(t)
	res := Result{Message: fmt.Sprintf("Got it. I've added this task:\n%s%s\nNow you have %d tasks in the list.",
		taskIndent, t.Render(), st.Tasks.Len())}
	return persist(st, res)
}

func persist(st *State, res Result) Result {
	if st.Store == nil {
		return res
	}
	if err := st.Store.Save(st.Tasks.All()); err != nil {
		res.SaveErr = err
		res.Warning = "Failed to save tasks: " + err.Error()
	}
	return res
}

// Mutates reports whether c changes the task list when it succeeds.
func Mutates(c Command) bool {
	switch c.(type) {
	case Mark, Unmark, Delete, AddTodo, AddDeadline, AddEvent:
		return true
	default:
		return false
	}
}
