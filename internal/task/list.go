package task

import "github.com/nibzard/kiki-go/internal/kikierr"

// List is an ordered task collection addressed by 0-based index.
// It performs no I/O; callers persist after each mutation.
type List struct {
	tasks []*Task
}

// NewList creates a list holding tasks in order.
func NewList(tasks ...*Task) *List {
	l := &List{tasks: make([]*Task, 0, len(tasks))}
	for _, t := range tasks {
		if t != nil {
			l.tasks = append(l.tasks, t)
		}
	}
	return l
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// CheckIndex fails with an index error unless 0 <= i < Len.
func (l *List) CheckIndex(i int) error {
	if i < 0 || i >= len(l.tasks) {
		return kikierr.New(kikierr.KindIndexOutOfRange, kikierr.CodeOutOfRange,
			"Task number is out of range. You have %d task(s).", len(l.tasks))
	}
	return nil
}

// Get returns the task at i.
func (l *List) Get(i int) (*Task, error) {
	if err := l.CheckIndex(i); err != nil {
		return nil, err
	}
	return l.tasks[i], nil
}

// Add appends t.
func (l *List) Add(t *Task) {
	l.tasks = append(l.tasks, t)
}

// Delete removes and returns the task at i.
func (l *List) Delete(i int) (*Task, error) {
	if err := l.CheckIndex(i); err != nil {
		return nil, err
	}
	removed := l.tasks[i]
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	return removed, nil
}

// Mark sets the task at i as done and returns it.
func (l *List) Mark(i int) (*Task, error) {
	t, err := l.Get(i)
	if err != nil {
		return nil, err
	}
	t.MarkDone()
	return t, nil
}

// Unmark clears the done flag of the task at i and returns it.
func (l *List) Unmark(i int) (*Task, error) {
	t, err := l.Get(i)
	if err != nil {
		return nil, err
	}
	t.MarkNotDone()
	return t, nil
}

// All returns a copy of the task slice in list order.
func (l *List) All() []*Task {
	out := make([]*Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}
