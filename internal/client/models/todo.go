package models

import (
	"cmp"
	"slices"
)

// Todo is a task the backend extracted from a jot.
type Todo struct {
	ID   int64  `json:"id"`
	Text string `json:"todo_text"`
	// DueDate is nil when the backend found no date.
	DueDate *string `json:"due_date"`
	// IsCompleted is the raw integer flag; see Completed.
	IsCompleted int `json:"is_completed"`
}

func (t Todo) Completed() bool {
	return t.IsCompleted != 0
}

// Due returns the due date or "".
func (t Todo) Due() string {
	if t.DueDate == nil {
		return ""
	}
	return *t.DueDate
}

// SortTodosByDueDate returns a copy of todos ordered by due date ascending.
// Todos without a due date come first.
func SortTodosByDueDate(todos []Todo) []Todo {
	out := slices.Clone(todos)
	slices.SortStableFunc(out, func(a, b Todo) int {
		return cmp.Compare(a.Due(), b.Due())
	})
	return out
}
