// Package models defines the records exchanged with the JotMe backend.
package models

import (
	"cmp"
	"slices"
)

// Jot is a short text note stored by the backend.
type Jot struct {
	ID        int64  `json:"id"`
	Text      string `json:"jot_text"`
	CreatedAt string `json:"created_at"`
}

// SortJotsNewestFirst returns a copy of jots ordered by CreatedAt, newest
// first. Timestamps are compared as strings, which orders the backend's
// "YYYY-MM-DD hh:mm:ss" format chronologically.
func SortJotsNewestFirst(jots []Jot) []Jot {
	out := slices.Clone(jots)
	slices.SortStableFunc(out, func(a, b Jot) int {
		return cmp.Compare(b.CreatedAt, a.CreatedAt)
	})
	return out
}
