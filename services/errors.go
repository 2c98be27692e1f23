package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound means the referenced zone or threshold does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateName means a zone with that name already exists.
	ErrDuplicateName = errors.New("zone name already exists")
)

// ValidationError reports malformed reading input. For batch ingestion,
// Items maps each failing input index to its field errors; a batch with
// any invalid item persists nothing.
type ValidationError struct {
	Message string           `json:"message,omitempty"`
	Items   map[int][]string `json:"items,omitempty"`
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	indexes := make([]int, 0, len(e.Items))
	for i := range e.Items {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	parts := make([]string, 0, len(indexes))
	for _, i := range indexes {
		parts = append(parts, fmt.Sprintf("item %d: missing %s", i, strings.Join(e.Items[i], ", ")))
	}
	return "invalid reading input: " + strings.Join(parts, "; ")
}
