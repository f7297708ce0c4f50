package internal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidColumn   = errors.New("invalid column")
)

// Column identifies one of the three fixed board columns.
type Column int

const (
	Backlog Column = iota
	InProgress
	Done
)

const columnCount = 3

// Available columns in navigation order
var AllColumns = []Column{Backlog, InProgress, Done}

// String returns the status name used in the board file.
func (c Column) String() string {
	switch c {
	case Backlog:
		return "Backlog"
	case InProgress:
		return "InProgress"
	case Done:
		return "Done"
	default:
		return fmt.Sprintf("Column(%d)", int(c))
	}
}

// Title returns the heading shown above the column.
func (c Column) Title() string {
	if c == InProgress {
		return "In Progress"
	}
	return c.String()
}

func (c Column) Valid() bool {
	return c >= Backlog && c <= Done
}

// Next returns the column after c. ok is false when c is the last column.
func (c Column) Next() (Column, bool) {
	if !c.Valid() || c == Done {
		return c, false
	}
	return c + 1, true
}

// Prev returns the column before c. ok is false when c is the first column.
func (c Column) Prev() (Column, bool) {
	if !c.Valid() || c == Backlog {
		return c, false
	}
	return c - 1, true
}

// ParseColumn accepts status names as well as the spellings used on the command line.
func ParseColumn(s string) (Column, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "", "_", "", " ", "").Replace(normalized)
	switch normalized {
	case "backlog", "todo":
		return Backlog, nil
	case "inprogress", "doing", "progress":
		return InProgress, nil
	case "done":
		return Done, nil
	}
	return Backlog, fmt.Errorf("%w: %q", ErrInvalidColumn, s)
}

type Task struct {
	ID     string
	Text   string
	Column Column
}

func NewTask(text string, column Column) Task {
	return Task{
		ID:     uuid.New().String(),
		Text:   text,
		Column: column,
	}
}
