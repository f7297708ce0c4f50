package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardAppendPreservesOrder(t *testing.T) {
	board := NewBoard()
	board.Append(Backlog, "A")
	board.Append(Backlog, "B")
	board.Append(Backlog, "A")
	board.Append(Done, "A")

	assert.Equal(t, []string{"A", "B", "A"}, board.Texts(Backlog))
	assert.Empty(t, board.Texts(InProgress))
	assert.Equal(t, []string{"A"}, board.Texts(Done))
	assert.Equal(t, 4, board.Total())

	for _, task := range board.Tasks(Backlog) {
		assert.Equal(t, Backlog, task.Column)
	}
}

func TestBoardRemove(t *testing.T) {
	board := NewBoard()
	board.Append(Backlog, "A")
	board.Append(Backlog, "B")
	board.Append(Backlog, "C")

	task, err := board.Remove(Backlog, 1)
	require.NoError(t, err)
	assert.Equal(t, "B", task.Text)
	assert.Equal(t, []string{"A", "C"}, board.Texts(Backlog))
}

func TestBoardRemoveOutOfRange(t *testing.T) {
	board := NewBoard()
	board.Append(Backlog, "A")

	tests := []struct {
		name   string
		column Column
		index  int
	}{
		{"index equal to length", Backlog, 1},
		{"negative index", Backlog, -1},
		{"empty column", InProgress, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := board.Remove(tt.column, tt.index)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrIndexOutOfRange))
			assert.Equal(t, []string{"A"}, board.Texts(Backlog))
		})
	}
}

func TestBoardRemoveDoesNotAliasCopies(t *testing.T) {
	board := NewBoard()
	board.Append(Backlog, "A")
	board.Append(Backlog, "B")
	board.Append(Backlog, "C")

	before := board.Tasks(Backlog)
	_, err := board.Remove(Backlog, 0)
	require.NoError(t, err)

	assert.Equal(t, "A", before[0].Text)
	assert.Equal(t, "B", before[1].Text)
}

func TestBoardMoveAppendsToDestination(t *testing.T) {
	board := NewBoard()
	board.Append(Backlog, "A")
	board.Append(Backlog, "B")
	board.Append(Done, "X")
	original := board.Tasks(Backlog)[0]

	require.NoError(t, board.Move(Backlog, 0, Done))

	assert.Equal(t, []string{"B"}, board.Texts(Backlog))
	assert.Equal(t, []string{"X", "A"}, board.Texts(Done))

	moved := board.Tasks(Done)[1]
	assert.Equal(t, Done, moved.Column)
	assert.Equal(t, original.ID, moved.ID)
}

func TestBoardMoveOutOfRange(t *testing.T) {
	board := NewBoard()
	board.Append(Backlog, "A")

	err := board.Move(Backlog, 3, InProgress)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	assert.Equal(t, []string{"A"}, board.Texts(Backlog))
	assert.Empty(t, board.Texts(InProgress))
}

func TestBoardMoveInvalidDestinationKeepsTask(t *testing.T) {
	board := NewBoard()
	board.Append(Backlog, "A")

	err := board.Move(Backlog, 0, Column(9))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidColumn))
	assert.Equal(t, []string{"A"}, board.Texts(Backlog))
}

func TestBoardEveryTaskInExactlyOneColumn(t *testing.T) {
	board := NewBoard()
	for _, text := range []string{"a", "b", "c", "d"} {
		board.Append(Backlog, text)
	}
	require.NoError(t, board.Move(Backlog, 0, InProgress))
	require.NoError(t, board.Move(Backlog, 0, Done))
	require.NoError(t, board.Move(InProgress, 0, Done))
	require.NoError(t, board.Move(Done, 0, Backlog))

	seen := map[string]int{}
	for _, column := range AllColumns {
		for _, task := range board.Tasks(column) {
			assert.Equal(t, column, task.Column)
			seen[task.ID]++
		}
	}
	assert.Len(t, seen, 4)
	for id, count := range seen {
		assert.Equal(t, 1, count, "task %s", id)
	}
}

func TestBoardAppendInvalidColumn(t *testing.T) {
	board := NewBoard()

	_, err := board.Append(Column(7), "lost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidColumn))
	assert.Equal(t, 0, board.Total())

	task, err := board.Append(Done, "kept")
	require.NoError(t, err)
	assert.Equal(t, Done, task.Column)
	assert.NotEmpty(t, task.ID)
}

func TestBoardPutInvalidColumn(t *testing.T) {
	board := NewBoard()
	err := board.put(Task{ID: "x", Text: "lost", Column: Column(-1)})
	assert.True(t, errors.Is(err, ErrInvalidColumn))
	assert.Equal(t, 0, board.Total())
}
