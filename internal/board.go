package internal

import "fmt"

// Board holds the ordered task sequence of every column.
// A task's identity in every operation is its index within its column.
type Board struct {
	columns [columnCount][]Task
}

func NewBoard() *Board {
	return &Board{}
}

// Append adds a new task to the end of column and returns it. It only fails
// for a column outside the board.
func (b *Board) Append(column Column, text string) (Task, error) {
	if !column.Valid() {
		return Task{}, fmt.Errorf("%w: %d", ErrInvalidColumn, int(column))
	}
	task := NewTask(text, column)
	b.columns[column] = append(b.columns[column], task)
	return task, nil
}

// Remove deletes the task at index from column, keeping the order of the rest.
func (b *Board) Remove(column Column, index int) (Task, error) {
	if err := b.checkIndex(column, index); err != nil {
		return Task{}, err
	}
	tasks := b.columns[column]
	task := tasks[index]
	b.columns[column] = append(tasks[:index:index], tasks[index+1:]...)
	return task, nil
}

// Move takes the task at index out of src and appends it to dst.
func (b *Board) Move(src Column, index int, dst Column) error {
	if !dst.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidColumn, int(dst))
	}
	task, err := b.Remove(src, index)
	if err != nil {
		return err
	}
	task.Column = dst
	b.columns[dst] = append(b.columns[dst], task)
	return nil
}

func (b *Board) Len(column Column) int {
	if !column.Valid() {
		return 0
	}
	return len(b.columns[column])
}

// Tasks returns a copy of the tasks in column.
func (b *Board) Tasks(column Column) []Task {
	if !column.Valid() {
		return nil
	}
	return append([]Task(nil), b.columns[column]...)
}

// Texts returns the task texts of column in order.
func (b *Board) Texts(column Column) []string {
	if !column.Valid() {
		return nil
	}
	texts := make([]string, 0, len(b.columns[column]))
	for _, task := range b.columns[column] {
		texts = append(texts, task.Text)
	}
	return texts
}

// Total returns the number of tasks across all columns.
func (b *Board) Total() int {
	total := 0
	for _, tasks := range b.columns {
		total += len(tasks)
	}
	return total
}

// put appends an existing task, used when rebuilding a board from disk.
func (b *Board) put(task Task) error {
	if !task.Column.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidColumn, int(task.Column))
	}
	b.columns[task.Column] = append(b.columns[task.Column], task)
	return nil
}

func (b *Board) checkIndex(column Column, index int) error {
	if !column.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidColumn, int(column))
	}
	if index < 0 || index >= len(b.columns[column]) {
		return fmt.Errorf("%w: %s has %d tasks, index %d", ErrIndexOutOfRange, column, len(b.columns[column]), index)
	}
	return nil
}
