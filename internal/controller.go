package internal

import (
	"slices"
	"strings"
	"unicode"
)

// Mode is the controller's interaction mode.
type Mode int

const (
	ModeNavigate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "EDIT"
	}
	return "NAVIGATE"
}

// KeyCode identifies an abstract key event, independent of the terminal library.
type KeyCode int

const (
	KeyNone KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyRune
	KeyInterrupt
)

type Key struct {
	Code KeyCode
	Rune rune
}

// RuneKey returns the key event for a typed character.
func RuneKey(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

// Effect tells the caller what to do after a key has been handled.
type Effect int

const (
	EffectNone Effect = iota
	EffectQuit
)

// Command is a Navigate-mode action bound to a character.
type Command int

const (
	CommandNone Command = iota
	CommandPromote
	CommandDemote
	CommandInsert
	CommandDelete
	CommandQuit
)

// Bindings maps command characters to Navigate-mode commands.
type Bindings map[rune]Command

func DefaultBindings() Bindings {
	return Bindings{
		'k': CommandPromote,
		']': CommandPromote,
		'j': CommandDemote,
		'[': CommandDemote,
		'i': CommandInsert,
		'd': CommandDelete,
		'q': CommandQuit,
	}
}

// Keys returns the characters bound to cmd, in a stable order.
func (b Bindings) Keys(cmd Command) []rune {
	var keys []rune
	for r, c := range b {
		if c == cmd {
			keys = append(keys, r)
		}
	}
	slices.Sort(keys)
	return keys
}

// Saver persists the board when the user quits.
type Saver interface {
	Save(board *Board) error
}

type ControllerOption func(*Controller)

func WithBindings(bindings Bindings) ControllerOption {
	return func(c *Controller) {
		if len(bindings) > 0 {
			c.bindings = bindings
		}
	}
}

// WithBlankTasks controls whether committing an empty buffer creates a task.
func WithBlankTasks(allow bool) ControllerOption {
	return func(c *Controller) {
		c.allowBlank = allow
	}
}

// Controller is the board's interaction state machine. It is driven by one
// caller at a time and owns every mutation of the board it wraps.
type Controller struct {
	board      *Board
	saver      Saver
	bindings   Bindings
	allowBlank bool

	mode     Mode
	active   Column
	selected int
	buffer   []rune
}

func NewController(board *Board, saver Saver, opts ...ControllerOption) *Controller {
	if board == nil {
		board = NewBoard()
	}
	c := &Controller{
		board:      board,
		saver:      saver,
		bindings:   DefaultBindings(),
		allowBlank: true,
		mode:       ModeNavigate,
		active:     Backlog,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Board() *Board { return c.board }
func (c *Controller) Mode() Mode { return c.mode }
func (c *Controller) ActiveColumn() Column { return c.active }
func (c *Controller) Selected() int { return c.selected }
func (c *Controller) EditText() string { return string(c.buffer) }
func (c *Controller) Bindings() Bindings { return c.bindings }

// Handle applies one key event. The error is only ever a save failure on
// quit, which the caller must treat as fatal.
func (c *Controller) Handle(k Key) (Effect, error) {
	if k.Code == KeyInterrupt {
		c.buffer = nil
		c.mode = ModeNavigate
		return c.quit()
	}

	if c.mode == ModeEdit {
		c.handleEdit(k)
		return EffectNone, nil
	}
	return c.handleNavigate(k)
}

func (c *Controller) handleNavigate(k Key) (Effect, error) {
	switch k.Code {
	case KeyUp:
		if c.selected > 0 {
			c.selected--
		}
	case KeyDown:
		if c.selected < c.board.Len(c.active)-1 {
			c.selected++
		}
	case KeyLeft:
		if prev, ok := c.active.Prev(); ok {
			c.active = prev
			c.selected = 0
		}
	case KeyRight:
		if next, ok := c.active.Next(); ok {
			c.active = next
			c.selected = 0
		}
	case KeyDelete:
		c.deleteSelected()
	case KeyRune:
		switch c.bindings[k.Rune] {
		case CommandPromote:
			if next, ok := c.active.Next(); ok {
				c.moveSelected(next)
			}
		case CommandDemote:
			if prev, ok := c.active.Prev(); ok {
				c.moveSelected(prev)
			}
		case CommandDelete:
			c.deleteSelected()
		case CommandInsert:
			c.mode = ModeEdit
			c.buffer = nil
		case CommandQuit:
			return c.quit()
		}
	}
	return EffectNone, nil
}

func (c *Controller) handleEdit(k Key) {
	switch k.Code {
	case KeyRune:
		if unicode.IsPrint(k.Rune) {
			c.buffer = append(c.buffer, k.Rune)
		}
	case KeyBackspace:
		if len(c.buffer) > 0 {
			c.buffer = c.buffer[:len(c.buffer)-1]
		}
	case KeyEscape:
		c.buffer = nil
		c.mode = ModeNavigate
	case KeyEnter:
		text := string(c.buffer)
		c.buffer = nil
		c.mode = ModeNavigate
		if !c.allowBlank && strings.TrimSpace(text) == "" {
			return
		}
		c.board.Append(c.active, text)
	}
}

func (c *Controller) moveSelected(dst Column) {
	if err := c.board.Move(c.active, c.selected, dst); err != nil {
		return
	}
	c.clampSelection()
}

func (c *Controller) deleteSelected() {
	if _, err := c.board.Remove(c.active, c.selected); err != nil {
		return
	}
	if c.selected > 0 {
		c.selected--
	}
}

func (c *Controller) clampSelection() {
	if n := c.board.Len(c.active); c.selected >= n {
		c.selected = max(0, n-1)
	}
}

func (c *Controller) quit() (Effect, error) {
	if c.saver == nil {
		return EffectQuit, nil
	}
	return EffectQuit, c.saver.Save(c.board)
}

// View projects the state into the read-only form the renderer consumes.
func (c *Controller) View() BoardView {
	view := BoardView{
		Mode:     c.mode,
		Selected: -1,
	}
	for _, column := range AllColumns {
		view.Columns = append(view.Columns, ColumnView{
			Column: column,
			Title:  column.Title(),
			Tasks:  c.board.Texts(column),
			Active: column == c.active,
		})
	}
	if c.mode == ModeEdit {
		view.EditText = string(c.buffer)
	} else if c.board.Len(c.active) > 0 {
		view.Selected = c.selected
	}
	return view
}
