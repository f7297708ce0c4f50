package internal

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// KanbanView adapts terminal key messages to controller key events and
// renders the controller's projection.
type KanbanView struct {
	controller *Controller
	renderer   boardRenderer
	keys       keyMap
	help       help.Model
	logger     *log.Logger
	quit       bool
	saveErr    error
}

func NewKanbanView(controller *Controller, logger *log.Logger) KanbanView {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return KanbanView{
		controller: controller,
		renderer:   newBoardRenderer(),
		keys:       newKeyMap(controller.Bindings()),
		help:       help.New(),
		logger:     logger,
	}
}

func (m KanbanView) Init() tea.Cmd {
	return nil
}

func (m KanbanView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.renderer.setSize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.quit {
			return m, nil
		}
		for _, k := range m.translateKey(msg) {
			effect, err := m.controller.Handle(k)
			if effect == EffectQuit {
				m.quit = true
				m.saveErr = err
				if err != nil {
					m.logger.Error("save on quit failed", "err", err)
				} else {
					m.logger.Info("board saved on quit")
				}
				return m, tea.Quit
			}
		}
		m.keys.editing = m.controller.Mode() == ModeEdit
	}

	return m, nil
}

// translateKey turns one key message into zero or more controller events.
// A paste arrives as one message carrying several runes; it is only text
// while editing, never a run of commands.
func (m KanbanView) translateKey(msg tea.KeyMsg) []Key {
	if key.Matches(msg, m.keys.interrupt) {
		return []Key{{Code: KeyInterrupt}}
	}
	if msg.Paste && m.controller.Mode() != ModeEdit {
		m.logger.Debug("ignoring paste outside edit mode", "runes", len(msg.Runes))
		return nil
	}

	switch msg.Type {
	case tea.KeyUp:
		return []Key{{Code: KeyUp}}
	case tea.KeyDown:
		return []Key{{Code: KeyDown}}
	case tea.KeyLeft:
		return []Key{{Code: KeyLeft}}
	case tea.KeyRight:
		return []Key{{Code: KeyRight}}
	case tea.KeyEnter:
		return []Key{{Code: KeyEnter}}
	case tea.KeyEsc:
		return []Key{{Code: KeyEscape}}
	case tea.KeyBackspace, tea.KeyCtrlH:
		return []Key{{Code: KeyBackspace}}
	case tea.KeyDelete:
		return []Key{{Code: KeyDelete}}
	case tea.KeySpace:
		return []Key{RuneKey(' ')}
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		keys := make([]Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, RuneKey(r))
		}
		return keys
	}

	m.logger.Debug("ignoring key", "key", msg.String())
	return nil
}

func (m KanbanView) View() string {
	if m.quit {
		return ""
	}
	board := m.renderer.Render(m.controller.View())
	return board + "\n" + m.help.View(m.keys)
}

// SaveErr reports the save failure that ended the session, if any.
func (m KanbanView) SaveErr() error {
	return m.saveErr
}

// ShowKanbanView runs the board until the user quits. The board has been
// saved when it returns nil.
func ShowKanbanView(controller *Controller, logger *log.Logger) error {
	model := NewKanbanView(controller, logger)
	p := tea.NewProgram(model, tea.WithAltScreen())

	result, err := p.Run()
	if err != nil {
		if _, saveErr := controller.Handle(Key{Code: KeyInterrupt}); saveErr != nil {
			return errors.Join(fmt.Errorf("run board: %w", err), fmt.Errorf("save board: %w", saveErr))
		}
		return fmt.Errorf("run board: %w", err)
	}

	finalModel, ok := result.(KanbanView)
	if !ok {
		return errors.New("unexpected model returned from board")
	}
	saveErr := finalModel.saveErr
	if !finalModel.quit {
		// Ended by a signal rather than a quit key; still persist the board.
		_, saveErr = controller.Handle(Key{Code: KeyInterrupt})
	}
	if saveErr != nil {
		return fmt.Errorf("save board: %w", saveErr)
	}
	return nil
}
