package internal

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	interrupt key.Binding
	up        key.Binding
	down      key.Binding
	left      key.Binding
	right     key.Binding
	promote   key.Binding
	demote    key.Binding
	insert    key.Binding
	delete    key.Binding
	quit      key.Binding

	commit  key.Binding
	cancel  key.Binding
	erase   key.Binding
	editing bool
}

// newKeyMap builds the help bindings from the controller's character bindings
// so the hint line always shows what the controller will act on.
func newKeyMap(bindings Bindings) keyMap {
	return keyMap{
		interrupt: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "save & quit")),
		up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "column left")),
		right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "column right")),
		promote:   runeBinding(bindings.Keys(CommandPromote), "promote"),
		demote:    runeBinding(bindings.Keys(CommandDemote), "demote"),
		insert:    runeBinding(bindings.Keys(CommandInsert), "insert"),
		delete:    runeBinding(bindings.Keys(CommandDelete), "delete", "delete"),
		quit:      runeBinding(bindings.Keys(CommandQuit), "quit"),

		commit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add task")),
		cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		erase:  key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "erase")),
	}
}

func runeBinding(runes []rune, desc string, extra ...string) key.Binding {
	keys := make([]string, 0, len(runes)+len(extra))
	labels := make([]string, 0, len(runes)+len(extra))
	for _, r := range runes {
		keys = append(keys, string(r))
		labels = append(labels, string(r))
	}
	for _, k := range extra {
		keys = append(keys, k)
		labels = append(labels, "del")
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(strings.Join(labels, "/"), desc))
}

// ShortHelp returns the bindings for the current mode.
func (k keyMap) ShortHelp() []key.Binding {
	if k.editing {
		return []key.Binding{k.commit, k.cancel, k.erase}
	}
	return []key.Binding{k.up, k.down, k.left, k.right, k.insert, k.promote, k.demote, k.delete, k.quit}
}

// FullHelp returns all bindings grouped by mode.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.left, k.right},
		{k.insert, k.promote, k.demote, k.delete, k.quit, k.interrupt},
		{k.commit, k.cancel, k.erase},
	}
}
