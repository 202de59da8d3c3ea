package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lane-defense/internal/core"
)

// BattleKeyMap defines the key bindings of the battle view.
type BattleKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Next    key.Binding
	Prev    key.Binding
	Place   key.Binding
	Cancel  key.Binding
	Skill   key.Binding
	Retreat key.Binding
	Pause   key.Binding
	Speed   key.Binding
	Restart key.Binding
	Back    key.Binding
	Quit    key.Binding
}

type binding struct {
	key    *key.Binding
	action core.Action
}

// ShortHelp returns key bindings for the short help view.
func (k BattleKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Place, k.Skill, k.Retreat, k.Pause, k.Speed, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BattleKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Next, k.Prev, k.Place, k.Cancel},
		{k.Skill, k.Retreat, k.Pause, k.Speed},
		{k.Restart, k.Back, k.Quit},
	}
}

// DefaultBattleKeyMap returns default key bindings.
func DefaultBattleKeyMap() BattleKeyMap {
	return BattleKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "h", "a"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l", "d"), key.WithHelp("→/l", "right")),
		Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next operator")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("S-tab", "prev operator")),
		Place:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "place/confirm")),
		Cancel:  key.NewBinding(key.WithKeys("esc", "x"), key.WithHelp("esc", "cancel")),
		Skill:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "skill")),
		Retreat: key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("del", "retreat")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Speed:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "1x/2x")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Back:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Action translates a key press to a viewer action.
func (k BattleKeyMap) Action(msg tea.KeyMsg) core.Action {
	table := []binding{
		{&k.Quit, core.ActionQuit},
		{&k.Up, core.ActionCursorUp},
		{&k.Down, core.ActionCursorDown},
		{&k.Left, core.ActionCursorLeft},
		{&k.Right, core.ActionCursorRight},
		{&k.Next, core.ActionNextOperator},
		{&k.Prev, core.ActionPrevOperator},
		{&k.Place, core.ActionPlace},
		{&k.Cancel, core.ActionCancel},
		{&k.Skill, core.ActionSkill},
		{&k.Retreat, core.ActionRetreat},
		{&k.Pause, core.ActionPause},
		{&k.Speed, core.ActionSpeed},
		{&k.Restart, core.ActionRestart},
		{&k.Back, core.ActionBack},
	}
	for _, b := range table {
		if key.Matches(msg, *b.key) {
			return b.action
		}
	}
	return core.ActionNone
}
