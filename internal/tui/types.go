package tui

import "github.com/charmbracelet/bubbles/key"

// Action is the pending decision for one held comment
type Action int

const (
	ActionNone Action = iota
	ActionPublish
	ActionReject
)

func (a Action) label() string {
	switch a {
	case ActionPublish:
		return "✓ publish"
	case ActionReject:
		return "✗ reject"
	}
	return ""
}

// Decisions is what the moderator chose. Nothing has been applied yet.
type Decisions struct {
	Publish   []string
	Reject    []string
	Cancelled bool
}

// Empty reports whether there is nothing to apply
func (d Decisions) Empty() bool {
	return d.Cancelled || len(d.Publish)+len(d.Reject) == 0
}

type keyMap struct {
	Publish    key.Binding
	Reject     key.Binding
	Toggle     key.Binding
	PublishAll key.Binding
	Apply      key.Binding
	Cancel     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Publish:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "publish")),
		Reject:     key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "reject")),
		Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		PublishAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "publish all")),
		Apply:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "apply & quit")),
		Cancel:     key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Publish, k.Reject, k.Toggle, k.PublishAll, k.Apply, k.Cancel}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
