package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the client.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding
	Home key.Binding
	End  key.Binding

	Select key.Binding // Open the highlighted record.
	Back   key.Binding // Pop to the previous view.

	Refresh key.Binding
	New     key.Binding // Open the create form.
	Edit    key.Binding // Enter edit mode on a record.
	Submit  key.Binding // Submit the current form or comment.
	Next    key.Binding // Move to the next form field.

	Comment    key.Binding // Open the conversation thread.
	Private    key.Binding // Toggle the agent comment privacy flag.
	Approve    key.Binding
	Reject     key.Binding
	StartDraft key.Binding // Kick off the draft approval process.
	Feedback   key.Binding // Open the feedback form (user portal).
	MarkRead   key.Binding
	Deactivate key.Binding
	Delete     key.Binding
	Report     key.Binding // Download the ticket report.

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "open"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("C-d", "submit"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next field"),
	),
	Comment: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "conversation"),
	),
	Private: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "toggle private"),
	),
	Approve: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "approve"),
	),
	Reject: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "reject"),
	),
	StartDraft: key.NewBinding(
		key.WithKeys("A"),
		key.WithHelp("A", "start approval"),
	),
	Feedback: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "feedback"),
	),
	MarkRead: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "mark read"),
	),
	Deactivate: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "deactivate"),
	),
	Delete: key.NewBinding(
		key.WithKeys("delete", "backspace"),
		key.WithHelp("Del", "delete"),
	),
	Report: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "report"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
