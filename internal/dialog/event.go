// Package dialog implements the conversational flow controller: it
// tracks per-chat dialog state across turns and dispatches free text,
// commands and button presses against that state.
package dialog

// Event is one incoming chat interaction. The transport decodes raw
// updates (including menu-label matching) into one of the three variants
// before the controller sees them.
type Event interface {
	isEvent()
}

// Command is a slash command or a decoded menu action.
type Command struct {
	Name string
	Args []string
}

func (Command) isEvent() {}

// FreeText is a plain text message. While a flow is active it is the
// flow's expected input; otherwise it falls through to the menu hint.
type FreeText struct {
	Text string
}

func (FreeText) isEvent() {}

// ButtonPress is an inline button press carrying an action token.
type ButtonPress struct {
	Token string
}

func (ButtonPress) isEvent() {}
