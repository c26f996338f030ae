package domain

// Menu identifies one of the persistent reply-keyboard layouts owned by
// the presentation layer. The controller only names the menu it wants;
// labels and layout live in the transport.
type Menu string

const (
	MenuNone   Menu = ""
	MenuMain   Menu = "main"
	MenuList   Menu = "list"
	MenuRandom Menu = "random"
	MenuTMDB   Menu = "tmdb"
)

// Button is one inline button. Token is an opaque action token decoded
// by the dialog controller on the next event.
type Button struct {
	Label string
	Token string
}

// Keyboard is a grid of inline buttons.
type Keyboard struct {
	Rows [][]Button
}

// NewKeyboard builds a keyboard from button rows, skipping empty rows so
// boundary buttons (first/last browse page) can simply be omitted.
func NewKeyboard(rows ...[]Button) *Keyboard {
	kb := &Keyboard{}
	for _, row := range rows {
		if len(row) > 0 {
			kb.Rows = append(kb.Rows, row)
		}
	}
	if len(kb.Rows) == 0 {
		return nil
	}
	return kb
}

// Reply describes the single outgoing message produced for an event.
// The transport renders it into the chat platform's native format.
type Reply struct {
	// Text is the message body (Telegram HTML markup allowed).
	Text string

	// PhotoURL, when set, sends the text as a photo caption.
	PhotoURL string

	// Keyboard holds inline buttons attached to the message.
	Keyboard *Keyboard

	// Menu selects a persistent reply menu to present, when any.
	Menu Menu

	// Edit asks the transport to edit the message the triggering button
	// was attached to instead of sending a new one. Ignored for events
	// that did not originate from a button press.
	Edit bool

	// Ack is a short notification text for the button-press popup.
	Ack string
}
