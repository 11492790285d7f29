package dialog

// KeyboardKind names the menu to attach to a reply. The transport layer
// owns the actual button labels and layout.
type KeyboardKind int

const (
	KeyboardNone KeyboardKind = iota
	KeyboardMain
	KeyboardSections
	KeyboardCategoryMenu
	KeyboardTaskMenu
	KeyboardReminderMenu
	KeyboardBack
	KeyboardOptions
)

// Option is one selectable entry of a dynamically generated keyboard.
type Option struct {
	Label string
	Data  string
}

type Keyboard struct {
	Kind    KeyboardKind
	Options []Option
}

// Reply is the transport-free outcome of one machine transition.
type Reply struct {
	Text     string
	Keyboard Keyboard
}
