package types

// Identicon is a small visual fingerprint of a user name and secret.
type Identicon struct {
	LeftArm   string `json:"leftArm"`
	Body      string `json:"body"`
	RightArm  string `json:"rightArm"`
	Accessory string `json:"accessory"`
}

// String renders the four glyphs in display order.
func (i Identicon) String() string { return i.LeftArm + i.Body + i.RightArm + i.Accessory }

// IsZero reports whether no identicon has been set.
func (i Identicon) IsZero() bool { return i == Identicon{} }

var (
	IdenticonLeftArms  = []string{"╔", "╚", "╰", "═"}
	IdenticonBodies    = []string{"█", "░", "▒", "▓", "☺", "☻"}
	IdenticonRightArms = []string{"╗", "╝", "╯", "═"}
)

var (
	IdenticonAccessories = []string{
		"◈", "◎", "◐", "◑", "◒", "◓", "☀", "☁", "☂", "☃", "☄", "★", "☆", "☎", "☏", "⎈", "⌂", "☘", "☢", "☣",
		"☕", "⌚", "⌛", "⏰", "⚡", "⛄", "⛅", "☔", "♔", "♕", "♖", "♗", "♘", "♙", "♚", "♛", "♜", "♝", "♞", "♟",
		"♨", "♩", "♪", "♫", "⚐", "⚑", "⚔", "⚖", "⚙", "⚠", "⌘", "⏎", "✄", "✆", "✈", "✉", "✌",
	}
)
