package x

// ModMask is a bitmask of held modifier keys, in wire encoding.
type ModMask uint16

const (
	ModShift ModMask = 1 << iota
	ModLock
	ModCtrl
	Mod1 // Alt
	Mod2 // NumLock on most keymaps
	Mod3
	Mod4 // Super/Meta
	Mod5
)

// ignoredMods are modifier bits that carry no chord meaning: Lock and the
// NumLock bit the server reports whenever the keypad is active.
const ignoredMods = ModLock | Mod2

// Clean strips the ignored hardware bits from a reported modifier state so
// that chord lookups can be exact.
func (m ModMask) Clean() ModMask {
	return m &^ ignoredMods
}

// KeyCode is a hardware keycode as reported by the server.
type KeyCode uint8

// Button is a pointer button index.
type Button uint8

const (
	ButtonLeft Button = iota + 1
	ButtonMiddle
	ButtonRight
	ButtonScrollUp
	ButtonScrollDown
)

// MouseEventKind distinguishes the pointer event that triggered a binding.
type MouseEventKind int

const (
	MousePress MouseEventKind = iota
	MouseRelease
	MouseMotion
)

func (k MouseEventKind) String() string {
	switch k {
	case MousePress:
		return "press"
	case MouseRelease:
		return "release"
	case MouseMotion:
		return "motion"
	}
	return "unknown"
}
