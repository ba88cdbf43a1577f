package x11

import "github.com/BurntSushi/xgb/xproto"

// keysymFromName maps the key names usable in chord strings to keysyms.
// Single printable characters map through their codepoint, which covers
// letters, digits and punctuation; everything else comes from the table.
func keysymFromName(name string) (xproto.Keysym, bool) {
	if sym, ok := namedKeysyms[name]; ok {
		return sym, true
	}
	runes := []rune(name)
	if len(runes) == 1 && runes[0] >= 0x20 && runes[0] <= 0x7e {
		return xproto.Keysym(runes[0]), true
	}
	return 0, false
}

var namedKeysyms = map[string]xproto.Keysym{
	"Return":    0xff0d,
	"Enter":     0xff0d,
	"Escape":    0xff1b,
	"Tab":       0xff09,
	"BackSpace": 0xff08,
	"Delete":    0xffff,
	"space":     0x0020,
	"Home":      0xff50,
	"End":       0xff57,
	"Prior":     0xff55,
	"Next":      0xff56,
	"Left":      0xff51,
	"Up":        0xff52,
	"Right":     0xff53,
	"Down":      0xff54,
	"F1":        0xffbe,
	"F2":        0xffbf,
	"F3":        0xffc0,
	"F4":        0xffc1,
	"F5":        0xffc2,
	"F6":        0xffc3,
	"F7":        0xffc4,
	"F8":        0xffc5,
	"F9":        0xffc6,
	"F10":       0xffc7,
	"F11":       0xffc8,
	"F12":       0xffc9,
}
