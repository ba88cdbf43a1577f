package bindings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cartoon-raccoon/perch/internal/x"
)

// KeyChord is a parsed key chord before the backend resolves the key name
// to a code.
type KeyChord struct {
	Mask x.ModMask
	Key  string
}

// MouseChord is a parsed pointer chord.
type MouseChord struct {
	Mask   x.ModMask
	Button x.Button
	Kind   x.MouseEventKind
}

var modTokens = map[string]x.ModMask{
	"S":     x.ModShift,
	"shift": x.ModShift,
	"C":     x.ModCtrl,
	"ctrl":  x.ModCtrl,
	"A":     x.Mod1,
	"alt":   x.Mod1,
	"M1":    x.Mod1,
	"M":     x.Mod4,
	"super": x.Mod4,
	"M4":    x.Mod4,
	"M3":    x.Mod3,
	"M5":    x.Mod5,
}

// splitChord separates the modifier tokens from the final subject token.
func splitChord(s string) (x.ModMask, string, error) {
	tokens := strings.Split(s, "-")
	if len(tokens) == 0 || tokens[len(tokens)-1] == "" {
		return 0, "", fmt.Errorf("empty chord %q", s)
	}
	var mask x.ModMask
	for _, tok := range tokens[:len(tokens)-1] {
		m, ok := modTokens[tok]
		if !ok {
			return 0, "", fmt.Errorf("chord %q: unknown modifier %q", s, tok)
		}
		mask |= m
	}
	return mask, tokens[len(tokens)-1], nil
}

// ParseKeyChord parses a chord like "M-S-Return": dash-separated modifier
// tokens followed by a key name. The key name is left for the backend to
// resolve to a key code.
func ParseKeyChord(s string) (KeyChord, error) {
	mask, key, err := splitChord(s)
	if err != nil {
		return KeyChord{}, err
	}
	return KeyChord{Mask: mask, Key: key}, nil
}

// ParseMouseChord parses a chord like "M-1" or "M-3-motion": modifier
// tokens, a button number, and an optional event kind defaulting to press.
func ParseMouseChord(s string) (MouseChord, error) {
	kind := x.MousePress
	subject := s
	for suffix, k := range map[string]x.MouseEventKind{
		"-press":   x.MousePress,
		"-release": x.MouseRelease,
		"-motion":  x.MouseMotion,
	} {
		if strings.HasSuffix(s, suffix) {
			kind = k
			subject = strings.TrimSuffix(s, suffix)
			break
		}
	}

	mask, btn, err := splitChord(subject)
	if err != nil {
		return MouseChord{}, err
	}
	n, err := strconv.Atoi(btn)
	if err != nil || n < 1 || n > 5 {
		return MouseChord{}, fmt.Errorf("chord %q: bad button %q", s, btn)
	}
	return MouseChord{Mask: mask, Button: x.Button(n), Kind: kind}, nil
}
