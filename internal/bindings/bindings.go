// Package bindings maps key and mouse chords to callbacks. Maps are
// populated before the event loop starts and consulted read-only after,
// one exact lookup per input event.
package bindings

import "github.com/cartoon-raccoon/perch/internal/x"

// Keybind identifies a key chord: a cleaned modifier mask plus a key code.
type Keybind struct {
	Mask x.ModMask
	Code x.KeyCode
}

// Mousebind identifies a pointer chord: modifiers, button and event kind.
type Mousebind struct {
	Mask   x.ModMask
	Button x.Button
	Kind   x.MouseEventKind
}

// KeyAction and MouseAction are the registered callbacks. Mouse actions see
// the pointer position of the triggering event.
type (
	KeyAction   func()
	MouseAction func(pos x.Point)
)

// Registry holds the populated binding maps.
type Registry struct {
	keys  map[Keybind]KeyAction
	mouse map[Mousebind]MouseAction
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		keys:  make(map[Keybind]KeyAction),
		mouse: make(map[Mousebind]MouseAction),
	}
}

// BindKey registers act for kb. Rebinding an existing chord replaces the
// old action.
func (r *Registry) BindKey(kb Keybind, act KeyAction) {
	kb.Mask = kb.Mask.Clean()
	r.keys[kb] = act
}

// BindMouse registers act for mb.
func (r *Registry) BindMouse(mb Mousebind, act MouseAction) {
	mb.Mask = mb.Mask.Clean()
	r.mouse[mb] = act
}

// LookupKey finds the action for a reported key press. The hardware quirk
// bits are stripped from mask before the exact lookup, so NumLock and Caps
// Lock never shadow a chord. A chord bound for one modifier set does not
// fire for a superset.
func (r *Registry) LookupKey(mask x.ModMask, code x.KeyCode) (KeyAction, bool) {
	act, ok := r.keys[Keybind{Mask: mask.Clean(), Code: code}]
	return act, ok
}

// LookupMouse finds the action for a reported pointer event.
func (r *Registry) LookupMouse(mask x.ModMask, button x.Button, kind x.MouseEventKind) (MouseAction, bool) {
	act, ok := r.mouse[Mousebind{Mask: mask.Clean(), Button: button, Kind: kind}]
	return act, ok
}

// Keybinds returns the registered key chords, for grab registration.
func (r *Registry) Keybinds() []Keybind {
	kbs := make([]Keybind, 0, len(r.keys))
	for kb := range r.keys {
		kbs = append(kbs, kb)
	}
	return kbs
}

// Mousebinds returns the registered pointer chords, for grab registration.
func (r *Registry) Mousebinds() []Mousebind {
	mbs := make([]Mousebind, 0, len(r.mouse))
	for mb := range r.mouse {
		mbs = append(mbs, mb)
	}
	return mbs
}
