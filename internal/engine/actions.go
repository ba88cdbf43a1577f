package engine

import (
	"fmt"
	"strings"

	"github.com/cartoon-raccoon/perch/internal/bindings"
	"github.com/cartoon-raccoon/perch/internal/config"
	"github.com/cartoon-raccoon/perch/internal/layout"
	"github.com/cartoon-raccoon/perch/internal/ring"
	"github.com/cartoon-raccoon/perch/internal/x"
)

// mainResizeStep is how much one grow/shrink keypress moves the main ratio.
const mainResizeStep = 0.05

// keyAction resolves a keybind's config entry into a callback. Spawn
// entries become detached command launches; action entries look up the
// named manager operation.
func (m *Manager) keyAction(kb config.KeybindConfig) (bindings.KeyAction, error) {
	if kb.Spawn != "" {
		fields := strings.Fields(kb.Spawn)
		return func() { m.Spawn(fields[0], fields[1:]...) }, nil
	}
	act, ok := m.namedAction(kb.Action)
	if !ok {
		return nil, fmt.Errorf("keybind %q: unknown action %q", kb.Chord, kb.Action)
	}
	return act, nil
}

func (m *Manager) mouseAction(mb config.MousebindConfig) (bindings.MouseAction, error) {
	switch mb.Action {
	case "move-window":
		return func(pos x.Point) { m.MoveFocusedTo(pos) }, nil
	case "raise-window":
		return func(x.Point) { m.RaiseFocused() }, nil
	default:
		if act, ok := m.namedAction(mb.Action); ok {
			return func(x.Point) { act() }, nil
		}
		return nil, fmt.Errorf("mousebind %q: unknown action %q", mb.Chord, mb.Action)
	}
}

// namedAction maps the action vocabulary of the config file onto manager
// operations. "goto-NAME" and "send-to-NAME" address workspaces by name.
func (m *Manager) namedAction(name string) (func(), bool) {
	switch name {
	case "close-window":
		return m.CloseFocused, true
	case "focus-next":
		return func() { m.CycleFocus(ring.Forward) }, true
	case "focus-prev":
		return func() { m.CycleFocus(ring.Backward) }, true
	case "rotate-next":
		return func() { m.RotateWindows(ring.Forward) }, true
	case "rotate-prev":
		return func() { m.RotateWindows(ring.Backward) }, true
	case "swap-next":
		return func() { m.SwapFocused(ring.Forward) }, true
	case "swap-prev":
		return func() { m.SwapFocused(ring.Backward) }, true
	case "cycle-layout":
		return func() { m.CycleLayout(ring.Forward) }, true
	case "grow-main":
		return func() { m.SendLayoutUpdate(layout.ResizeMain{Delta: mainResizeStep}) }, true
	case "shrink-main":
		return func() { m.SendLayoutUpdate(layout.ResizeMain{Delta: -mainResizeStep}) }, true
	case "toggle-float":
		return m.ToggleFloat, true
	case "workspace-next":
		return func() { m.cycleWorkspace(ring.Forward) }, true
	case "workspace-prev":
		return func() { m.cycleWorkspace(ring.Backward) }, true
	}
	if ws, ok := strings.CutPrefix(name, "goto-"); ok {
		return func() {
			if err := m.GoToWorkspace(ws); err != nil {
				m.log.Errorf("goto %q: %v", ws, err)
			}
		}, true
	}
	if ws, ok := strings.CutPrefix(name, "send-to-"); ok {
		return func() {
			if err := m.SendToWorkspace(ws); err != nil {
				m.log.Errorf("send to %q: %v", ws, err)
			}
		}, true
	}
	return nil, false
}

func (m *Manager) cycleWorkspace(dir ring.Direction) {
	cur := m.desktop.Current()
	if cur == nil {
		return
	}
	all := m.desktop.Workspaces()
	idx := -1
	for i, ws := range all {
		if ws == cur {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	switch dir {
	case ring.Forward:
		idx = (idx + 1) % len(all)
	case ring.Backward:
		idx = (idx - 1 + len(all)) % len(all)
	}
	if err := m.GoToWorkspace(all[idx].Name()); err != nil {
		m.log.Errorf("cycle workspace: %v", err)
	}
}

// MoveFocusedTo moves the focused floating window so its top-left corner
// lands at pos. Tiled windows are layout-owned and stay put.
func (m *Manager) MoveFocusedTo(pos x.Point) {
	ws := m.desktop.Current()
	if ws == nil {
		return
	}
	w := ws.Focused()
	if w == nil || !w.Floating {
		return
	}
	g := w.Geometry()
	g.X, g.Y = pos.X, pos.Y
	if err := m.conn.ConfigureWindow(w.ID(), x.MoveResize(g)); err != nil {
		m.log.Errorf("move %s: %v", w.ID(), err)
		return
	}
	w.SetGeometry(g)
}

// RaiseFocused restacks the focused window above its siblings.
func (m *Manager) RaiseFocused() {
	ws := m.desktop.Current()
	if ws == nil {
		return
	}
	if w := ws.Focused(); w != nil {
		if err := m.conn.ConfigureWindow(w.ID(), x.Restack(x.StackAbove)); err != nil {
			m.log.Errorf("raise %s: %v", w.ID(), err)
		}
	}
}
