package engine

import (
	"github.com/cartoon-raccoon/perch/internal/layout"
	"github.com/cartoon-raccoon/perch/internal/state"
	"github.com/cartoon-raccoon/perch/internal/x"
)

// dispatch routes one event to its handler. Handlers mutate the state
// tree, relayout when geometry is affected, and fire the matching hooks.
func (m *Manager) dispatch(ev x.Event) {
	switch ev := ev.(type) {
	case x.MapRequest:
		m.handleMapRequest(ev)
	case x.ConfigureRequest:
		m.handleConfigureRequest(ev)
	case x.ConfigureNotify:
		m.handleConfigureNotify(ev)
	case x.UnmapNotify:
		if ev.FromRoot {
			m.handleRootUnmap(ev.Window)
		}
	case x.DestroyNotify:
		m.unmanage(ev.Window)
	case x.EnterNotify:
		m.handleEnterNotify(ev)
	case x.PropertyNotify:
		m.handlePropertyNotify(ev)
	case x.KeyPress:
		m.handleKeyPress(ev)
	case x.MouseEvent:
		m.handleMouseEvent(ev)
	case x.ScreenChange:
		m.handleScreenChange()
	case x.MapNotify, x.KeyRelease, x.LeaveNotify:
		// tracked for completeness, nothing to do
	case x.ClientMessage:
		m.log.Tracef("client message %s on %s", ev.Type, ev.Window)
	case x.UnknownEvent:
		m.log.Tracef("unhandled event code %d", ev.Code)
	}
}

func (m *Manager) handleMapRequest(ev x.MapRequest) {
	if ev.OverrideRedirect {
		m.log.Tracef("ignoring override-redirect window %s", ev.Window)
		return
	}
	if _, _, ok := m.desktop.FindWindow(ev.Window); ok {
		// already managed, just honor the map
		if err := m.conn.MapWindow(ev.Window); err != nil {
			m.log.Errorf("map %s: %v", ev.Window, err)
		}
		return
	}
	m.manage(ev.Window, true)
}

// manage runs the Unmanaged to Managed transition: classify, insert into
// the current workspace, map, and focus.
func (m *Manager) manage(id x.Xid, focus bool) {
	ws := m.desktop.Current()
	if ws == nil {
		return
	}

	geom, err := m.conn.GetGeometry(id)
	if err != nil {
		// the window likely vanished between the request and now
		m.log.Errorf("geometry of %s: %v", id, err)
		return
	}
	w := state.NewWindow(m.conn, x.XWindow{ID: id, Geom: geom})
	w.Floating = m.cfg.FloatsClass(w.Class) || w.PrefersFloat(m.conn)

	ws.AddWindow(w)
	if err := m.conn.MapWindow(id); err != nil {
		m.log.Errorf("map %s: %v", id, err)
	}
	if screen, ok := m.screenFor(ws); ok {
		m.relayoutWorkspace(ws, screen)
	}
	m.log.Debugf("managing %s (%s) floating=%v", id, w.Class, w.Floating)
	m.runHooks(HookClientAdded)
	if focus {
		m.focusWindow(id)
	}
}

// handleRootUnmap withdraws a window its client unmapped. Windows on a
// hidden workspace were unmapped by the manager itself, and the server
// echoes each of those back here, so they stay managed.
func (m *Manager) handleRootUnmap(id x.Xid) {
	_, ws, ok := m.desktop.FindWindow(id)
	if !ok || !m.visible(ws) {
		return
	}
	m.unmanage(id)
}

// unmanage removes a destroyed or withdrawn window. The ring's wrap rule
// picks the next focus; an emptied workspace stays displayed.
func (m *Manager) unmanage(id x.Xid) {
	w, ws, ok := m.desktop.RemoveWindow(id)
	if !ok {
		return
	}
	m.log.Debugf("unmanaging %s (%s)", id, w.Class)
	if screen, ok := m.screenFor(ws); ok {
		m.relayoutWorkspace(ws, screen)
	}
	m.runHooks(HookClientRemoved)

	if m.focused == id {
		m.focused = x.None
		if next := ws.Focused(); next != nil {
			m.focusWindow(next.ID())
		}
	}
}

func (m *Manager) handleConfigureRequest(ev x.ConfigureRequest) {
	w, ws, managed := m.desktop.FindWindow(ev.Window)
	if !managed {
		// not ours to police
		if err := m.conn.ConfigureWindow(ev.Window, ev.Config); err != nil {
			m.log.Errorf("configure %s: %v", ev.Window, err)
		}
		return
	}

	active := ws.ActiveLayout()
	floating := w.Floating || active == nil || active.Style() == layout.StyleFloating
	if floating {
		if err := m.conn.ConfigureWindow(ev.Window, ev.Config); err != nil {
			m.log.Errorf("configure %s: %v", ev.Window, err)
			return
		}
		w.SetGeometry(applyConfig(w.Geometry(), ev.Config))
		return
	}

	// tiled: geometry is layout-owned. Honor stacking, then tell the
	// client where it actually is so it stops asking.
	if ev.Config.Mask&(x.ConfigSibling|x.ConfigStackMode) != 0 {
		stack := ev.Config
		stack.Mask &= x.ConfigSibling | x.ConfigStackMode
		if err := m.conn.ConfigureWindow(ev.Window, stack); err != nil {
			m.log.Errorf("restack %s: %v", ev.Window, err)
		}
	}
	if err := m.conn.SendConfigureNotify(ev.Window, w.Geometry()); err != nil {
		m.log.Errorf("notify %s: %v", ev.Window, err)
	}
}

// applyConfig merges the masked fields of a configure request into a
// cached geometry.
func applyConfig(g x.Geometry, cfg x.WindowConfig) x.Geometry {
	if cfg.Mask&x.ConfigX != 0 {
		g.X = cfg.Geom.X
	}
	if cfg.Mask&x.ConfigY != 0 {
		g.Y = cfg.Geom.Y
	}
	if cfg.Mask&x.ConfigWidth != 0 {
		g.Width = cfg.Geom.Width
	}
	if cfg.Mask&x.ConfigHeight != 0 {
		g.Height = cfg.Geom.Height
	}
	return g
}

func (m *Manager) handleConfigureNotify(ev x.ConfigureNotify) {
	if ev.Window == m.conn.Root().ID {
		m.handleScreenChange()
		return
	}
	if w, _, ok := m.desktop.FindWindow(ev.Window); ok {
		w.SetGeometry(ev.Geom)
	}
}

func (m *Manager) handleEnterNotify(ev x.EnterNotify) {
	if ev.Grab || !m.cfg.FocusFollowsPointer {
		return
	}
	if _, _, ok := m.desktop.FindWindow(ev.Window); ok {
		m.focusWindow(ev.Window)
	}
}

func (m *Manager) handlePropertyNotify(ev x.PropertyNotify) {
	w, _, ok := m.desktop.FindWindow(ev.Window)
	if !ok {
		return
	}
	switch ev.Name {
	case "WM_HINTS", "WM_NORMAL_HINTS", "WM_NAME", "WM_CLASS":
		wasUrgent := w.Urgent
		w.RefreshProperties(m.conn)
		if w.Urgent != wasUrgent {
			m.log.Debugf("%s urgency now %v", ev.Window, w.Urgent)
		}
	}
}

func (m *Manager) handleKeyPress(ev x.KeyPress) {
	act, ok := m.registry.LookupKey(ev.Mask, ev.Code)
	if !ok {
		m.log.Tracef("unbound key %d mask %#x", ev.Code, ev.Mask)
		return
	}
	act()
}

func (m *Manager) handleMouseEvent(ev x.MouseEvent) {
	act, ok := m.registry.LookupMouse(ev.Mask, ev.Button, ev.Kind)
	if !ok {
		return
	}
	act(ev.Pos)
}

func (m *Manager) handleScreenChange() {
	if err := m.detectOutputs(); err != nil {
		m.log.Errorf("output redetect: %v", err)
		return
	}
	m.relayout()
	m.runHooks(HookOutputChanged)
}
