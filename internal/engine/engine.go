// Package engine ties the state tree, layouts, bindings and the display
// connection together into the manager's single-threaded event loop.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/cartoon-raccoon/perch/internal/bindings"
	"github.com/cartoon-raccoon/perch/internal/config"
	"github.com/cartoon-raccoon/perch/internal/layout"
	"github.com/cartoon-raccoon/perch/internal/outputs"
	"github.com/cartoon-raccoon/perch/internal/ring"
	"github.com/cartoon-raccoon/perch/internal/state"
	"github.com/cartoon-raccoon/perch/internal/util"
	"github.com/cartoon-raccoon/perch/internal/x"
)

// HookState names the manager transitions user hooks can attach to.
type HookState int

const (
	HookStartup HookState = iota
	HookOutputChanged
	HookClientAdded
	HookClientRemoved
	HookFocusChanged
	HookWorkspaceChanged
)

// Hook is a user callback run synchronously after its transition, with the
// whole manager at its disposal. Hooks may trigger further manager
// operations; nothing guards against a hook that recurses into its own
// transition.
type Hook func(*Manager)

// Manager owns the desktop tree and runs the event loop. Everything is
// mutated on the loop goroutine; mu exists only so a config reload can be
// applied from outside it.
type Manager struct {
	mu   sync.Mutex
	conn x.Conn
	log  *util.Logger
	cfg  *config.Config

	desktop  *state.Desktop
	declared *outputs.Layout
	bound    map[outputs.Handle]string // declared entry -> live output name
	registry *bindings.Registry
	hooks    map[HookState][]Hook

	focused x.Xid
}

// New builds a manager over an established connection. Setup must run
// before the loop starts.
func New(conn x.Conn, logger *util.Logger, cfg *config.Config) *Manager {
	return &Manager{
		conn:     conn,
		log:      logger,
		cfg:      cfg,
		desktop:  state.NewDesktop(cfg.Workspaces, cfg.Layouts),
		declared: outputs.NewLayout(),
		bound:    make(map[outputs.Handle]string),
		registry: bindings.NewRegistry(),
		hooks:    make(map[HookState][]Hook),
		focused:  x.None,
	}
}

// Desktop exposes the state tree, primarily to hooks.
func (m *Manager) Desktop() *state.Desktop { return m.desktop }

// Config returns the live configuration.
func (m *Manager) Config() *config.Config { return m.cfg }

// Conn returns the display connection, primarily to hooks.
func (m *Manager) Conn() x.Conn { return m.conn }

// AddHook registers h to run after the given transition. Hooks run in
// registration order.
func (m *Manager) AddHook(s HookState, h Hook) {
	m.hooks[s] = append(m.hooks[s], h)
}

func (m *Manager) runHooks(s HookState) {
	for _, h := range m.hooks[s] {
		h(m)
	}
}

// Setup declares the configured output arrangement, matches it against the
// live outputs, and adopts any windows that already exist. Grab
// registration happens in BindConfig since it needs the key resolver.
func (m *Manager) Setup() error {
	for _, oc := range m.cfg.Outputs {
		pos, err := m.declaredPosition(oc)
		if err != nil {
			return err
		}
		if _, err := m.declared.Add(outputs.Entry{
			Name:  oc.Name,
			Ident: outputs.Identifier{Name: oc.Name, Make: oc.Make, Model: oc.Model},
			Pos:   pos,
		}); err != nil {
			return fmt.Errorf("output layout: %w", err)
		}
	}
	if err := m.detectOutputs(); err != nil {
		return err
	}
	m.adoptExisting()
	m.runHooks(HookStartup)
	return nil
}

// declaredPosition translates a config position into an arena reference.
// Entries are declared in document order, so referents resolve by name
// among the entries already added.
func (m *Manager) declaredPosition(oc config.OutputConfig) (outputs.Position, error) {
	byName := func(name string) (outputs.Handle, error) {
		for _, h := range m.declared.Handles() {
			if e, ok := m.declared.Get(h); ok && e.Name == name {
				return h, nil
			}
		}
		return 0, fmt.Errorf("output %q: referent %q not declared before it", oc.Name, name)
	}
	switch {
	case oc.At != nil:
		return outputs.AtPoint{P: x.Point{X: oc.At.X, Y: oc.At.Y}}, nil
	case oc.RightOf != "":
		h, err := byName(oc.RightOf)
		return outputs.RelativeTo{Of: h, Dir: outputs.Right}, err
	case oc.LeftOf != "":
		h, err := byName(oc.LeftOf)
		return outputs.RelativeTo{Of: h, Dir: outputs.Left}, err
	case oc.Above != "":
		h, err := byName(oc.Above)
		return outputs.RelativeTo{Of: h, Dir: outputs.Above}, err
	case oc.Below != "":
		h, err := byName(oc.Below)
		return outputs.RelativeTo{Of: h, Dir: outputs.Below}, err
	case oc.Mirror != "":
		h, err := byName(oc.Mirror)
		return outputs.Mirroring{Of: h}, err
	default:
		return nil, nil
	}
}

// detectOutputs matches the live outputs against the declared arrangement
// and rebuilds the monitor list. Declared positions override the server's
// placement where a match binds.
func (m *Manager) detectOutputs() error {
	live, err := m.conn.Outputs()
	if err != nil {
		if x.IsFatal(err) {
			return err
		}
		m.log.Errorf("output query failed: %v", err)
		return nil
	}

	// release bindings whose live output disappeared
	present := make(map[string]bool, len(live))
	for _, out := range live {
		if out.Connected {
			present[out.Name] = true
		}
	}
	for h, name := range m.bound {
		if !present[name] {
			m.declared.Unmatch(h)
			delete(m.bound, h)
		}
	}

	placed := make(map[outputs.Handle]x.Geometry)
	var mons []x.OutputInfo
	for _, out := range live {
		if !out.Connected {
			continue
		}
		geom := out.Geom
		if h, ok := m.declared.Match(out); ok {
			m.bound[h] = out.Name
			if p, ok := m.declared.Origin(h, out.Geom, func(ph outputs.Handle) (x.Geometry, bool) {
				g, ok := placed[ph]
				return g, ok
			}); ok {
				geom.X, geom.Y = p.X, p.Y
			}
			placed[h] = geom
		}
		out.Geom = geom
		mons = append(mons, out)
	}

	m.desktop.SetMonitors(mons)
	m.log.Infof("outputs: %d connected", len(mons))
	return nil
}

// adoptExisting manages the mapped, non-override-redirect windows that
// predate the manager, the same way a map request would.
func (m *Manager) adoptExisting() {
	root := m.conn.Root()
	children, err := m.conn.QueryTree(root.ID)
	if err != nil {
		m.log.Errorf("query tree: %v", err)
		return
	}
	for _, child := range children {
		attrs, err := m.conn.WindowAttributes(child)
		if err != nil || attrs.OverrideRedirect || attrs.MapState != x.Viewable {
			continue
		}
		m.manage(child, false)
	}
}

// BindConfig populates the binding registry from the configuration, using
// resolve to turn key names into hardware keycodes, then grabs every chord
// on the root window. Named actions the manager does not know are
// rejected.
func (m *Manager) BindConfig(resolve func(name string) (x.KeyCode, bool)) error {
	root := m.conn.Root()
	for _, kb := range m.cfg.Keybinds {
		chord, err := bindings.ParseKeyChord(kb.Chord)
		if err != nil {
			return err
		}
		code, ok := resolve(chord.Key)
		if !ok {
			return fmt.Errorf("keybind %q: unknown key %q", kb.Chord, chord.Key)
		}
		act, err := m.keyAction(kb)
		if err != nil {
			return err
		}
		bind := bindings.Keybind{Mask: chord.Mask, Code: code}
		m.registry.BindKey(bind, act)
		if err := m.conn.GrabKey(bind.Mask, bind.Code, root.ID); err != nil {
			m.log.Errorf("grab %q: %v", kb.Chord, err)
		}
	}
	for _, mb := range m.cfg.Mousebinds {
		chord, err := bindings.ParseMouseChord(mb.Chord)
		if err != nil {
			return err
		}
		act, err := m.mouseAction(mb)
		if err != nil {
			return err
		}
		bind := bindings.Mousebind{Mask: chord.Mask, Button: chord.Button, Kind: chord.Kind}
		m.registry.BindMouse(bind, act)
		if err := m.conn.GrabButton(bind.Mask, bind.Button, root.ID, false); err != nil {
			m.log.Errorf("grab %q: %v", mb.Chord, err)
		}
	}
	return nil
}

// Run drives the event loop until the stream ends, a fatal error occurs,
// or ctx is cancelled. Per-event errors are logged and the loop continues.
func (m *Manager) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev, err := m.conn.PollNextEvent()
		if err != nil {
			if x.IsFatal(err) {
				return err
			}
			m.log.Errorf("event poll: %v", err)
			continue
		}
		if ev == nil {
			m.log.Infof("event stream ended")
			return nil
		}
		m.mu.Lock()
		m.dispatch(ev)
		m.mu.Unlock()
	}
}

// SetConfig swaps in a new configuration, rebuilding what depends on it.
// Workspaces are not renamed mid-run; gaps, borders, float classes and
// focus behavior take effect immediately.
func (m *Manager) SetConfig(cfg *config.Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = cfg
	m.relayout()
}

// relayout recomputes and applies the active layout of every displayed
// workspace. Cached geometry moves only after the server accepted the
// configure.
func (m *Manager) relayout() {
	for _, mon := range m.desktop.Monitors() {
		ws, ok := m.desktop.Workspace(mon.Workspace)
		if !ok {
			continue
		}
		m.relayoutWorkspace(ws, mon.Output.Geom)
	}
}

func (m *Manager) relayoutWorkspace(ws *state.Workspace, screen x.Geometry) {
	active := ws.ActiveLayout()
	if active == nil {
		return
	}
	ctx := layout.Context{
		Screen:      screen,
		Gaps:        layout.Gaps{Inner: m.cfg.Gaps.Inner, Outer: m.cfg.Gaps.Outer},
		BorderWidth: m.cfg.BorderWidth,
	}
	for _, act := range active.Compute(ws.Snapshot(), ctx) {
		switch act.Kind {
		case layout.ActionResize:
			if err := m.conn.ConfigureWindow(act.Window, x.MoveResize(act.Geom)); err != nil {
				m.log.Errorf("configure %s: %v", act.Window, err)
				continue
			}
			if w, ok := ws.FindWindow(act.Window); ok {
				w.SetGeometry(act.Geom)
			}
		case layout.ActionStack:
			if err := m.conn.ConfigureWindow(act.Window, x.Restack(act.Stack)); err != nil {
				m.log.Errorf("restack %s: %v", act.Window, err)
			}
		}
	}
}

// visible reports whether ws is displayed on some monitor.
func (m *Manager) visible(ws *state.Workspace) bool {
	for _, mon := range m.desktop.Monitors() {
		if mon.Workspace == ws.Name() {
			return true
		}
	}
	return false
}

func (m *Manager) screenFor(ws *state.Workspace) (x.Geometry, bool) {
	return m.desktop.ScreenFor(ws.Name())
}

// focusWindow gives input focus to id and records it, firing the focus
// hook. The cache moves only if the server accepted the focus change.
func (m *Manager) focusWindow(id x.Xid) {
	if err := m.conn.SetInputFocus(id); err != nil {
		m.log.Errorf("focus %s: %v", id, err)
		return
	}
	if _, ws, ok := m.desktop.FindWindow(id); ok {
		ws.FocusWindow(id)
	}
	if m.focused == id {
		return
	}
	m.focused = id
	m.runHooks(HookFocusChanged)
}

// Focused returns the id of the window holding input focus, or x.None.
func (m *Manager) Focused() x.Xid { return m.focused }

// GoToWorkspace switches the current workspace, hiding windows that leave
// the screen and showing the ones that arrive.
func (m *Manager) GoToWorkspace(name string) error {
	prev, next, err := m.desktop.GoTo(name)
	if err != nil {
		return err
	}
	if prev == next {
		return nil
	}
	if prev != nil && !m.visible(prev) {
		for _, w := range prev.Windows() {
			if err := m.conn.UnmapWindow(w.ID()); err != nil {
				m.log.Errorf("unmap %s: %v", w.ID(), err)
			}
		}
	}
	for _, w := range next.Windows() {
		if err := m.conn.MapWindow(w.ID()); err != nil {
			m.log.Errorf("map %s: %v", w.ID(), err)
		}
	}
	m.relayout()
	if w := next.Focused(); w != nil {
		m.focusWindow(w.ID())
	}
	m.runHooks(HookWorkspaceChanged)
	return nil
}

// SendToWorkspace moves the focused window to the named workspace.
func (m *Manager) SendToWorkspace(name string) error {
	ws := m.desktop.Current()
	if ws == nil {
		return nil
	}
	w := ws.Focused()
	if w == nil {
		return nil
	}
	if err := m.desktop.SendWindowTo(w.ID(), name); err != nil {
		return err
	}
	target, _ := m.desktop.Workspace(name)
	if !m.visible(target) {
		if err := m.conn.UnmapWindow(w.ID()); err != nil {
			m.log.Errorf("unmap %s: %v", w.ID(), err)
		}
	}
	m.relayout()
	if next := ws.Focused(); next != nil {
		m.focusWindow(next.ID())
	}
	return nil
}

// CloseFocused destroys the focused window. The state tree is updated when
// the destroy notify arrives, not here.
func (m *Manager) CloseFocused() {
	ws := m.desktop.Current()
	if ws == nil {
		return
	}
	if w := ws.Focused(); w != nil {
		if err := m.conn.DestroyWindow(w.ID()); err != nil {
			m.log.Errorf("destroy %s: %v", w.ID(), err)
		}
	}
}

// CycleFocus moves focus around the current workspace's ring.
func (m *Manager) CycleFocus(dir ring.Direction) {
	ws := m.desktop.Current()
	if ws == nil {
		return
	}
	ws.CycleFocus(dir)
	if w := ws.Focused(); w != nil {
		m.focusWindow(w.ID())
	}
}

// RotateWindows rotates the current workspace's ring and relayouts.
func (m *Manager) RotateWindows(dir ring.Direction) {
	ws := m.desktop.Current()
	if ws == nil {
		return
	}
	ws.Rotate(dir)
	m.relayout()
}

// SwapFocused exchanges the focused window with its ring neighbor.
func (m *Manager) SwapFocused(dir ring.Direction) {
	ws := m.desktop.Current()
	if ws == nil {
		return
	}
	ws.SwapFocused(dir)
	m.relayout()
}

// CycleLayout switches the current workspace's active layout.
func (m *Manager) CycleLayout(dir ring.Direction) {
	ws := m.desktop.Current()
	if ws == nil {
		return
	}
	ws.CycleLayout(dir)
	m.relayout()
}

// SendLayoutUpdate delivers an update to the current workspace's active
// layout and reapplies it.
func (m *Manager) SendLayoutUpdate(u layout.Update) {
	ws := m.desktop.Current()
	if ws == nil {
		return
	}
	ws.SendUpdate(u)
	m.relayout()
}

// ToggleFloat flips the focused window between tiled and floating.
func (m *Manager) ToggleFloat() {
	ws := m.desktop.Current()
	if ws == nil {
		return
	}
	if w := ws.Focused(); w != nil {
		w.Floating = !w.Floating
		m.relayout()
	}
}

// Spawn launches an external command without waiting on it.
func (m *Manager) Spawn(command string, args ...string) {
	util.Spawn(m.log, command, args...)
}
