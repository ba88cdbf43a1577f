package state

import (
	"github.com/cartoon-raccoon/perch/internal/layout"
	"github.com/cartoon-raccoon/perch/internal/ring"
	"github.com/cartoon-raccoon/perch/internal/x"
)

// Workspace is a named group of windows sharing one active layout. Windows
// live in a focus ring; layouts live in their own ring whose focused entry
// is the active one, so switching layouts never disturbs membership.
type Workspace struct {
	name    string
	windows *ring.Ring[*Window]
	layouts *ring.Ring[layout.Layout]
}

// NewWorkspace builds a workspace carrying the given layouts. With none
// given it gets the stock tiled and floating pair.
func NewWorkspace(name string, layouts ...layout.Layout) *Workspace {
	if len(layouts) == 0 {
		layouts = []layout.Layout{layout.NewDynamicTiled(), layout.NewFloating()}
	}
	return &Workspace{
		name:    name,
		windows: ring.New[*Window](),
		layouts: ring.FromSlice(layouts),
	}
}

func (ws *Workspace) Name() string { return ws.name }

func (ws *Workspace) Len() int { return ws.windows.Len() }

func (ws *Workspace) IsEmpty() bool { return ws.windows.IsEmpty() }

// AddWindow appends w to the ring. The first window added to an empty
// workspace becomes focused.
func (ws *Workspace) AddWindow(w *Window) {
	ws.windows.Add(w)
}

// RemoveWindow removes the window with the given id, returning it. Focus
// wraps to the next window when the focused one is removed.
func (ws *Workspace) RemoveWindow(id x.Xid) (*Window, bool) {
	return ws.windows.RemoveBy(func(w *Window) bool { return w.ID() == id })
}

// FindWindow returns the managed window with the given id.
func (ws *Workspace) FindWindow(id x.Xid) (*Window, bool) {
	idx := ws.windows.IndexBy(func(w *Window) bool { return w.ID() == id })
	if idx == ring.None {
		return nil, false
	}
	return ws.windows.Get(idx)
}

// Contains reports whether the workspace manages id.
func (ws *Workspace) Contains(id x.Xid) bool {
	_, ok := ws.FindWindow(id)
	return ok
}

// Focused returns the focused window, or nil on an empty workspace.
func (ws *Workspace) Focused() *Window {
	w, ok := ws.windows.Focused()
	if !ok {
		return nil
	}
	return w
}

// FocusWindow moves focus to the window with the given id.
func (ws *Workspace) FocusWindow(id x.Xid) bool {
	idx := ws.windows.IndexBy(func(w *Window) bool { return w.ID() == id })
	if idx == ring.None {
		return false
	}
	ws.windows.SetFocused(idx)
	return true
}

// CycleFocus moves window focus around the ring.
func (ws *Workspace) CycleFocus(dir ring.Direction) {
	ws.windows.CycleFocus(dir)
}

// Rotate rotates the window ring, carrying focus with the windows.
func (ws *Workspace) Rotate(dir ring.Direction) {
	ws.windows.Rotate(dir)
}

// SwapFocused exchanges the focused window with its neighbor in dir.
func (ws *Workspace) SwapFocused(dir ring.Direction) {
	idx := ws.windows.FocusedIdx()
	if idx == ring.None || ws.windows.Len() < 2 {
		return
	}
	var other int
	switch dir {
	case ring.Forward:
		other = (idx + 1) % ws.windows.Len()
	case ring.Backward:
		other = (idx - 1 + ws.windows.Len()) % ws.windows.Len()
	}
	ws.windows.Swap(idx, other)
}

// Windows returns the windows in ring order. The slice is shared; callers
// must not grow or shrink it.
func (ws *Workspace) Windows() []*Window {
	return ws.windows.Iter()
}

// ActiveLayout returns the workspace's active layout.
func (ws *Workspace) ActiveLayout() layout.Layout {
	l, ok := ws.layouts.Focused()
	if !ok {
		return nil
	}
	return l
}

// CycleLayout switches the active layout. Window membership and focus are
// untouched.
func (ws *Workspace) CycleLayout(dir ring.Direction) {
	ws.layouts.CycleFocus(dir)
}

// SendUpdate delivers u to the active layout only. Inactive layouts keep
// their parameters until they become active again.
func (ws *Workspace) SendUpdate(u layout.Update) {
	if l := ws.ActiveLayout(); l != nil {
		l.ReceiveUpdate(u)
	}
}

// Snapshot builds the read-only view the active layout computes against.
func (ws *Workspace) Snapshot() layout.Snapshot {
	snap := layout.Snapshot{Focused: ws.windows.FocusedIdx()}
	for _, w := range ws.windows.Iter() {
		snap.Clients = append(snap.Clients, layout.Client{
			ID:       w.ID(),
			Geom:     w.Geometry(),
			Floating: w.Floating,
		})
	}
	return snap
}
