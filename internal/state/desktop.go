package state

import (
	"fmt"

	"github.com/cartoon-raccoon/perch/internal/layout"
	"github.com/cartoon-raccoon/perch/internal/ring"
	"github.com/cartoon-raccoon/perch/internal/x"
)

// Monitor pairs a live output with the workspace it displays.
type Monitor struct {
	Output    x.OutputInfo
	Workspace string
}

// Desktop is the root of the state tree: a ring of workspaces, of which the
// focused one is current, and the monitors they are displayed on. A
// workspace is displayed on at most one monitor at a time.
type Desktop struct {
	workspaces *ring.Ring[*Workspace]
	monitors   []Monitor
}

// NewDesktop builds a desktop with one workspace per name, each carrying
// the named layouts. The first workspace is current. Layouts hold
// per-workspace state, so every workspace gets fresh instances; with no
// layout names the workspace default applies.
func NewDesktop(names, layoutNames []string) *Desktop {
	d := &Desktop{workspaces: ring.New[*Workspace]()}
	for _, n := range names {
		var ls []layout.Layout
		for _, ln := range layoutNames {
			if l, ok := layout.New(ln); ok {
				ls = append(ls, l)
			}
		}
		d.workspaces.Add(NewWorkspace(n, ls...))
	}
	return d
}

// Current returns the current workspace, or nil when the desktop has none.
func (d *Desktop) Current() *Workspace {
	ws, ok := d.workspaces.Focused()
	if !ok {
		return nil
	}
	return ws
}

// Workspace returns the workspace with the given name.
func (d *Desktop) Workspace(name string) (*Workspace, bool) {
	idx := d.workspaces.IndexBy(func(ws *Workspace) bool { return ws.Name() == name })
	if idx == ring.None {
		return nil, false
	}
	return d.workspaces.Get(idx)
}

// Workspaces returns all workspaces in ring order. The slice is shared;
// callers must not grow or shrink it.
func (d *Desktop) Workspaces() []*Workspace {
	return d.workspaces.Iter()
}

// GoTo makes the named workspace current, returning the workspace switched
// away from. If the target is displayed on another monitor, the two
// monitors swap workspaces so no workspace shows twice.
func (d *Desktop) GoTo(name string) (prev, next *Workspace, err error) {
	idx := d.workspaces.IndexBy(func(ws *Workspace) bool { return ws.Name() == name })
	if idx == ring.None {
		return nil, nil, fmt.Errorf("no workspace named %q", name)
	}
	prev = d.Current()
	d.workspaces.SetFocused(idx)
	next = d.Current()

	if prev != nil && prev != next {
		pi := d.monitorIdx(prev.Name())
		ni := d.monitorIdx(next.Name())
		switch {
		case pi >= 0 && ni >= 0:
			d.monitors[pi].Workspace, d.monitors[ni].Workspace =
				d.monitors[ni].Workspace, d.monitors[pi].Workspace
		case pi >= 0:
			d.monitors[pi].Workspace = next.Name()
		}
	}
	return prev, next, nil
}

// CycleWorkspace makes the next or previous workspace current, by name.
func (d *Desktop) CycleWorkspace(dir ring.Direction) (prev, next *Workspace) {
	prev = d.Current()
	if prev == nil {
		return nil, nil
	}
	idx := d.workspaces.FocusedIdx()
	n := d.workspaces.Len()
	switch dir {
	case ring.Forward:
		idx = (idx + 1) % n
	case ring.Backward:
		idx = (idx - 1 + n) % n
	}
	ws, _ := d.workspaces.Get(idx)
	_, next, _ = d.GoTo(ws.Name())
	return prev, next
}

// FindWindow locates a managed window across all workspaces.
func (d *Desktop) FindWindow(id x.Xid) (*Window, *Workspace, bool) {
	for _, ws := range d.workspaces.Iter() {
		if w, ok := ws.FindWindow(id); ok {
			return w, ws, true
		}
	}
	return nil, nil, false
}

// RemoveWindow removes a window from whichever single workspace manages it.
func (d *Desktop) RemoveWindow(id x.Xid) (*Window, *Workspace, bool) {
	for _, ws := range d.workspaces.Iter() {
		if w, ok := ws.RemoveWindow(id); ok {
			return w, ws, true
		}
	}
	return nil, nil, false
}

// SendWindowTo moves a managed window to the named workspace. Moving a
// window to the workspace it is already on is a no-op.
func (d *Desktop) SendWindowTo(id x.Xid, name string) error {
	target, ok := d.Workspace(name)
	if !ok {
		return fmt.Errorf("no workspace named %q", name)
	}
	_, from, ok := d.FindWindow(id)
	if !ok {
		return fmt.Errorf("window %s is not managed", id)
	}
	if from == target {
		return nil
	}
	w, _ := from.RemoveWindow(id)
	target.AddWindow(w)
	return nil
}

// SetMonitors replaces the monitor list, assigning workspaces to outputs in
// ring order. Existing assignments are kept where the output survives.
func (d *Desktop) SetMonitors(outs []x.OutputInfo) {
	prev := make(map[string]string, len(d.monitors))
	for _, m := range d.monitors {
		prev[m.Output.Name] = m.Workspace
	}

	taken := make(map[string]bool, len(outs))
	monitors := make([]Monitor, 0, len(outs))
	for _, out := range outs {
		m := Monitor{Output: out}
		if ws, ok := prev[out.Name]; ok && !taken[ws] {
			m.Workspace = ws
			taken[ws] = true
		}
		monitors = append(monitors, m)
	}

	// fill unassigned monitors with the first free workspaces
	for i := range monitors {
		if monitors[i].Workspace != "" {
			continue
		}
		for _, ws := range d.workspaces.Iter() {
			if !taken[ws.Name()] {
				monitors[i].Workspace = ws.Name()
				taken[ws.Name()] = true
				break
			}
		}
	}
	d.monitors = monitors
}

// Monitors returns the current monitor list.
func (d *Desktop) Monitors() []Monitor {
	return d.monitors
}

func (d *Desktop) monitorIdx(workspace string) int {
	for i, m := range d.monitors {
		if m.Workspace == workspace {
			return i
		}
	}
	return -1
}

// ScreenFor returns the geometry of the monitor displaying the named
// workspace. Workspaces not on any monitor fall back to the first monitor,
// and a monitorless desktop reports false.
func (d *Desktop) ScreenFor(workspace string) (x.Geometry, bool) {
	if i := d.monitorIdx(workspace); i >= 0 {
		return d.monitors[i].Output.Geom, true
	}
	if len(d.monitors) > 0 {
		return d.monitors[0].Output.Geom, true
	}
	return x.Geometry{}, false
}
