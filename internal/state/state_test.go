package state

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cartoon-raccoon/perch/internal/layout"
	"github.com/cartoon-raccoon/perch/internal/ring"
	"github.com/cartoon-raccoon/perch/internal/x"
)

func win(id x.Xid) *Window {
	return &Window{win: x.XWindow{ID: id, Geom: x.Geometry{Width: 100, Height: 100}}}
}

// recordingLayout captures updates so tests can see who received them.
type recordingLayout struct {
	name    string
	updates []layout.Update
}

func (l *recordingLayout) Name() string         { return l.name }
func (l *recordingLayout) Style() layout.Style  { return layout.StyleTiled }
func (l *recordingLayout) ReceiveUpdate(u layout.Update) {
	l.updates = append(l.updates, u)
}
func (l *recordingLayout) Compute(layout.Snapshot, layout.Context) []layout.Action {
	return nil
}

func TestWorkspaceFirstWindowTakesFocus(t *testing.T) {
	ws := NewWorkspace("main")
	if ws.Focused() != nil {
		t.Fatalf("empty workspace should have no focus")
	}
	ws.AddWindow(win(1))
	ws.AddWindow(win(2))
	if got := ws.Focused(); got == nil || got.ID() != 1 {
		t.Fatalf("first window should hold focus, got %v", got)
	}
}

func TestWorkspaceRemoveFocusedWraps(t *testing.T) {
	ws := NewWorkspace("main")
	for id := x.Xid(1); id <= 3; id++ {
		ws.AddWindow(win(id))
	}
	ws.FocusWindow(3)
	removed, ok := ws.RemoveWindow(3)
	if !ok || removed.ID() != 3 {
		t.Fatalf("remove returned %v, %v", removed, ok)
	}
	if got := ws.Focused(); got == nil || got.ID() != 1 {
		t.Fatalf("focus should wrap to the first window, got %v", got)
	}
	if ws.Contains(3) {
		t.Fatalf("removed window still present")
	}
}

func TestWorkspaceSwapFocused(t *testing.T) {
	ws := NewWorkspace("main")
	for id := x.Xid(1); id <= 3; id++ {
		ws.AddWindow(win(id))
	}
	ws.FocusWindow(2)
	ws.SwapFocused(ring.Forward)

	var order []x.Xid
	for _, w := range ws.Windows() {
		order = append(order, w.ID())
	}
	if diff := cmp.Diff([]x.Xid{1, 3, 2}, order); diff != "" {
		t.Fatalf("order after swap (-want +got):\n%s", diff)
	}
	if got := ws.Focused(); got.ID() != 2 {
		t.Fatalf("focus should follow the swapped window, got %s", got.ID())
	}
}

func TestCycleLayoutPreservesMembership(t *testing.T) {
	ws := NewWorkspace("main")
	ws.AddWindow(win(1))
	ws.AddWindow(win(2))
	ws.FocusWindow(2)

	if got := ws.ActiveLayout().Name(); got != "dtiled" {
		t.Fatalf("stock active layout = %q", got)
	}
	ws.CycleLayout(ring.Forward)
	if got := ws.ActiveLayout().Name(); got != "floating" {
		t.Fatalf("active layout after cycle = %q", got)
	}
	if ws.Len() != 2 || ws.Focused().ID() != 2 {
		t.Fatalf("layout switch disturbed windows: len=%d focused=%v", ws.Len(), ws.Focused())
	}
}

func TestSendUpdateReachesOnlyActiveLayout(t *testing.T) {
	a := &recordingLayout{name: "a"}
	b := &recordingLayout{name: "b"}
	ws := NewWorkspace("main", a, b)

	ws.SendUpdate(layout.ResizeMain{Delta: 0.1})
	if len(a.updates) != 1 || len(b.updates) != 0 {
		t.Fatalf("update delivery: a=%d b=%d", len(a.updates), len(b.updates))
	}

	ws.CycleLayout(ring.Forward)
	ws.SendUpdate(layout.ResizeMain{Delta: 0.1})
	if len(a.updates) != 1 || len(b.updates) != 1 {
		t.Fatalf("update delivery after cycle: a=%d b=%d", len(a.updates), len(b.updates))
	}
}

func TestSnapshotOrderAndFocus(t *testing.T) {
	ws := NewWorkspace("main")
	ws.AddWindow(win(10))
	floater := win(20)
	floater.Floating = true
	ws.AddWindow(floater)
	ws.FocusWindow(20)

	snap := ws.Snapshot()
	want := layout.Snapshot{
		Clients: []layout.Client{
			{ID: 10, Geom: x.Geometry{Width: 100, Height: 100}},
			{ID: 20, Geom: x.Geometry{Width: 100, Height: 100}, Floating: true},
		},
		Focused: 1,
	}
	if diff := cmp.Diff(want, snap); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestDesktopGoTo(t *testing.T) {
	d := NewDesktop([]string{"1", "2", "3"}, nil)
	if d.Current().Name() != "1" {
		t.Fatalf("first workspace should start current")
	}
	prev, next, err := d.GoTo("3")
	if err != nil {
		t.Fatalf("GoTo: %v", err)
	}
	if prev.Name() != "1" || next.Name() != "3" {
		t.Fatalf("GoTo returned prev=%q next=%q", prev.Name(), next.Name())
	}
	if _, _, err := d.GoTo("9"); err == nil {
		t.Fatalf("GoTo should reject an unknown workspace")
	}
}

func TestDesktopRemovesFromExactlyOneWorkspace(t *testing.T) {
	d := NewDesktop([]string{"1", "2"}, nil)
	ws1, _ := d.Workspace("1")
	ws2, _ := d.Workspace("2")
	ws1.AddWindow(win(7))
	ws2.AddWindow(win(8))

	w, from, ok := d.RemoveWindow(7)
	if !ok || w.ID() != 7 || from != ws1 {
		t.Fatalf("RemoveWindow(7) = %v, %v, %v", w, from, ok)
	}
	if ws1.Contains(7) || !ws2.Contains(8) {
		t.Fatalf("removal touched the wrong workspace")
	}
	if _, _, ok := d.RemoveWindow(7); ok {
		t.Fatalf("second removal should find nothing")
	}
}

func TestSendWindowTo(t *testing.T) {
	d := NewDesktop([]string{"1", "2"}, nil)
	ws1, _ := d.Workspace("1")
	ws2, _ := d.Workspace("2")
	ws1.AddWindow(win(5))

	if err := d.SendWindowTo(5, "2"); err != nil {
		t.Fatalf("SendWindowTo: %v", err)
	}
	if ws1.Contains(5) || !ws2.Contains(5) {
		t.Fatalf("window did not move")
	}

	// moving to the same workspace is a no-op
	if err := d.SendWindowTo(5, "2"); err != nil {
		t.Fatalf("same-workspace move: %v", err)
	}
	if ws2.Len() != 1 {
		t.Fatalf("same-workspace move duplicated the window")
	}

	if err := d.SendWindowTo(5, "9"); err == nil {
		t.Fatalf("unknown target should error")
	}
}

func TestMonitorsSwapOnGoTo(t *testing.T) {
	d := NewDesktop([]string{"1", "2", "3"}, nil)
	d.SetMonitors([]x.OutputInfo{
		{Name: "DP-1", Geom: x.Geometry{Width: 1920, Height: 1080}},
		{Name: "HDMI-1", Geom: x.Geometry{X: 1920, Width: 1280, Height: 1024}},
	})

	mons := d.Monitors()
	if mons[0].Workspace != "1" || mons[1].Workspace != "2" {
		t.Fatalf("initial assignment: %+v", mons)
	}

	// workspace 2 is on HDMI-1; switching to it from 1 swaps the monitors
	if _, _, err := d.GoTo("2"); err != nil {
		t.Fatalf("GoTo: %v", err)
	}
	mons = d.Monitors()
	if mons[0].Workspace != "2" || mons[1].Workspace != "1" {
		t.Fatalf("workspaces should swap monitors: %+v", mons)
	}
}

func TestScreenFor(t *testing.T) {
	d := NewDesktop([]string{"1", "2", "3"}, nil)
	if _, ok := d.ScreenFor("1"); ok {
		t.Fatalf("monitorless desktop should report no screen")
	}
	d.SetMonitors([]x.OutputInfo{
		{Name: "DP-1", Geom: x.Geometry{Width: 1920, Height: 1080}},
	})
	g, ok := d.ScreenFor("1")
	if !ok || g.Width != 1920 {
		t.Fatalf("ScreenFor(1) = %+v, %v", g, ok)
	}
	// a workspace off-monitor falls back to the first monitor
	if g, ok = d.ScreenFor("3"); !ok || g.Width != 1920 {
		t.Fatalf("fallback screen = %+v, %v", g, ok)
	}
}

func TestDesktopBuildsWorkspacesFromLayoutNames(t *testing.T) {
	d := NewDesktop([]string{"1", "2"}, []string{"floating"})
	for _, ws := range d.Workspaces() {
		if got := ws.ActiveLayout().Name(); got != "floating" {
			t.Fatalf("workspace %s active layout = %q, want floating", ws.Name(), got)
		}
		ws.CycleLayout(ring.Forward)
		if got := ws.ActiveLayout().Name(); got != "floating" {
			t.Fatalf("workspace %s cycled to %q, want floating only", ws.Name(), got)
		}
	}
}
