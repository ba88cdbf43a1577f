package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cartoon-raccoon/perch/internal/x"
)

func testCtx() Context {
	return Context{
		Screen:      x.Geometry{X: 0, Y: 0, Width: 1920, Height: 1080},
		Gaps:        Gaps{Inner: 10, Outer: 20},
		BorderWidth: 2,
	}
}

func TestDynamicTiledEmptySnapshot(t *testing.T) {
	l := NewDynamicTiled()
	actions := l.Compute(Snapshot{Focused: -1}, testCtx())
	if len(actions) != 0 {
		t.Fatalf("expected no actions for empty snapshot, got %d", len(actions))
	}
}

func TestDynamicTiledSingleWindow(t *testing.T) {
	l := NewDynamicTiled()
	snap := Snapshot{Clients: []Client{{ID: 1}}, Focused: 0}
	actions := l.Compute(snap, testCtx())

	want := []Action{
		{Window: 1, Kind: ActionResize, Geom: x.Geometry{X: 22, Y: 22, Width: 1876, Height: 1036}},
	}
	if diff := cmp.Diff(want, actions); diff != "" {
		t.Fatalf("single window actions mismatch (-want +got):\n%s", diff)
	}
}

func TestDynamicTiledMainAndStack(t *testing.T) {
	l := NewDynamicTiled()
	snap := Snapshot{
		Clients: []Client{{ID: 1}, {ID: 2}, {ID: 3}},
		Focused: 0,
	}
	actions := l.Compute(snap, testCtx())
	if len(actions) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(actions))
	}
	if actions[0].Window != 1 {
		t.Fatalf("main column should go to the first client, got %s", actions[0].Window)
	}

	main := actions[0].Geom
	top, bottom := actions[1].Geom, actions[2].Geom
	if main.X != 22 || top.X <= main.X+main.Width {
		t.Fatalf("stack column must sit right of main: main=%+v top=%+v", main, top)
	}
	if bottom.Y <= top.Y {
		t.Fatalf("stack rows must descend: top=%+v bottom=%+v", top, bottom)
	}
	if top.Width != bottom.Width {
		t.Fatalf("stack rows must share a width: %d vs %d", top.Width, bottom.Width)
	}
}

func TestDynamicTiledFloatersRaisedNotResized(t *testing.T) {
	l := NewDynamicTiled()
	owned := x.Geometry{X: 300, Y: 200, Width: 400, Height: 300}
	snap := Snapshot{
		Clients: []Client{{ID: 1}, {ID: 2, Geom: owned, Floating: true}},
		Focused: 0,
	}
	actions := l.Compute(snap, testCtx())
	if len(actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(actions))
	}
	want := Action{Window: 2, Kind: ActionStack, Stack: x.StackAbove}
	if diff := cmp.Diff(want, actions[1]); diff != "" {
		t.Fatalf("floater action mismatch (-want +got):\n%s", diff)
	}
}

func TestDynamicTiledComputeIsPure(t *testing.T) {
	l := NewDynamicTiled()
	snap := Snapshot{Clients: []Client{{ID: 1}, {ID: 2}}, Focused: 1}
	first := l.Compute(snap, testCtx())
	second := l.Compute(snap, testCtx())
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated compute diverged (-first +second):\n%s", diff)
	}
	if snap.Focused != 1 || len(snap.Clients) != 2 {
		t.Fatalf("compute mutated its snapshot: %+v", snap)
	}
}

func TestDynamicTiledOversizedGapsClampToZero(t *testing.T) {
	l := NewDynamicTiled()
	ctx := Context{
		Screen: x.Geometry{Width: 100, Height: 100},
		Gaps:   Gaps{Inner: 10, Outer: 80},
	}
	actions := l.Compute(Snapshot{Clients: []Client{{ID: 1}, {ID: 2}}}, ctx)
	for _, a := range actions {
		if a.Geom.Width < 0 || a.Geom.Height < 0 {
			t.Fatalf("geometry went negative: %+v", a.Geom)
		}
	}
}

func TestResizeMainAdjustsAndClamps(t *testing.T) {
	l := NewDynamicTiled()
	snap := Snapshot{Clients: []Client{{ID: 1}, {ID: 2}}, Focused: 0}
	ctx := Context{Screen: x.Geometry{Width: 1000, Height: 500}}

	before := l.Compute(snap, ctx)[0].Geom.Width
	l.ReceiveUpdate(ResizeMain{Delta: 0.2})
	after := l.Compute(snap, ctx)[0].Geom.Width
	if after <= before {
		t.Fatalf("main width did not grow: before=%d after=%d", before, after)
	}

	for i := 0; i < 20; i++ {
		l.ReceiveUpdate(ResizeMain{Delta: 0.2})
	}
	if got := l.Compute(snap, ctx)[0].Geom.Width; got != 900 {
		t.Fatalf("ratio should clamp at 0.9, main width %d", got)
	}

	for i := 0; i < 20; i++ {
		l.ReceiveUpdate(ResizeMain{Delta: -0.2})
	}
	if got := l.Compute(snap, ctx)[0].Geom.Width; got != 100 {
		t.Fatalf("ratio should clamp at 0.1, main width %d", got)
	}
}

func TestUnrecognizedUpdateIgnored(t *testing.T) {
	type exotic struct{ n int }

	l := NewDynamicTiled()
	snap := Snapshot{Clients: []Client{{ID: 1}, {ID: 2}}, Focused: 0}
	ctx := Context{Screen: x.Geometry{Width: 1000, Height: 500}}

	before := l.Compute(snap, ctx)
	l.ReceiveUpdate(exotic{n: 42})
	l.ReceiveUpdate(nil)
	after := l.Compute(snap, ctx)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("unknown update changed layout output (-before +after):\n%s", diff)
	}
}

func TestFloatingRestoresClientGeometry(t *testing.T) {
	l := NewFloating()
	a := x.Geometry{X: 10, Y: 10, Width: 200, Height: 100}
	b := x.Geometry{X: 500, Y: 300, Width: 640, Height: 480}
	snap := Snapshot{
		Clients: []Client{{ID: 1, Geom: a}, {ID: 2, Geom: b, Floating: true}},
		Focused: 0,
	}
	want := []Action{
		{Window: 1, Kind: ActionResize, Geom: a},
		{Window: 2, Kind: ActionResize, Geom: b},
	}
	if diff := cmp.Diff(want, l.Compute(snap, testCtx())); diff != "" {
		t.Fatalf("floating actions mismatch (-want +got):\n%s", diff)
	}
}

func TestNewByName(t *testing.T) {
	for _, name := range []string{"dtiled", "floating"} {
		l, ok := New(name)
		if !ok || l.Name() != name {
			t.Fatalf("New(%q) = %v, %v", name, l, ok)
		}
	}
	if _, ok := New("spiral"); ok {
		t.Fatalf("unknown layout name should not construct")
	}
}
