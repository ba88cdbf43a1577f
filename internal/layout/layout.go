// Package layout turns a workspace snapshot into a list of window actions.
// Layouts never touch manager state: Compute is a pure function of its
// inputs, and the engine applies the returned actions through the
// connection.
package layout

import "github.com/cartoon-raccoon/perch/internal/x"

// Style classifies how a layout treats client geometry.
type Style int

const (
	// StyleTiled layouts own window geometry and overrule client requests.
	StyleTiled Style = iota
	// StyleFloating layouts leave geometry to the clients.
	StyleFloating
)

func (s Style) String() string {
	switch s {
	case StyleTiled:
		return "tiled"
	case StyleFloating:
		return "floating"
	default:
		return "unknown"
	}
}

// Client is one window as a layout sees it. Geom is the client-owned
// geometry, used by floating layouts and ignored by tiled ones.
type Client struct {
	ID       x.Xid
	Geom     x.Geometry
	Floating bool
}

// Snapshot is the read-only view of a workspace handed to Compute. Clients
// are listed in ring order; Focused indexes into Clients, or is -1 when the
// workspace is empty.
type Snapshot struct {
	Clients []Client
	Focused int
}

// Context carries the per-output parameters a layout computes against.
type Context struct {
	Screen      x.Geometry
	Gaps        Gaps
	BorderWidth int
}

// ActionKind selects what an Action does to its window.
type ActionKind int

const (
	// ActionResize moves and resizes the window to Geom.
	ActionResize ActionKind = iota
	// ActionStack restacks the window per Stack.
	ActionStack
)

// Action is one geometry or stacking change for the engine to apply.
type Action struct {
	Window x.Xid
	Kind   ActionKind
	Geom   x.Geometry
	Stack  x.StackMode
}

func resize(id x.Xid, g x.Geometry) Action {
	return Action{Window: id, Kind: ActionResize, Geom: g}
}

func raise(id x.Xid) Action {
	return Action{Window: id, Kind: ActionStack, Stack: x.StackAbove}
}

// Update is a type-erased message to the active layout. Layouts type-switch
// on the concrete updates they understand and ignore the rest, so new update
// kinds never break existing layouts.
type Update interface{}

// ResizeMain adjusts the main-area ratio of layouts that have one. Delta is
// a fraction of the screen, signed.
type ResizeMain struct {
	Delta float64
}

// Layout computes window geometry for a workspace.
//
// Compute must be pure: same snapshot and context, same actions, with no
// mutation of either. ReceiveUpdate is the only mutation point and affects
// only the layout's own parameters.
type Layout interface {
	Name() string
	Style() Style
	Compute(snap Snapshot, ctx Context) []Action
	ReceiveUpdate(u Update)
}

// New returns a fresh layout by name, for config-driven construction.
func New(name string) (Layout, bool) {
	switch name {
	case "dtiled":
		return NewDynamicTiled(), true
	case "floating":
		return NewFloating(), true
	default:
		return nil, false
	}
}
