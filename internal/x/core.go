// Package x defines the backend-agnostic surface between the window manager
// core and a display server. The wire protocol itself lives behind the Conn
// interface; everything here is plain data.
package x

import "fmt"

// Xid is a server-assigned identifier for any server-side resource. It is
// only ever compared by value.
type Xid uint32

// None is the null resource id.
const None Xid = 0

func (id Xid) String() string {
	return fmt.Sprintf("0x%x", uint32(id))
}

// Point is a position in root-window coordinates.
type Point struct {
	X, Y int
}

// Geometry is a window rectangle in root-window coordinates.
type Geometry struct {
	X, Y          int
	Width, Height int
}

// TrimBorder shrinks the geometry on all four sides by the given border
// width, clamping width and height at zero.
func (g Geometry) TrimBorder(bw int) Geometry {
	g.X += bw
	g.Y += bw
	g.Width -= 2 * bw
	g.Height -= 2 * bw
	if g.Width < 0 {
		g.Width = 0
	}
	if g.Height < 0 {
		g.Height = 0
	}
	return g
}

// Contains reports whether the point lies inside the rectangle.
func (g Geometry) Contains(p Point) bool {
	return p.X >= g.X && p.X < g.X+g.Width && p.Y >= g.Y && p.Y < g.Y+g.Height
}

// XWindow pairs a window id with the manager's cached copy of its geometry.
// The cache is refreshed on every relevant event and on every move or resize
// the manager itself issues.
type XWindow struct {
	ID   Xid
	Geom Geometry
}

// StackMode is the stacking discipline for a configure call.
type StackMode int

const (
	StackAbove StackMode = iota
	StackBelow
)

// ConfigMask selects which fields of a WindowConfig are meaningful. The bit
// layout mirrors the configure-request value mask so a request can be
// filtered and forwarded without translation.
type ConfigMask uint16

const (
	ConfigX ConfigMask = 1 << iota
	ConfigY
	ConfigWidth
	ConfigHeight
	ConfigBorderWidth
	ConfigSibling
	ConfigStackMode
)

// WindowConfig carries the attributes of a configure call or request.
type WindowConfig struct {
	Mask        ConfigMask
	Geom        Geometry
	BorderWidth int
	Sibling     Xid
	StackMode   StackMode
}

// MoveResize builds a WindowConfig that places a window at the given
// geometry.
func MoveResize(geom Geometry) WindowConfig {
	return WindowConfig{
		Mask: ConfigX | ConfigY | ConfigWidth | ConfigHeight,
		Geom: geom,
	}
}

// Restack builds a WindowConfig that only changes stacking order.
func Restack(mode StackMode) WindowConfig {
	return WindowConfig{Mask: ConfigStackMode, StackMode: mode}
}

// WindowAttributes is the subset of window attributes the manager consults.
type WindowAttributes struct {
	OverrideRedirect bool
	MapState         MapState
}

// MapState is the server-side mapped state of a window.
type MapState int

const (
	Unmapped MapState = iota
	Unviewable
	Viewable
)

// PointerReply is the result of a pointer query.
type PointerReply struct {
	Pos   Point
	Child Xid
}

// OutputInfo describes one live output as reported by the server.
type OutputInfo struct {
	Name      string
	Make      string
	Model     string
	Geom      Geometry
	Primary   bool
	Connected bool
}

// Conn is the connection to the display server, as consumed by the manager
// core. One request is in flight at a time; every call is synchronous.
//
// Implementations translate backend events into Event values and report
// failures using the error types in this package so the manager can tell
// fatal transport errors from recoverable per-request ones.
type Conn interface {
	// PollNextEvent blocks until the next event arrives. It returns
	// (nil, nil) when the stream has ended cleanly and a ConnError when
	// the transport fails.
	PollNextEvent() (Event, error)

	// Root returns the root window of the managed screen.
	Root() XWindow

	// Outputs enumerates the live outputs.
	Outputs() ([]OutputInfo, error)

	GetGeometry(win Xid) (Geometry, error)
	QueryTree(win Xid) ([]Xid, error)
	QueryPointer(win Xid) (PointerReply, error)
	WindowAttributes(win Xid) (WindowAttributes, error)

	GrabKey(mask ModMask, code KeyCode, win Xid) error
	UngrabKey(mask ModMask, code KeyCode, win Xid) error
	GrabButton(mask ModMask, button Button, win Xid, confine bool) error
	UngrabButton(mask ModMask, button Button, win Xid) error
	GrabKeyboard() error
	UngrabKeyboard() error
	GrabPointer(win Xid, eventMask uint32) error
	UngrabPointer() error

	MapWindow(win Xid) error
	UnmapWindow(win Xid) error
	DestroyWindow(win Xid) error
	ConfigureWindow(win Xid, cfg WindowConfig) error
	// SendConfigureNotify sends a synthetic notify announcing geom as the
	// window's geometry, without moving the window. Used to answer
	// configure requests the layout refuses to honor.
	SendConfigureNotify(win Xid, geom Geometry) error
	SetInputFocus(win Xid) error
	ReparentWindow(win, parent Xid) error

	// GetProperty fetches and decodes the named property. A missing
	// property yields (nil, nil).
	GetProperty(win Xid, name string) (Property, error)
	SetProperty(win Xid, name string, prop Property) error
}
