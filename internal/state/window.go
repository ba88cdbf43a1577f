// Package state holds the manager's owned view of the session: windows,
// the workspaces that ring them, and the desktop that rings the workspaces.
// Nothing here talks to the display server except the explicit refresh
// helpers, which read through an x.Conn.
package state

import (
	"github.com/cartoon-raccoon/perch/internal/x"
)

// Window is one managed client window.
type Window struct {
	win x.XWindow

	Name     string
	Instance string
	Class    string

	Floating bool
	Urgent   bool

	Hints     *x.WmHints
	SizeHints *x.WmSizeHints
}

// NewWindow builds a Window for win, reading its ICCCM properties through
// the connection. Absent or malformed properties read as unset.
func NewWindow(c x.Conn, win x.XWindow) *Window {
	w := &Window{win: win}
	w.RefreshProperties(c)
	return w
}

// ID returns the window's resource id.
func (w *Window) ID() x.Xid { return w.win.ID }

// Geometry returns the cached geometry.
func (w *Window) Geometry() x.Geometry { return w.win.Geom }

// SetGeometry updates the cached geometry. Callers update the cache only
// after the server confirmed the configure.
func (w *Window) SetGeometry(g x.Geometry) { w.win.Geom = g }

// RefreshProperties re-reads name, class and hint records. Used at manage
// time and on property change notifications.
func (w *Window) RefreshProperties(c x.Conn) {
	w.Name = x.WMName(c, w.win.ID)
	w.Instance, w.Class = x.WMClass(c, w.win.ID)
	w.Hints = x.WMHintsOf(c, w.win.ID)
	w.SizeHints = x.SizeHintsOf(c, w.win.ID)
	w.Urgent = w.Hints != nil && w.Hints.Urgent()
}

// PrefersFloat reports whether the client's own hints ask to float: a
// pinned size or a transient parent marks dialogs and splash windows.
func (w *Window) PrefersFloat(c x.Conn) bool {
	if w.SizeHints != nil && w.SizeHints.FixedSize() {
		return true
	}
	_, transient := x.TransientFor(c, w.win.ID)
	return transient
}
