package x

// Event is a normalized, backend-agnostic display-server event. The manager
// dispatches on the concrete type.
type Event interface {
	event()
}

// ConfigureNotify reports that a window's configuration changed. A notify
// for the root window signals an output reconfiguration.
type ConfigureNotify struct {
	Window Xid
	Geom   Geometry
}

// ConfigureRequest is a client asking for a new configuration.
type ConfigureRequest struct {
	Window Xid
	Config WindowConfig
}

// MapRequest is a client asking to be mapped.
type MapRequest struct {
	Window           Xid
	OverrideRedirect bool
}

// MapNotify reports that a window became mapped.
type MapNotify struct {
	Window Xid
}

// UnmapNotify reports that a window was unmapped. FromRoot is set when the
// event was selected on the root window, which is how withdrawal from
// management is signaled.
type UnmapNotify struct {
	Window   Xid
	FromRoot bool
}

// DestroyNotify reports that a window was destroyed.
type DestroyNotify struct {
	Window Xid
}

// EnterNotify reports the pointer entering a window. Grab is set when the
// crossing was caused by a grab rather than user motion.
type EnterNotify struct {
	Window Xid
	Grab   bool
}

// LeaveNotify reports the pointer leaving a window.
type LeaveNotify struct {
	Window Xid
	Grab   bool
}

// PropertyNotify reports a property change on a window.
type PropertyNotify struct {
	Window  Xid
	Name    string
	Deleted bool
}

// KeyPress reports a key chord. Mask is the raw modifier state; the manager
// cleans it before lookup.
type KeyPress struct {
	Window Xid
	Mask   ModMask
	Code   KeyCode
}

// KeyRelease is reported but carries no binding semantics.
type KeyRelease struct{}

// MouseEvent reports a pointer button press, release or drag motion.
type MouseEvent struct {
	Window Xid
	Mask   ModMask
	Button Button
	Kind   MouseEventKind
	Pos    Point
}

// ClientMessage is an unsolicited message from a client.
type ClientMessage struct {
	Window Xid
	Type   string
	Data   [5]uint32
}

// ScreenChange reports that the output configuration changed.
type ScreenChange struct{}

// UnknownEvent is the catchall for event codes the backend does not
// translate.
type UnknownEvent struct {
	Code uint8
}

func (ConfigureNotify) event()  {}
func (ConfigureRequest) event() {}
func (MapRequest) event()       {}
func (MapNotify) event()        {}
func (UnmapNotify) event()      {}
func (DestroyNotify) event()    {}
func (EnterNotify) event()      {}
func (LeaveNotify) event()      {}
func (PropertyNotify) event()   {}
func (KeyPress) event()         {}
func (KeyRelease) event()       {}
func (MouseEvent) event()       {}
func (ClientMessage) event()    {}
func (ScreenChange) event()     {}
func (UnknownEvent) event()     {}
