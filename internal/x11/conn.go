// Package x11 implements the display connection over the X protocol using
// xgb. It translates between the wire protocol and the backend-agnostic
// types in internal/x; no manager policy lives here.
package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/cartoon-raccoon/perch/internal/util"
	"github.com/cartoon-raccoon/perch/internal/x"
)

// rootEventMask selects the events a window manager must see on the root:
// substructure redirection for map/configure requests, plus structure and
// property changes.
const rootEventMask = xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskSubstructureNotify |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskPropertyChange |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskLeaveWindow

// clientEventMask selects what the manager tracks on each managed client.
const clientEventMask = xproto.EventMaskStructureNotify |
	xproto.EventMaskPropertyChange |
	xproto.EventMaskEnterWindow

// Conn is the X11 implementation of x.Conn.
type Conn struct {
	xc     *xgb.Conn
	log    *util.Logger
	screen *xproto.ScreenInfo
	root   x.XWindow

	atoms     map[string]xproto.Atom
	atomNames map[xproto.Atom]string

	keysyms      []xproto.Keysym
	symsPerCode  int
	firstKeycode xproto.Keycode
}

// Connect opens the display, claims substructure redirection on the root,
// and initializes RANDR. A second window manager on the display shows up
// as an access error here, and a missing RANDR extension is a capability
// failure.
func Connect(logger *util.Logger) (*Conn, error) {
	xc, err := xgb.NewConn()
	if err != nil {
		return nil, &x.ConnError{Err: err}
	}

	setup := xproto.Setup(xc)
	if setup == nil || len(setup.Roots) == 0 {
		xc.Close()
		return nil, &x.ConnError{Err: fmt.Errorf("no screens in setup reply")}
	}
	screen := setup.DefaultScreen(xc)

	c := &Conn{
		xc:     xc,
		log:    logger,
		screen: screen,
		root: x.XWindow{
			ID: x.Xid(screen.Root),
			Geom: x.Geometry{
				Width:  int(screen.WidthInPixels),
				Height: int(screen.HeightInPixels),
			},
		},
		atoms:     make(map[string]xproto.Atom),
		atomNames: make(map[xproto.Atom]string),
	}

	if err := xproto.ChangeWindowAttributesChecked(xc, screen.Root,
		xproto.CwEventMask, []uint32{uint32(rootEventMask)}).Check(); err != nil {
		xc.Close()
		return nil, &x.ConnError{Err: fmt.Errorf("cannot select on root, is another manager running? %w", err)}
	}

	if err := randr.Init(xc); err != nil {
		xc.Close()
		return nil, &x.CapabilityError{Extension: "RANDR", Detail: err.Error()}
	}
	if err := randr.SelectInputChecked(xc, screen.Root,
		randr.NotifyMaskScreenChange|randr.NotifyMaskOutputChange|
			randr.NotifyMaskCrtcChange).Check(); err != nil {
		xc.Close()
		return nil, &x.CapabilityError{Extension: "RANDR", Detail: err.Error()}
	}

	if err := c.loadKeymap(); err != nil {
		xc.Close()
		return nil, err
	}
	return c, nil
}

// Close shuts the connection down.
func (c *Conn) Close() {
	c.xc.Close()
}

func (c *Conn) Root() x.XWindow { return c.root }

func (c *Conn) loadKeymap() error {
	first := xproto.Keycode(8)
	count := byte(255 - 8)
	reply, err := xproto.GetKeyboardMapping(c.xc, first, count).Reply()
	if err != nil {
		return &x.ConnError{Err: fmt.Errorf("keyboard mapping: %w", err)}
	}
	c.keysyms = reply.Keysyms
	c.symsPerCode = int(reply.KeysymsPerKeycode)
	c.firstKeycode = first
	return nil
}

// KeycodeOf resolves a chord key name to a hardware keycode through the
// loaded keyboard mapping.
func (c *Conn) KeycodeOf(name string) (x.KeyCode, bool) {
	sym, ok := keysymFromName(name)
	if !ok {
		return 0, false
	}
	for code := 0; code*c.symsPerCode < len(c.keysyms); code++ {
		for col := 0; col < c.symsPerCode; col++ {
			if c.keysyms[code*c.symsPerCode+col] == sym {
				return x.KeyCode(int(c.firstKeycode) + code), true
			}
		}
	}
	return 0, false
}

// atom interns a name, caching both directions.
func (c *Conn) atom(name string) (xproto.Atom, error) {
	if a, ok := c.atoms[name]; ok {
		return a, nil
	}
	reply, err := xproto.InternAtom(c.xc, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, &x.ProtocolError{Op: "InternAtom", Err: err}
	}
	c.atoms[name] = reply.Atom
	c.atomNames[reply.Atom] = name
	return reply.Atom, nil
}

func (c *Conn) atomName(a xproto.Atom) (string, error) {
	if n, ok := c.atomNames[a]; ok {
		return n, nil
	}
	reply, err := xproto.GetAtomName(c.xc, a).Reply()
	if err != nil {
		return "", &x.ProtocolError{Op: "GetAtomName", Err: err}
	}
	name := string(reply.Name)
	c.atoms[name] = a
	c.atomNames[a] = name
	return name, nil
}

func (c *Conn) GetGeometry(win x.Xid) (x.Geometry, error) {
	reply, err := xproto.GetGeometry(c.xc, xproto.Drawable(win)).Reply()
	if err != nil {
		return x.Geometry{}, &x.RequestError{Op: "GetGeometry", Win: win, Err: err}
	}
	return x.Geometry{
		X: int(reply.X), Y: int(reply.Y),
		Width: int(reply.Width), Height: int(reply.Height),
	}, nil
}

func (c *Conn) QueryTree(win x.Xid) ([]x.Xid, error) {
	reply, err := xproto.QueryTree(c.xc, xproto.Window(win)).Reply()
	if err != nil {
		return nil, &x.RequestError{Op: "QueryTree", Win: win, Err: err}
	}
	children := make([]x.Xid, len(reply.Children))
	for i, ch := range reply.Children {
		children[i] = x.Xid(ch)
	}
	return children, nil
}

func (c *Conn) QueryPointer(win x.Xid) (x.PointerReply, error) {
	reply, err := xproto.QueryPointer(c.xc, xproto.Window(win)).Reply()
	if err != nil {
		return x.PointerReply{}, &x.RequestError{Op: "QueryPointer", Win: win, Err: err}
	}
	return x.PointerReply{
		Pos:   x.Point{X: int(reply.RootX), Y: int(reply.RootY)},
		Child: x.Xid(reply.Child),
	}, nil
}

func (c *Conn) WindowAttributes(win x.Xid) (x.WindowAttributes, error) {
	reply, err := xproto.GetWindowAttributes(c.xc, xproto.Window(win)).Reply()
	if err != nil {
		return x.WindowAttributes{}, &x.RequestError{Op: "GetWindowAttributes", Win: win, Err: err}
	}
	return x.WindowAttributes{
		OverrideRedirect: reply.OverrideRedirect,
		MapState:         x.MapState(reply.MapState),
	}, nil
}

// quirkMasks are the ignorable modifier combinations each grab is repeated
// with, so chords still arrive while NumLock or Caps Lock are latched.
var quirkMasks = []uint16{
	0,
	uint16(x.Mod2),
	uint16(x.ModLock),
	uint16(x.Mod2 | x.ModLock),
}

func (c *Conn) GrabKey(mask x.ModMask, code x.KeyCode, win x.Xid) error {
	for _, quirk := range quirkMasks {
		err := xproto.GrabKeyChecked(c.xc, true, xproto.Window(win),
			uint16(mask)|quirk, xproto.Keycode(code),
			xproto.GrabModeAsync, xproto.GrabModeAsync).Check()
		if err != nil {
			return &x.RequestError{Op: "GrabKey", Win: win, Err: err}
		}
	}
	return nil
}

func (c *Conn) UngrabKey(mask x.ModMask, code x.KeyCode, win x.Xid) error {
	for _, quirk := range quirkMasks {
		err := xproto.UngrabKeyChecked(c.xc, xproto.Keycode(code),
			xproto.Window(win), uint16(mask)|quirk).Check()
		if err != nil {
			return &x.RequestError{Op: "UngrabKey", Win: win, Err: err}
		}
	}
	return nil
}

const buttonEventMask = xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease | xproto.EventMaskButtonMotion

func (c *Conn) GrabButton(mask x.ModMask, button x.Button, win x.Xid, confine bool) error {
	confineTo := xproto.Window(xproto.WindowNone)
	if confine {
		confineTo = xproto.Window(win)
	}
	for _, quirk := range quirkMasks {
		err := xproto.GrabButtonChecked(c.xc, true, xproto.Window(win),
			uint16(buttonEventMask), xproto.GrabModeAsync, xproto.GrabModeAsync,
			confineTo, xproto.CursorNone, byte(button), uint16(mask)|quirk).Check()
		if err != nil {
			return &x.RequestError{Op: "GrabButton", Win: win, Err: err}
		}
	}
	return nil
}

func (c *Conn) UngrabButton(mask x.ModMask, button x.Button, win x.Xid) error {
	for _, quirk := range quirkMasks {
		err := xproto.UngrabButtonChecked(c.xc, byte(button),
			xproto.Window(win), uint16(mask)|quirk).Check()
		if err != nil {
			return &x.RequestError{Op: "UngrabButton", Win: win, Err: err}
		}
	}
	return nil
}

func (c *Conn) GrabKeyboard() error {
	reply, err := xproto.GrabKeyboard(c.xc, true, c.screen.Root,
		xproto.TimeCurrentTime, xproto.GrabModeAsync, xproto.GrabModeAsync).Reply()
	if err != nil {
		return &x.RequestError{Op: "GrabKeyboard", Win: c.root.ID, Err: err}
	}
	if reply.Status != xproto.GrabStatusSuccess {
		return &x.RequestError{Op: "GrabKeyboard", Win: c.root.ID,
			Err: fmt.Errorf("grab status %d", reply.Status)}
	}
	return nil
}

func (c *Conn) UngrabKeyboard() error {
	return xproto.UngrabKeyboardChecked(c.xc, xproto.TimeCurrentTime).Check()
}

func (c *Conn) GrabPointer(win x.Xid, eventMask uint32) error {
	reply, err := xproto.GrabPointer(c.xc, true, xproto.Window(win),
		uint16(eventMask), xproto.GrabModeAsync, xproto.GrabModeAsync,
		xproto.WindowNone, xproto.CursorNone, xproto.TimeCurrentTime).Reply()
	if err != nil {
		return &x.RequestError{Op: "GrabPointer", Win: win, Err: err}
	}
	if reply.Status != xproto.GrabStatusSuccess {
		return &x.RequestError{Op: "GrabPointer", Win: win,
			Err: fmt.Errorf("grab status %d", reply.Status)}
	}
	return nil
}

func (c *Conn) UngrabPointer() error {
	return xproto.UngrabPointerChecked(c.xc, xproto.TimeCurrentTime).Check()
}

func (c *Conn) MapWindow(win x.Xid) error {
	if err := xproto.MapWindowChecked(c.xc, xproto.Window(win)).Check(); err != nil {
		return &x.RequestError{Op: "MapWindow", Win: win, Err: err}
	}
	// select client events so hints and crossings keep flowing
	if err := xproto.ChangeWindowAttributesChecked(c.xc, xproto.Window(win),
		xproto.CwEventMask, []uint32{uint32(clientEventMask)}).Check(); err != nil {
		c.log.Debugf("event mask on %s: %v", win, err)
	}
	return nil
}

func (c *Conn) UnmapWindow(win x.Xid) error {
	if err := xproto.UnmapWindowChecked(c.xc, xproto.Window(win)).Check(); err != nil {
		return &x.RequestError{Op: "UnmapWindow", Win: win, Err: err}
	}
	return nil
}

func (c *Conn) DestroyWindow(win x.Xid) error {
	if err := xproto.DestroyWindowChecked(c.xc, xproto.Window(win)).Check(); err != nil {
		return &x.RequestError{Op: "DestroyWindow", Win: win, Err: err}
	}
	return nil
}

func (c *Conn) ConfigureWindow(win x.Xid, cfg x.WindowConfig) error {
	var mask uint16
	var values []uint32
	if cfg.Mask&x.ConfigX != 0 {
		mask |= xproto.ConfigWindowX
		values = append(values, uint32(cfg.Geom.X))
	}
	if cfg.Mask&x.ConfigY != 0 {
		mask |= xproto.ConfigWindowY
		values = append(values, uint32(cfg.Geom.Y))
	}
	if cfg.Mask&x.ConfigWidth != 0 {
		mask |= xproto.ConfigWindowWidth
		values = append(values, uint32(cfg.Geom.Width))
	}
	if cfg.Mask&x.ConfigHeight != 0 {
		mask |= xproto.ConfigWindowHeight
		values = append(values, uint32(cfg.Geom.Height))
	}
	if cfg.Mask&x.ConfigBorderWidth != 0 {
		mask |= xproto.ConfigWindowBorderWidth
		values = append(values, uint32(cfg.BorderWidth))
	}
	if cfg.Mask&x.ConfigSibling != 0 {
		mask |= xproto.ConfigWindowSibling
		values = append(values, uint32(cfg.Sibling))
	}
	if cfg.Mask&x.ConfigStackMode != 0 {
		mask |= xproto.ConfigWindowStackMode
		switch cfg.StackMode {
		case x.StackAbove:
			values = append(values, xproto.StackModeAbove)
		case x.StackBelow:
			values = append(values, xproto.StackModeBelow)
		}
	}
	if mask == 0 {
		return nil
	}
	if err := xproto.ConfigureWindowChecked(c.xc, xproto.Window(win), mask, values).Check(); err != nil {
		return &x.RequestError{Op: "ConfigureWindow", Win: win, Err: err}
	}
	return nil
}

func (c *Conn) SendConfigureNotify(win x.Xid, geom x.Geometry) error {
	ev := xproto.ConfigureNotifyEvent{
		Event:  xproto.Window(win),
		Window: xproto.Window(win),
		X:      int16(geom.X), Y: int16(geom.Y),
		Width: uint16(geom.Width), Height: uint16(geom.Height),
		AboveSibling: xproto.WindowNone,
	}
	err := xproto.SendEventChecked(c.xc, false, xproto.Window(win),
		xproto.EventMaskStructureNotify, string(ev.Bytes())).Check()
	if err != nil {
		return &x.RequestError{Op: "SendConfigureNotify", Win: win, Err: err}
	}
	return nil
}

func (c *Conn) SetInputFocus(win x.Xid) error {
	err := xproto.SetInputFocusChecked(c.xc, xproto.InputFocusPointerRoot,
		xproto.Window(win), xproto.TimeCurrentTime).Check()
	if err != nil {
		return &x.RequestError{Op: "SetInputFocus", Win: win, Err: err}
	}
	return nil
}

func (c *Conn) ReparentWindow(win, parent x.Xid) error {
	err := xproto.ReparentWindowChecked(c.xc, xproto.Window(win),
		xproto.Window(parent), 0, 0).Check()
	if err != nil {
		return &x.RequestError{Op: "ReparentWindow", Win: win, Err: err}
	}
	return nil
}
