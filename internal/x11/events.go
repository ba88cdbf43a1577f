package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/cartoon-raccoon/perch/internal/x"
)

// PollNextEvent blocks for the next X event and translates it. Async X
// errors are surfaced as non-fatal protocol errors; a closed connection
// ends the stream with (nil, nil).
func (c *Conn) PollNextEvent() (x.Event, error) {
	for {
		ev, xerr := c.xc.WaitForEvent()
		if ev == nil && xerr == nil {
			return nil, nil
		}
		if xerr != nil {
			return nil, &x.ProtocolError{Op: "WaitForEvent", Err: xerr}
		}
		if translated := c.translate(ev); translated != nil {
			return translated, nil
		}
		// events we deliberately swallow, like our own grab confirmations
	}
}

func (c *Conn) translate(ev xgb.Event) x.Event {
	switch ev := ev.(type) {
	case xproto.ConfigureNotifyEvent:
		return x.ConfigureNotify{
			Window: x.Xid(ev.Window),
			Geom: x.Geometry{
				X: int(ev.X), Y: int(ev.Y),
				Width: int(ev.Width), Height: int(ev.Height),
			},
		}

	case xproto.ConfigureRequestEvent:
		return x.ConfigureRequest{
			Window: x.Xid(ev.Window),
			Config: configFromRequest(ev),
		}

	case xproto.MapRequestEvent:
		override := false
		if attrs, err := c.WindowAttributes(x.Xid(ev.Window)); err == nil {
			override = attrs.OverrideRedirect
		}
		return x.MapRequest{Window: x.Xid(ev.Window), OverrideRedirect: override}

	case xproto.MapNotifyEvent:
		return x.MapNotify{Window: x.Xid(ev.Window)}

	case xproto.UnmapNotifyEvent:
		return x.UnmapNotify{
			Window:   x.Xid(ev.Window),
			FromRoot: x.Xid(ev.Event) == c.root.ID,
		}

	case xproto.DestroyNotifyEvent:
		return x.DestroyNotify{Window: x.Xid(ev.Window)}

	case xproto.EnterNotifyEvent:
		return x.EnterNotify{
			Window: x.Xid(ev.Event),
			Grab:   ev.Mode != xproto.NotifyModeNormal,
		}

	case xproto.LeaveNotifyEvent:
		return x.LeaveNotify{
			Window: x.Xid(ev.Event),
			Grab:   ev.Mode != xproto.NotifyModeNormal,
		}

	case xproto.PropertyNotifyEvent:
		name, err := c.atomName(ev.Atom)
		if err != nil {
			c.log.Debugf("property atom %d: %v", ev.Atom, err)
			return nil
		}
		return x.PropertyNotify{
			Window:  x.Xid(ev.Window),
			Name:    name,
			Deleted: ev.State == xproto.PropertyDelete,
		}

	case xproto.KeyPressEvent:
		return x.KeyPress{
			Window: x.Xid(ev.Event),
			Mask:   x.ModMask(ev.State),
			Code:   x.KeyCode(ev.Detail),
		}

	case xproto.KeyReleaseEvent:
		return x.KeyRelease{}

	case xproto.ButtonPressEvent:
		return x.MouseEvent{
			Window: x.Xid(ev.Event),
			Mask:   x.ModMask(ev.State),
			Button: x.Button(ev.Detail),
			Kind:   x.MousePress,
			Pos:    x.Point{X: int(ev.RootX), Y: int(ev.RootY)},
		}

	case xproto.ButtonReleaseEvent:
		return x.MouseEvent{
			Window: x.Xid(ev.Event),
			Mask:   x.ModMask(ev.State),
			Button: x.Button(ev.Detail),
			Kind:   x.MouseRelease,
			Pos:    x.Point{X: int(ev.RootX), Y: int(ev.RootY)},
		}

	case xproto.MotionNotifyEvent:
		return x.MouseEvent{
			Window: x.Xid(ev.Event),
			Mask:   x.ModMask(ev.State),
			Button: buttonFromState(ev.State),
			Kind:   x.MouseMotion,
			Pos:    x.Point{X: int(ev.RootX), Y: int(ev.RootY)},
		}

	case xproto.ClientMessageEvent:
		name, err := c.atomName(ev.Type)
		if err != nil {
			return nil
		}
		var data [5]uint32
		copy(data[:], ev.Data.Data32)
		return x.ClientMessage{Window: x.Xid(ev.Window), Type: name, Data: data}

	case randr.ScreenChangeNotifyEvent:
		return x.ScreenChange{}

	case randr.NotifyEvent:
		return x.ScreenChange{}

	case xproto.MappingNotifyEvent:
		if err := c.loadKeymap(); err != nil {
			c.log.Errorf("keymap reload: %v", err)
		}
		return nil

	default:
		return x.UnknownEvent{}
	}
}

// buttonFromState recovers which button is held during a drag from the
// modifier state of a motion event.
func buttonFromState(state uint16) x.Button {
	switch {
	case state&xproto.ButtonMask1 != 0:
		return x.ButtonLeft
	case state&xproto.ButtonMask2 != 0:
		return x.ButtonMiddle
	case state&xproto.ButtonMask3 != 0:
		return x.ButtonRight
	default:
		return 0
	}
}

// configFromRequest maps a configure request's value mask and fields onto
// the backend-agnostic config, bit for bit.
func configFromRequest(ev xproto.ConfigureRequestEvent) x.WindowConfig {
	cfg := x.WindowConfig{}
	if ev.ValueMask&xproto.ConfigWindowX != 0 {
		cfg.Mask |= x.ConfigX
		cfg.Geom.X = int(ev.X)
	}
	if ev.ValueMask&xproto.ConfigWindowY != 0 {
		cfg.Mask |= x.ConfigY
		cfg.Geom.Y = int(ev.Y)
	}
	if ev.ValueMask&xproto.ConfigWindowWidth != 0 {
		cfg.Mask |= x.ConfigWidth
		cfg.Geom.Width = int(ev.Width)
	}
	if ev.ValueMask&xproto.ConfigWindowHeight != 0 {
		cfg.Mask |= x.ConfigHeight
		cfg.Geom.Height = int(ev.Height)
	}
	if ev.ValueMask&xproto.ConfigWindowBorderWidth != 0 {
		cfg.Mask |= x.ConfigBorderWidth
		cfg.BorderWidth = int(ev.BorderWidth)
	}
	if ev.ValueMask&xproto.ConfigWindowSibling != 0 {
		cfg.Mask |= x.ConfigSibling
		cfg.Sibling = x.Xid(ev.Sibling)
	}
	if ev.ValueMask&xproto.ConfigWindowStackMode != 0 {
		cfg.Mask |= x.ConfigStackMode
		if ev.StackMode == xproto.StackModeBelow {
			cfg.StackMode = x.StackBelow
		} else {
			cfg.StackMode = x.StackAbove
		}
	}
	return cfg
}
