package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/cartoon-raccoon/perch/internal/x"
)

// propFetchLimit caps property reads at 1MiB worth of words, which is far
// beyond any hint or text property the manager reads.
const propFetchLimit = 1 << 18

// GetProperty fetches and decodes the named property. Absent properties
// yield (nil, nil); payloads whose shape contradicts their declared type
// yield an error wrapping x.ErrBadPropertyData so callers can treat them
// as absent.
func (c *Conn) GetProperty(win x.Xid, name string) (x.Property, error) {
	atom, err := c.atom(name)
	if err != nil {
		return nil, err
	}
	reply, err := xproto.GetProperty(c.xc, false, xproto.Window(win), atom,
		xproto.GetPropertyTypeAny, 0, propFetchLimit).Reply()
	if err != nil {
		return nil, &x.RequestError{Op: "GetProperty", Win: win, Err: err}
	}
	if reply.Format == 0 {
		return nil, nil
	}
	typeName, err := c.atomName(reply.Type)
	if err != nil {
		return nil, err
	}
	return c.decodeProperty(typeName, reply)
}

func (c *Conn) decodeProperty(typeName string, reply *xproto.GetPropertyReply) (x.Property, error) {
	switch typeName {
	case "STRING":
		return x.PropString(splitNul(reply.Value)), nil
	case "UTF8_STRING":
		return x.PropUTF8String(splitNul(reply.Value)), nil
	case "ATOM":
		var names []string
		for _, a := range words32(reply.Value) {
			n, err := c.atomName(xproto.Atom(a))
			if err != nil {
				return nil, err
			}
			names = append(names, n)
		}
		return x.PropAtoms(names), nil
	case "CARDINAL":
		ws := words32(reply.Value)
		if len(ws) == 1 {
			return x.PropCardinal(ws[0]), nil
		}
		return x.PropRaw32{Type: typeName, Data: ws}, nil
	case "WINDOW":
		var wins []x.Xid
		for _, w := range words32(reply.Value) {
			wins = append(wins, x.Xid(w))
		}
		return x.PropWindows(wins), nil
	case "WM_HINTS":
		hints, err := x.ParseWmHints(words32(reply.Value))
		if err != nil {
			return nil, err
		}
		return x.PropWMHints(hints), nil
	case "WM_SIZE_HINTS":
		hints, err := x.ParseWmSizeHints(words32(reply.Value))
		if err != nil {
			return nil, err
		}
		return x.PropWMSizeHints(hints), nil
	}

	switch reply.Format {
	case 8:
		return x.PropRaw8{Type: typeName, Data: reply.Value}, nil
	case 16:
		return x.PropRaw16{Type: typeName, Data: words16(reply.Value)}, nil
	case 32:
		return x.PropRaw32{Type: typeName, Data: words32(reply.Value)}, nil
	default:
		return nil, &x.ProtocolError{Op: "GetProperty",
			Err: fmt.Errorf("%w: format %d", x.ErrBadPropertyData, reply.Format)}
	}
}

// SetProperty encodes and replaces the named property.
func (c *Conn) SetProperty(win x.Xid, name string, prop x.Property) error {
	atom, err := c.atom(name)
	if err != nil {
		return err
	}

	var typeName string
	var format byte
	var data []byte
	var units uint32

	switch p := prop.(type) {
	case x.PropString:
		typeName, format = "STRING", 8
		data = joinNul(p)
		units = uint32(len(data))
	case x.PropUTF8String:
		typeName, format = "UTF8_STRING", 8
		data = joinNul(p)
		units = uint32(len(data))
	case x.PropAtoms:
		typeName, format = "ATOM", 32
		var ws []uint32
		for _, n := range p {
			a, err := c.atom(n)
			if err != nil {
				return err
			}
			ws = append(ws, uint32(a))
		}
		data, units = bytes32(ws), uint32(len(ws))
	case x.PropCardinal:
		typeName, format = "CARDINAL", 32
		data, units = bytes32([]uint32{uint32(p)}), 1
	case x.PropWindows:
		typeName, format = "WINDOW", 32
		var ws []uint32
		for _, w := range p {
			ws = append(ws, uint32(w))
		}
		data, units = bytes32(ws), uint32(len(ws))
	case x.PropWMHints:
		typeName, format = "WM_HINTS", 32
		ws := encodeWmHints(x.WmHints(p))
		data, units = bytes32(ws), uint32(len(ws))
	case x.PropWMSizeHints:
		typeName, format = "WM_SIZE_HINTS", 32
		ws := encodeWmSizeHints(x.WmSizeHints(p))
		data, units = bytes32(ws), uint32(len(ws))
	case x.PropRaw8:
		typeName, format = p.Type, 8
		data, units = p.Data, uint32(len(p.Data))
	case x.PropRaw16:
		typeName, format = p.Type, 16
		data = make([]byte, 2*len(p.Data))
		for i, w := range p.Data {
			xgb.Put16(data[2*i:], w)
		}
		units = uint32(len(p.Data))
	case x.PropRaw32:
		typeName, format = p.Type, 32
		data, units = bytes32(p.Data), uint32(len(p.Data))
	default:
		return &x.ProtocolError{Op: "SetProperty",
			Err: fmt.Errorf("unencodable property %T", prop)}
	}

	typeAtom, err := c.atom(typeName)
	if err != nil {
		return err
	}
	err = xproto.ChangePropertyChecked(c.xc, xproto.PropModeReplace,
		xproto.Window(win), atom, typeAtom, format, units, data).Check()
	if err != nil {
		return &x.RequestError{Op: "SetProperty", Win: win, Err: err}
	}
	return nil
}

func splitNul(data []byte) []string {
	s := strings.TrimRight(string(data), "\x00")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\x00")
}

func joinNul(parts []string) []byte {
	return []byte(strings.Join(parts, "\x00") + "\x00")
}

func words32(data []byte) []uint32 {
	ws := make([]uint32, 0, len(data)/4)
	for i := 0; i+4 <= len(data); i += 4 {
		ws = append(ws, xgb.Get32(data[i:]))
	}
	return ws
}

func words16(data []byte) []uint16 {
	ws := make([]uint16, 0, len(data)/2)
	for i := 0; i+2 <= len(data); i += 2 {
		ws = append(ws, xgb.Get16(data[i:]))
	}
	return ws
}

func bytes32(ws []uint32) []byte {
	data := make([]byte, 4*len(ws))
	for i, w := range ws {
		xgb.Put32(data[4*i:], w)
	}
	return data
}

func encodeWmHints(h x.WmHints) []uint32 {
	input := uint32(0)
	if h.AcceptsInput {
		input = 1
	}
	return []uint32{
		h.Flags,
		input,
		uint32(h.InitialState),
		h.IconPixmap,
		uint32(h.IconWindow),
		uint32(int32(h.IconPos.X)),
		uint32(int32(h.IconPos.Y)),
		h.IconMask,
		uint32(h.WindowGroup),
	}
}

func encodeWmSizeHints(h x.WmSizeHints) []uint32 {
	ws := make([]uint32, 18)
	ws[0] = h.Flags
	put := func(p *x.Pair, i int) {
		if p != nil {
			ws[i] = uint32(int32(p.X))
			ws[i+1] = uint32(int32(p.Y))
		}
	}
	put(h.Position, 1)
	put(h.Size, 3)
	put(h.MinSize, 5)
	put(h.MaxSize, 7)
	put(h.ResizeInc, 9)
	put(h.MinAspect, 11)
	put(h.MaxAspect, 13)
	put(h.BaseSize, 15)
	if h.Gravity != nil {
		ws[17] = *h.Gravity
	}
	return ws
}
