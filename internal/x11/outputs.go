package x11

import (
	"strings"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/cartoon-raccoon/perch/internal/x"
)

// Outputs enumerates the live outputs through RANDR. Disconnected outputs
// are reported with Connected false and no geometry; make and model come
// from the EDID when the driver exposes one.
func (c *Conn) Outputs() ([]x.OutputInfo, error) {
	res, err := randr.GetScreenResourcesCurrent(c.xc, c.screen.Root).Reply()
	if err != nil {
		return nil, &x.ProtocolError{Op: "GetScreenResources", Err: err}
	}
	primaryReply, err := randr.GetOutputPrimary(c.xc, c.screen.Root).Reply()
	if err != nil {
		return nil, &x.ProtocolError{Op: "GetOutputPrimary", Err: err}
	}

	var outs []x.OutputInfo
	for _, output := range res.Outputs {
		info, err := randr.GetOutputInfo(c.xc, output, res.ConfigTimestamp).Reply()
		if err != nil {
			return nil, &x.ProtocolError{Op: "GetOutputInfo", Err: err}
		}
		out := x.OutputInfo{
			Name:      string(info.Name),
			Connected: info.Connection == randr.ConnectionConnected,
			Primary:   output == primaryReply.Output,
		}
		if out.Connected && info.Crtc != 0 {
			crtc, err := randr.GetCrtcInfo(c.xc, info.Crtc, res.ConfigTimestamp).Reply()
			if err != nil {
				return nil, &x.ProtocolError{Op: "GetCrtcInfo", Err: err}
			}
			out.Geom = x.Geometry{
				X: int(crtc.X), Y: int(crtc.Y),
				Width: int(crtc.Width), Height: int(crtc.Height),
			}
		}
		out.Make, out.Model = c.outputIdentity(output)
		outs = append(outs, out)
	}
	return outs, nil
}

// outputIdentity reads the output's EDID and extracts the manufacturer
// code and monitor name. Anything malformed reads as unknown; identifiers
// fall back to matching on the output name alone.
func (c *Conn) outputIdentity(output randr.Output) (mfr, model string) {
	atom, err := c.atom("EDID")
	if err != nil {
		return "", ""
	}
	reply, err := randr.GetOutputProperty(c.xc, output, atom,
		xproto.AtomNone, 0, 32, false, false).Reply()
	if err != nil || len(reply.Data) < 128 {
		return "", ""
	}
	return parseEdid(reply.Data)
}

// parseEdid pulls the three letter PNP manufacturer id from the vendor
// block and the display name from the descriptor blocks.
func parseEdid(edid []byte) (mfr, model string) {
	// manufacturer: three 5-bit letters packed into bytes 8-9
	packed := uint16(edid[8])<<8 | uint16(edid[9])
	mk := []byte{
		byte((packed>>10)&0x1f) + 'A' - 1,
		byte((packed>>5)&0x1f) + 'A' - 1,
		byte(packed&0x1f) + 'A' - 1,
	}
	for _, b := range mk {
		if b < 'A' || b > 'Z' {
			return "", ""
		}
	}
	mfr = string(mk)

	// descriptor blocks: four 18-byte records at offset 54; tag 0xFC is
	// the display product name
	for i := 54; i+18 <= 126; i += 18 {
		desc := edid[i : i+18]
		if desc[0] == 0 && desc[1] == 0 && desc[3] == 0xfc {
			model = strings.TrimSpace(strings.TrimRight(string(desc[5:18]), "\n \x00"))
			break
		}
	}
	return mfr, model
}
