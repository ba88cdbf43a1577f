package x11

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartoon-raccoon/perch/internal/x"
)

func TestParseEdid(t *testing.T) {
	edid := make([]byte, 128)
	// "DEL" packed as three 5-bit letters
	packed := uint16(4)<<10 | uint16(5)<<5 | uint16(12)
	edid[8] = byte(packed >> 8)
	edid[9] = byte(packed)
	// display product name descriptor
	copy(edid[54:], []byte{0, 0, 0, 0xfc, 0})
	copy(edid[59:], "U2720Q\n      ")

	mfr, model := parseEdid(edid)
	assert.Equal(t, "DEL", mfr)
	assert.Equal(t, "U2720Q", model)
}

func TestParseEdidGarbageReadsAsUnknown(t *testing.T) {
	edid := make([]byte, 128)
	mfr, model := parseEdid(edid)
	assert.Empty(t, mfr)
	assert.Empty(t, model)
}

func TestNulStringRoundTrip(t *testing.T) {
	parts := []string{"alacritty", "Alacritty"}
	assert.Equal(t, parts, splitNul(joinNul(parts)))
	assert.Nil(t, splitNul(nil))
}

func TestWordEncodingRoundTrip(t *testing.T) {
	ws := []uint32{0, 1, 0xdeadbeef, 1 << 31}
	assert.Equal(t, ws, words32(bytes32(ws)))
}

func TestSizeHintEncodeParseRoundTrip(t *testing.T) {
	min := x.Pair{X: 100, Y: 80}
	max := x.Pair{X: 1920, Y: 1080}
	in := x.WmSizeHints{
		Flags:   x.SizeHintPMinSize | x.SizeHintPMaxSize,
		MinSize: &min,
		MaxSize: &max,
	}
	out, err := x.ParseWmSizeHints(encodeWmSizeHints(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestConfigFromRequestMasksFields(t *testing.T) {
	ev := xproto.ConfigureRequestEvent{
		Window:    7,
		ValueMask: xproto.ConfigWindowX | xproto.ConfigWindowWidth | xproto.ConfigWindowStackMode,
		X:         15,
		Y:         99, // not in the mask, must not leak through
		Width:     800,
		StackMode: xproto.StackModeBelow,
	}
	cfg := configFromRequest(ev)
	assert.Equal(t, x.ConfigX|x.ConfigWidth|x.ConfigStackMode, cfg.Mask)
	assert.Equal(t, 15, cfg.Geom.X)
	assert.Equal(t, 0, cfg.Geom.Y)
	assert.Equal(t, 800, cfg.Geom.Width)
	assert.Equal(t, x.StackBelow, cfg.StackMode)
}

func TestKeysymFromName(t *testing.T) {
	sym, ok := keysymFromName("Return")
	require.True(t, ok)
	assert.Equal(t, xproto.Keysym(0xff0d), sym)

	sym, ok = keysymFromName("q")
	require.True(t, ok)
	assert.Equal(t, xproto.Keysym('q'), sym)

	_, ok = keysymFromName("NoSuchKey")
	assert.False(t, ok)
}
