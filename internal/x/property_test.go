package x

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWmHintsRejectsWrongLength(t *testing.T) {
	for _, n := range []int{0, 8, 10, 18} {
		_, err := ParseWmHints(make([]uint32, n))
		require.Error(t, err, "length %d", n)
		assert.True(t, errors.Is(err, ErrBadPropertyData))
	}
}

func TestParseWmHintsUrgency(t *testing.T) {
	raw := make([]uint32, 9)
	raw[0] = HintUrgency
	h, err := ParseWmHints(raw)
	require.NoError(t, err)
	assert.True(t, h.Urgent())
	assert.True(t, h.AcceptsInput, "input hint unset means input accepted")
	assert.Equal(t, StateNormal, h.InitialState)
}

func TestParseWmHintsInitialState(t *testing.T) {
	raw := make([]uint32, 9)
	raw[0] = HintState
	raw[2] = 3
	h, err := ParseWmHints(raw)
	require.NoError(t, err)
	assert.Equal(t, StateIconic, h.InitialState)

	raw[2] = 7
	_, err = ParseWmHints(raw)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadPropertyData))
}

func TestParseWmHintsInputField(t *testing.T) {
	raw := make([]uint32, 9)
	raw[0] = HintInput
	raw[1] = 0
	h, err := ParseWmHints(raw)
	require.NoError(t, err)
	assert.False(t, h.AcceptsInput)
}

func TestParseWmSizeHintsRejectsWrongLength(t *testing.T) {
	_, err := ParseWmSizeHints(make([]uint32, 9))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadPropertyData))
}

func TestParseWmSizeHintsMinSizeOnly(t *testing.T) {
	raw := make([]uint32, 18)
	raw[0] = SizeHintPMinSize
	raw[5] = 320
	raw[6] = 240
	h, err := ParseWmSizeHints(raw)
	require.NoError(t, err)
	require.NotNil(t, h.MinSize)
	assert.Equal(t, Pair{X: 320, Y: 240}, *h.MinSize)
	assert.Nil(t, h.Position)
	assert.Nil(t, h.Size)
	assert.Nil(t, h.MaxSize)
	assert.Nil(t, h.ResizeInc)
	assert.Nil(t, h.MinAspect)
	assert.Nil(t, h.MaxAspect)
	assert.Nil(t, h.BaseSize)
	assert.Nil(t, h.Gravity)
}

func TestParseWmSizeHintsFieldOffsets(t *testing.T) {
	raw := []uint32{
		SizeHintUSPosition | SizeHintPSize | SizeHintPMinSize |
			SizeHintPMaxSize | SizeHintPResizeInc | SizeHintPAspect |
			SizeHintPBaseSize | SizeHintPWinGravity,
		10, 20, // position
		640, 480, // size
		100, 80, // min
		1920, 1080, // max
		8, 8, // inc
		1, 3, // min aspect
		16, 9, // max aspect
		64, 48, // base
		5, // gravity
	}
	h, err := ParseWmSizeHints(raw)
	require.NoError(t, err)
	assert.Equal(t, Pair{10, 20}, *h.Position)
	assert.Equal(t, Pair{640, 480}, *h.Size)
	assert.Equal(t, Pair{100, 80}, *h.MinSize)
	assert.Equal(t, Pair{1920, 1080}, *h.MaxSize)
	assert.Equal(t, Pair{8, 8}, *h.ResizeInc)
	assert.Equal(t, Pair{1, 3}, *h.MinAspect)
	assert.Equal(t, Pair{16, 9}, *h.MaxAspect)
	assert.Equal(t, Pair{64, 48}, *h.BaseSize)
	require.NotNil(t, h.Gravity)
	assert.Equal(t, uint32(5), *h.Gravity)
}

func TestFixedSize(t *testing.T) {
	pin := Pair{300, 200}
	h := WmSizeHints{MinSize: &pin, MaxSize: &pin}
	assert.True(t, h.FixedSize())

	other := Pair{400, 200}
	h.MaxSize = &other
	assert.False(t, h.FixedSize())
	assert.False(t, WmSizeHints{}.FixedSize())
}

func TestModMaskClean(t *testing.T) {
	reported := Mod4 | ModShift | Mod2 | ModLock
	assert.Equal(t, Mod4|ModShift, reported.Clean())
	assert.Equal(t, ModMask(0), (Mod2 | ModLock).Clean())
}

func TestGeometryTrimBorderClampsAtZero(t *testing.T) {
	g := Geometry{X: 0, Y: 0, Width: 3, Height: 3}
	trimmed := g.TrimBorder(2)
	assert.Equal(t, 0, trimmed.Width)
	assert.Equal(t, 0, trimmed.Height)
}

func TestIsFatal(t *testing.T) {
	assert.True(t, IsFatal(&ConnError{Err: errors.New("broken pipe")}))
	assert.True(t, IsFatal(&CapabilityError{Extension: "RANDR", Detail: "missing"}))
	assert.False(t, IsFatal(&RequestError{Op: "MapWindow", Win: 7}))
	assert.False(t, IsFatal(ErrBadPropertyData))
}
