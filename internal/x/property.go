package x

import "fmt"

// Property is a decoded window property. Concrete types cover the property
// formats the manager understands; anything else is surfaced as a raw list
// keyed by its type name.
type Property interface {
	property()
}

// PropAtoms is a list of atoms, expressed as their names.
type PropAtoms []string

// PropCardinal is a single cardinal number.
type PropCardinal uint32

// PropString is a list of latin-1 strings.
type PropString []string

// PropUTF8String is a list of UTF-8 strings.
type PropUTF8String []string

// PropWindows is a list of window ids.
type PropWindows []Xid

// PropWMHints is a decoded WM_HINTS record.
type PropWMHints WmHints

// PropWMSizeHints is a decoded WM_SIZE_HINTS record.
type PropWMSizeHints WmSizeHints

// PropRaw8 is 8-bit-format data of a type the manager does not recognize.
type PropRaw8 struct {
	Type string
	Data []byte
}

// PropRaw16 is 16-bit-format data of an unrecognized type.
type PropRaw16 struct {
	Type string
	Data []uint16
}

// PropRaw32 is 32-bit-format data of an unrecognized type.
type PropRaw32 struct {
	Type string
	Data []uint32
}

func (PropAtoms) property()       {}
func (PropCardinal) property()    {}
func (PropString) property()      {}
func (PropUTF8String) property()  {}
func (PropWindows) property()     {}
func (PropWMHints) property()     {}
func (PropWMSizeHints) property() {}
func (PropRaw8) property()        {}
func (PropRaw16) property()       {}
func (PropRaw32) property()       {}

// WindowState is the ICCCM-defined client state.
type WindowState int

const (
	StateWithdrawn WindowState = 0
	StateNormal    WindowState = 1
	StateIconic    WindowState = 3
)

// WM_HINTS flag bits, in wire order.
const (
	HintInput uint32 = 1 << iota
	HintState
	HintIconPixmap
	HintIconWindow
	HintIconPosition
	HintIconMask
	HintWindowGroup
	_
	HintUrgency
)

// WM_SIZE_HINTS flag bits, in wire order.
const (
	SizeHintUSPosition uint32 = 1 << iota
	SizeHintUSSize
	SizeHintPPosition
	SizeHintPSize
	SizeHintPMinSize
	SizeHintPMaxSize
	SizeHintPResizeInc
	SizeHintPAspect
	SizeHintPBaseSize
	SizeHintPWinGravity
)

// Fixed record lengths in 32-bit words. A payload of any other length is
// rejected outright: a silently-misaligned record corrupts every field
// after the mismatch.
const (
	wmHintsLen     = 9
	wmSizeHintsLen = 18
)

// WmHints is the ICCCM WM_HINTS record.
type WmHints struct {
	Flags        uint32
	AcceptsInput bool
	InitialState WindowState
	IconPixmap   uint32
	IconWindow   Xid
	IconPos      Point
	IconMask     uint32
	WindowGroup  Xid
}

// Urgent reports whether the urgency flag is set.
func (h WmHints) Urgent() bool {
	return h.Flags&HintUrgency != 0
}

// ParseWmHints decodes a WM_HINTS record from its 9-word wire form.
//
//	word 0: flags
//	word 1: input
//	word 2: initial state
//	word 3: icon pixmap
//	word 4: icon window
//	word 5, 6: icon x, y
//	word 7: icon mask
//	word 8: window group
func ParseWmHints(raw []uint32) (WmHints, error) {
	if len(raw) != wmHintsLen {
		return WmHints{}, fmt.Errorf("%w: WM_HINTS expects %d words, got %d",
			ErrBadPropertyData, wmHintsLen, len(raw))
	}
	flags := raw[0]

	// a window accepts input unless it explicitly hints otherwise
	acceptsInput := flags&HintInput == 0 || raw[1] > 0

	state := StateNormal
	if flags&HintState != 0 {
		switch raw[2] {
		case 0:
			state = StateWithdrawn
		case 1:
			state = StateNormal
		case 2, 3:
			state = StateIconic
		default:
			return WmHints{}, fmt.Errorf("%w: invalid initial state %d",
				ErrBadPropertyData, raw[2])
		}
	}

	return WmHints{
		Flags:        flags,
		AcceptsInput: acceptsInput,
		InitialState: state,
		IconPixmap:   raw[3],
		IconWindow:   Xid(raw[4]),
		IconPos:      Point{X: int(int32(raw[5])), Y: int(int32(raw[6]))},
		IconMask:     raw[7],
		WindowGroup:  Xid(raw[8]),
	}, nil
}

// Pair is a two-valued size-hint field.
type Pair struct {
	X, Y int
}

// WmSizeHints is the ICCCM WM_SIZE_HINTS record. Fields whose flag is unset
// are nil.
type WmSizeHints struct {
	Flags     uint32
	Position  *Pair
	Size      *Pair
	MinSize   *Pair
	MaxSize   *Pair
	ResizeInc *Pair
	MinAspect *Pair
	MaxAspect *Pair
	BaseSize  *Pair
	Gravity   *uint32
}

// FixedSize reports whether the hints pin the window to a single size,
// which is how fixed-size dialogs announce themselves.
func (h WmSizeHints) FixedSize() bool {
	return h.MinSize != nil && h.MaxSize != nil && *h.MinSize == *h.MaxSize
}

// ParseWmSizeHints decodes a WM_SIZE_HINTS record from its 18-word wire
// form.
//
//	word 0: flags
//	words 1-2: x, y          words 3-4:   width, height
//	words 5-6: min w/h       words 7-8:   max w/h
//	words 9-10: resize inc   words 11-14: min, max aspect
//	words 15-16: base w/h    word 17:     gravity
func ParseWmSizeHints(raw []uint32) (WmSizeHints, error) {
	if len(raw) != wmSizeHintsLen {
		return WmSizeHints{}, fmt.Errorf("%w: WM_SIZE_HINTS expects %d words, got %d",
			ErrBadPropertyData, wmSizeHintsLen, len(raw))
	}
	flags := raw[0]

	pair := func(set bool, i int) *Pair {
		if !set {
			return nil
		}
		return &Pair{X: int(int32(raw[i])), Y: int(int32(raw[i+1]))}
	}

	h := WmSizeHints{
		Flags:     flags,
		Position:  pair(flags&(SizeHintUSPosition|SizeHintPPosition) != 0, 1),
		Size:      pair(flags&(SizeHintUSSize|SizeHintPSize) != 0, 3),
		MinSize:   pair(flags&SizeHintPMinSize != 0, 5),
		MaxSize:   pair(flags&SizeHintPMaxSize != 0, 7),
		ResizeInc: pair(flags&SizeHintPResizeInc != 0, 9),
		MinAspect: pair(flags&SizeHintPAspect != 0, 11),
		MaxAspect: pair(flags&SizeHintPAspect != 0, 13),
		BaseSize:  pair(flags&SizeHintPBaseSize != 0, 15),
	}
	if flags&SizeHintPWinGravity != 0 {
		g := raw[17]
		h.Gravity = &g
	}
	return h, nil
}
