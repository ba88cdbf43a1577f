package layout

// DynamicTiled is the main-and-stack tiling layout: the first non-floating
// client in ring order takes a vertical main column, the rest stack beside
// it. Floating clients keep their geometry and are raised above the tiles.
type DynamicTiled struct {
	ratio float64
}

const (
	defaultRatio = 0.5
	minRatio     = 0.1
	maxRatio     = 0.9
)

// NewDynamicTiled returns a DynamicTiled with an even main/stack split.
func NewDynamicTiled() *DynamicTiled {
	return &DynamicTiled{ratio: defaultRatio}
}

func (l *DynamicTiled) Name() string { return "dtiled" }

func (l *DynamicTiled) Style() Style { return StyleTiled }

// ReceiveUpdate adjusts the main ratio on ResizeMain, clamped so neither
// column collapses. Other updates are ignored.
func (l *DynamicTiled) ReceiveUpdate(u Update) {
	switch u := u.(type) {
	case ResizeMain:
		l.ratio += u.Delta
		if l.ratio < minRatio {
			l.ratio = minRatio
		}
		if l.ratio > maxRatio {
			l.ratio = maxRatio
		}
	}
}

func (l *DynamicTiled) Compute(snap Snapshot, ctx Context) []Action {
	var tiled, floaters []Client
	for _, c := range snap.Clients {
		if c.Floating {
			floaters = append(floaters, c)
		} else {
			tiled = append(tiled, c)
		}
	}

	var actions []Action
	usable := inset(ctx.Screen, ctx.Gaps.Outer)

	switch len(tiled) {
	case 0:
	case 1:
		actions = append(actions, resize(tiled[0].ID, usable.TrimBorder(ctx.BorderWidth)))
	default:
		main, stack := splitVertical(usable, l.ratio, ctx.Gaps.Inner)
		actions = append(actions, resize(tiled[0].ID, main.TrimBorder(ctx.BorderWidth)))
		rows := splitHorizontal(stack, len(tiled)-1, ctx.Gaps.Inner)
		for i, c := range tiled[1:] {
			actions = append(actions, resize(c.ID, rows[i].TrimBorder(ctx.BorderWidth)))
		}
	}

	for _, c := range floaters {
		actions = append(actions, raise(c.ID))
	}
	return actions
}
