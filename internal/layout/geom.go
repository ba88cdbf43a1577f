package layout

import "github.com/cartoon-raccoon/perch/internal/x"

// Gaps are the pixel margins a tiled layout leaves around windows. Outer is
// applied once around the screen edge, Inner between adjacent windows.
type Gaps struct {
	Inner int
	Outer int
}

func clampDim(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// inset shrinks g by margin on every side. Width and height clamp at zero
// rather than going negative when the margin exceeds the region.
func inset(g x.Geometry, margin int) x.Geometry {
	return x.Geometry{
		X:      g.X + margin,
		Y:      g.Y + margin,
		Width:  clampDim(g.Width - 2*margin),
		Height: clampDim(g.Height - 2*margin),
	}
}

// splitVertical cuts g into a left and right region at ratio, with gap
// pixels between them. The left region takes the ratio share of the width
// remaining after the gap.
func splitVertical(g x.Geometry, ratio float64, gap int) (x.Geometry, x.Geometry) {
	avail := clampDim(g.Width - gap)
	leftW := int(float64(avail) * ratio)
	left := x.Geometry{
		X: g.X, Y: g.Y,
		Width: leftW, Height: g.Height,
	}
	right := x.Geometry{
		X: g.X + leftW + gap, Y: g.Y,
		Width: clampDim(avail - leftW), Height: g.Height,
	}
	return left, right
}

// splitHorizontal cuts g into n stacked rows with gap pixels between
// adjacent rows. The last row absorbs the rounding remainder.
func splitHorizontal(g x.Geometry, n, gap int) []x.Geometry {
	if n <= 0 {
		return nil
	}
	avail := clampDim(g.Height - (n-1)*gap)
	rowH := avail / n
	rows := make([]x.Geometry, n)
	y := g.Y
	for i := range rows {
		h := rowH
		if i == n-1 {
			h = avail - rowH*(n-1)
		}
		rows[i] = x.Geometry{X: g.X, Y: y, Width: g.Width, Height: h}
		y += h + gap
	}
	return rows
}
