// Package outputs models the declared monitor arrangement and matches it
// against live outputs. Entries live in an arena and refer to each other by
// stable handles, so a sibling reference survives unrelated removals and
// resolves to nothing once its referent is gone.
package outputs

import (
	"fmt"

	"github.com/cartoon-raccoon/perch/internal/x"
)

// Handle is a stable reference to a layout entry. Handles are never reused
// within one Layout.
type Handle int

// Identifier names a physical output by any subset of its name, make and
// model. An identifier with no fields set matches nothing.
type Identifier struct {
	Name  string
	Make  string
	Model string
}

// MatchScore scores id against a live output: one point per field that is
// present and equal. A present field that differs disqualifies the match
// outright, as does an empty identifier.
func (id Identifier) MatchScore(out x.OutputInfo) (int, bool) {
	score := 0
	check := func(want, got string) bool {
		if want == "" {
			return true
		}
		if want != got {
			return false
		}
		score++
		return true
	}
	if !check(id.Name, out.Name) || !check(id.Make, out.Make) || !check(id.Model, out.Model) {
		return 0, false
	}
	if score == 0 {
		return 0, false
	}
	return score, true
}

// Direction places a relative entry on one side of its referent.
type Direction int

const (
	Left Direction = iota
	Right
	Above
	Below
)

// Position declares where an entry sits. Exactly one of the three concrete
// kinds applies.
type Position interface {
	position()
}

// AtPoint pins the entry's top-left corner to an absolute point.
type AtPoint struct {
	P x.Point
}

// RelativeTo places the entry against a side of another entry.
type RelativeTo struct {
	Of  Handle
	Dir Direction
}

// Mirroring makes the entry show the same region as another entry.
type Mirroring struct {
	Of Handle
}

func (AtPoint) position()    {}
func (RelativeTo) position() {}
func (Mirroring) position()  {}

// Entry is one declared output: what it is called, who it matches and
// where it goes. The declared name is the handle other entries refer to
// and need not equal the identifier's name field, so several entries may
// match the same connector with different make/model constraints.
type Entry struct {
	Name  string
	Ident Identifier
	Pos   Position
}

// Layout is the declared output arrangement. The matched flags live beside
// the entries rather than inside them, keyed by handle, so matching works
// against a read-only view of the entries themselves.
type Layout struct {
	entries []*Entry
	matched map[Handle]bool
}

// NewLayout returns an empty layout.
func NewLayout() *Layout {
	return &Layout{matched: make(map[Handle]bool)}
}

// Add inserts an entry and returns its handle. An entry whose declared
// name duplicates an existing entry's is rejected; identifiers are not
// checked for uniqueness.
func (l *Layout) Add(e Entry) (Handle, error) {
	if e.Name != "" {
		for _, ex := range l.entries {
			if ex != nil && ex.Name == e.Name {
				return 0, fmt.Errorf("output %q already declared", e.Name)
			}
		}
	}
	l.entries = append(l.entries, &e)
	return Handle(len(l.entries) - 1), nil
}

// Remove deletes the entry at h. Other handles stay valid; references to h
// resolve to nothing from now on.
func (l *Layout) Remove(h Handle) {
	if int(h) >= 0 && int(h) < len(l.entries) {
		l.entries[h] = nil
		delete(l.matched, h)
	}
}

// Get resolves a handle. The second return is false for removed or
// out-of-range handles.
func (l *Layout) Get(h Handle) (*Entry, bool) {
	if int(h) < 0 || int(h) >= len(l.entries) || l.entries[h] == nil {
		return nil, false
	}
	return l.entries[h], true
}

// Len counts the live entries.
func (l *Layout) Len() int {
	n := 0
	for _, e := range l.entries {
		if e != nil {
			n++
		}
	}
	return n
}

// Handles returns the live handles in insertion order.
func (l *Layout) Handles() []Handle {
	var hs []Handle
	for i, e := range l.entries {
		if e != nil {
			hs = append(hs, Handle(i))
		}
	}
	return hs
}

// Match finds the best unmatched entry for a live output and marks it
// matched, so repeated calls with the same output bind each entry at most
// once. Among equal top scores the first-encountered entry wins. Returns
// false when no entry matches.
func (l *Layout) Match(out x.OutputInfo) (Handle, bool) {
	best := Handle(-1)
	bestScore := 0
	for i, e := range l.entries {
		h := Handle(i)
		if e == nil || l.matched[h] {
			continue
		}
		score, ok := e.Ident.MatchScore(out)
		if !ok {
			continue
		}
		if score > bestScore {
			best, bestScore = h, score
		}
	}
	if best < 0 {
		return 0, false
	}
	l.matched[best] = true
	return best, true
}

// Matched reports whether h is currently bound to a live output.
func (l *Layout) Matched(h Handle) bool {
	return l.matched[h]
}

// Unmatch releases h so a later Match may bind it again. Used when an
// output disconnects.
func (l *Layout) Unmatch(h Handle) {
	delete(l.matched, h)
}

// Origin computes the top-left point for the entry at h given the size it
// will display at and the geometries of entries already placed. Relative
// and mirror positions whose referent has been removed, or is not yet
// placed, report false.
func (l *Layout) Origin(h Handle, size x.Geometry, placed func(Handle) (x.Geometry, bool)) (x.Point, bool) {
	e, ok := l.Get(h)
	if !ok {
		return x.Point{}, false
	}
	switch pos := e.Pos.(type) {
	case AtPoint:
		return pos.P, true
	case RelativeTo:
		if _, ok := l.Get(pos.Of); !ok {
			return x.Point{}, false
		}
		ref, ok := placed(pos.Of)
		if !ok {
			return x.Point{}, false
		}
		switch pos.Dir {
		case Left:
			return x.Point{X: ref.X - size.Width, Y: ref.Y}, true
		case Right:
			return x.Point{X: ref.X + ref.Width, Y: ref.Y}, true
		case Above:
			return x.Point{X: ref.X, Y: ref.Y - size.Height}, true
		case Below:
			return x.Point{X: ref.X, Y: ref.Y + ref.Height}, true
		}
		return x.Point{}, false
	case Mirroring:
		if _, ok := l.Get(pos.Of); !ok {
			return x.Point{}, false
		}
		ref, ok := placed(pos.Of)
		if !ok {
			return x.Point{}, false
		}
		return x.Point{X: ref.X, Y: ref.Y}, true
	default:
		// entries default to the origin when no position was declared
		return x.Point{}, true
	}
}
