// Package ring provides an ordered container with a movable focus cursor.
// It is the focus-cycling primitive underneath workspaces, layouts and the
// desktop itself.
package ring

// Direction selects which way the focus cursor or the buffer moves.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// None is the cursor value when no element is focused.
const None = -1

// Ring is an ordered sequence with a focus cursor. The cursor is None iff
// the ring is empty, otherwise it is a valid index.
type Ring[T any] struct {
	items   []T
	focused int
}

// New returns an empty ring.
func New[T any]() *Ring[T] {
	return &Ring[T]{focused: None}
}

// FromSlice builds a ring over the given items with the first one focused.
func FromSlice[T any](items []T) *Ring[T] {
	r := &Ring[T]{items: items, focused: None}
	if len(items) > 0 {
		r.focused = 0
	}
	return r
}

func (r *Ring[T]) Len() int {
	return len(r.items)
}

func (r *Ring[T]) IsEmpty() bool {
	return len(r.items) == 0
}

// FocusedIdx returns the cursor position, or None when the ring is empty.
func (r *Ring[T]) FocusedIdx() int {
	return r.focused
}

// Focused returns the focused element.
func (r *Ring[T]) Focused() (T, bool) {
	var zero T
	if r.focused == None {
		return zero, false
	}
	return r.items[r.focused], true
}

// FocusedPtr returns a pointer to the focused element for in-place mutation.
func (r *Ring[T]) FocusedPtr() *T {
	if r.focused == None {
		return nil
	}
	return &r.items[r.focused]
}

// SetFocused moves the cursor to idx. Out-of-range indices are ignored.
func (r *Ring[T]) SetFocused(idx int) {
	if idx >= 0 && idx < len(r.items) {
		r.focused = idx
	}
}

// Add appends an item. If the ring was empty the new item takes focus.
func (r *Ring[T]) Add(item T) {
	r.items = append(r.items, item)
	if r.focused == None {
		r.focused = 0
	}
}

// Get returns the element at idx.
func (r *Ring[T]) Get(idx int) (T, bool) {
	var zero T
	if idx < 0 || idx >= len(r.items) {
		return zero, false
	}
	return r.items[idx], true
}

// GetPtr returns a pointer to the element at idx for in-place mutation.
func (r *Ring[T]) GetPtr(idx int) *T {
	if idx < 0 || idx >= len(r.items) {
		return nil
	}
	return &r.items[idx]
}

// IndexBy returns the index of the first element satisfying pred, or None.
func (r *Ring[T]) IndexBy(pred func(T) bool) int {
	for i, item := range r.items {
		if pred(item) {
			return i
		}
	}
	return None
}

// RemoveBy removes at most one element matching pred and returns it. If the
// removed element was focused, focus moves to the next element with
// wraparound, or becomes None if the ring is now empty. Removing from an
// empty ring, or with no match, is a no-op.
func (r *Ring[T]) RemoveBy(pred func(T) bool) (T, bool) {
	var zero T
	idx := r.IndexBy(pred)
	if idx == None {
		return zero, false
	}
	return r.Remove(idx), true
}

// Remove removes the element at idx, applying the same focus rule as
// RemoveBy.
func (r *Ring[T]) Remove(idx int) T {
	removed := r.items[idx]
	r.items = append(r.items[:idx], r.items[idx+1:]...)
	switch {
	case len(r.items) == 0:
		r.focused = None
	case r.focused == idx:
		// focus the next element, wrapping past the end
		if r.focused >= len(r.items) {
			r.focused = 0
		}
	case r.focused > idx:
		r.focused--
	}
	return removed
}

// CycleFocus advances or retreats the cursor circularly. No-op on an empty
// ring.
func (r *Ring[T]) CycleFocus(dir Direction) {
	if r.focused == None {
		return
	}
	switch dir {
	case Forward:
		r.focused = (r.focused + 1) % len(r.items)
	case Backward:
		r.focused = (r.focused - 1 + len(r.items)) % len(r.items)
	}
}

// Rotate rotates the buffer by one in the given direction, carrying the
// cursor with it so it keeps pointing at the same element.
func (r *Ring[T]) Rotate(dir Direction) {
	if len(r.items) < 2 {
		return
	}
	switch dir {
	case Forward:
		last := r.items[len(r.items)-1]
		copy(r.items[1:], r.items[:len(r.items)-1])
		r.items[0] = last
	case Backward:
		first := r.items[0]
		copy(r.items, r.items[1:])
		r.items[len(r.items)-1] = first
	}
	r.CycleFocus(dir)
}

// Swap exchanges the elements at i and j, adjusting the cursor so it follows
// its element.
func (r *Ring[T]) Swap(i, j int) {
	if i < 0 || j < 0 || i >= len(r.items) || j >= len(r.items) {
		return
	}
	r.items[i], r.items[j] = r.items[j], r.items[i]
	switch r.focused {
	case i:
		r.focused = j
	case j:
		r.focused = i
	}
}

// Iter returns the underlying items in order. The slice is shared; callers
// must not grow or shrink it.
func (r *Ring[T]) Iter() []T {
	return r.items
}

// Apply calls fn on every element in order, by pointer.
func (r *Ring[T]) Apply(fn func(*T)) {
	for i := range r.items {
		fn(&r.items[i])
	}
}
