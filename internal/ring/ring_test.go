package ring

import "testing"

func TestAddFocusesFirstElement(t *testing.T) {
	r := New[int]()
	if r.FocusedIdx() != None {
		t.Fatalf("empty ring should have no focus, got %d", r.FocusedIdx())
	}
	r.Add(10)
	if r.FocusedIdx() != 0 {
		t.Fatalf("first element should take focus, got %d", r.FocusedIdx())
	}
	r.Add(20)
	r.Add(30)
	if r.FocusedIdx() != 0 {
		t.Fatalf("later adds should not move focus, got %d", r.FocusedIdx())
	}
}

func TestRemoveFocusedWrapsToNext(t *testing.T) {
	r := FromSlice([]int{1, 2, 3})
	r.SetFocused(2)
	r.Remove(2)
	if r.FocusedIdx() != 0 {
		t.Fatalf("removing last focused element should wrap focus to 0, got %d", r.FocusedIdx())
	}

	r = FromSlice([]int{1, 2, 3})
	r.SetFocused(1)
	r.Remove(1)
	if r.FocusedIdx() != 1 {
		t.Fatalf("focus should move to the next element, got %d", r.FocusedIdx())
	}
	if v, _ := r.Focused(); v != 3 {
		t.Fatalf("expected 3 focused, got %d", v)
	}
}

func TestRemoveBeforeFocusedShiftsCursor(t *testing.T) {
	r := FromSlice([]int{1, 2, 3})
	r.SetFocused(2)
	r.Remove(0)
	if v, _ := r.Focused(); v != 3 {
		t.Fatalf("focus should follow its element, got %d", v)
	}
}

func TestRemoveLastElementClearsFocus(t *testing.T) {
	r := New[string]()
	r.Add("only")
	r.Remove(0)
	if r.FocusedIdx() != None {
		t.Fatalf("emptied ring should have no focus, got %d", r.FocusedIdx())
	}
	// removing from an empty ring is a no-op
	if _, ok := r.RemoveBy(func(string) bool { return true }); ok {
		t.Fatalf("RemoveBy on empty ring should not match")
	}
}

func TestRemoveByRemovesAtMostOne(t *testing.T) {
	r := FromSlice([]int{5, 5, 5})
	r.RemoveBy(func(v int) bool { return v == 5 })
	if r.Len() != 2 {
		t.Fatalf("expected a single removal, len = %d", r.Len())
	}
}

func TestCycleFocusFullLoopRestoresIndex(t *testing.T) {
	r := FromSlice([]int{1, 2, 3, 4, 5})
	r.SetFocused(2)
	for i := 0; i < r.Len(); i++ {
		r.CycleFocus(Forward)
	}
	if r.FocusedIdx() != 2 {
		t.Fatalf("cycling n times should restore the cursor, got %d", r.FocusedIdx())
	}
}

func TestCycleFocusEmptyIsNoop(t *testing.T) {
	r := New[int]()
	r.CycleFocus(Forward)
	r.CycleFocus(Backward)
	if r.FocusedIdx() != None {
		t.Fatalf("cycling an empty ring should leave focus unset")
	}
}

func TestCursorAlwaysValidUnderChurn(t *testing.T) {
	r := New[int]()
	ops := []func(){
		func() { r.Add(r.Len()) },
		func() { r.CycleFocus(Forward) },
		func() { r.CycleFocus(Backward) },
		func() {
			if !r.IsEmpty() {
				r.Remove(r.Len() - 1)
			}
		},
		func() { r.Rotate(Forward) },
	}
	for i := 0; i < 200; i++ {
		ops[i%len(ops)]()
		if r.IsEmpty() {
			if r.FocusedIdx() != None {
				t.Fatalf("op %d: empty ring with cursor %d", i, r.FocusedIdx())
			}
		} else if r.FocusedIdx() < 0 || r.FocusedIdx() >= r.Len() {
			t.Fatalf("op %d: cursor %d out of bounds (len %d)", i, r.FocusedIdx(), r.Len())
		}
	}
}

func TestRotateCarriesFocus(t *testing.T) {
	r := FromSlice([]string{"a", "b", "c"})
	r.SetFocused(1)
	r.Rotate(Forward)
	if v, _ := r.Focused(); v != "b" {
		t.Fatalf("rotate should keep the same element focused, got %q", v)
	}
	if r.FocusedIdx() != 2 {
		t.Fatalf("expected cursor at 2 after rotate, got %d", r.FocusedIdx())
	}
}

func TestSwapFollowsFocus(t *testing.T) {
	r := FromSlice([]int{1, 2, 3})
	r.SetFocused(0)
	r.Swap(0, 2)
	if r.FocusedIdx() != 2 {
		t.Fatalf("swap should carry focus with its element, got %d", r.FocusedIdx())
	}
}
