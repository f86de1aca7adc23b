package battle

import "testing"

func TestHexDistanceSameRow(t *testing.T) {
	a := Hex{Col: 2, Row: 2}
	b := Hex{Col: 5, Row: 2}
	if d := a.Distance(b); d != 3 {
		t.Errorf("expected distance 3, got %d", d)
	}
}

func TestHexDistanceSelf(t *testing.T) {
	a := Hex{Col: 4, Row: 1}
	if d := a.Distance(a); d != 0 {
		t.Errorf("expected distance 0, got %d", d)
	}
}

func TestNeighborsAreDistanceOne(t *testing.T) {
	h := Hex{Col: 5, Row: 3}
	for _, nb := range h.Neighbors() {
		if d := h.Distance(nb); d != 1 {
			t.Errorf("neighbor %v of %v has distance %d, want 1", nb, h, d)
		}
	}
}

func TestPushDirectionHorizontalOnly(t *testing.T) {
	pusher := Hex{Col: 3, Row: 2}
	target := Hex{Col: 5, Row: 2}
	if dir := PushDirection(pusher, target); dir != 1 {
		t.Errorf("expected push direction +1, got %d", dir)
	}
	target2 := Hex{Col: 1, Row: 2}
	if dir := PushDirection(pusher, target2); dir != -1 {
		t.Errorf("expected push direction -1, got %d", dir)
	}
	// tie resolves to +1
	if dir := PushDirection(pusher, pusher); dir != 1 {
		t.Errorf("expected tie to resolve to +1, got %d", dir)
	}
}
