package battle

import "testing"

// allPlaced asserts that every alive unit in b.Units has a Map position,
// the Termination-property invariant this file's overflow tests guard
// (spec.md §8: a unit with no position can never act and never dies).
func allPlaced(t *testing.T, b *Battle) {
	t.Helper()
	for _, u := range b.Units.AliveAscending() {
		if _, ok := b.Map.PositionOf(u.ID); !ok {
			t.Errorf("unit %d (%s) alive but unplaced", u.ID, u.Name)
		}
	}
}

func TestDeployPlacesEveryUnitWithinBounds(t *testing.T) {
	p1 := []UnitSpec{{Name: "archer", MaxHP: 5, Damage: 3, Range: 3, Count: 6}}
	p2 := []UnitSpec{{Name: "fighter", MaxHP: 6, Damage: 4, Range: 1, Count: 6}}
	b := newTestBattle(t, p1, p2, 1)
	allPlaced(t, b)
	for _, u := range b.Units.AliveAscending() {
		pos, _ := b.Map.PositionOf(u.ID)
		if !b.Map.InBounds(pos) {
			t.Fatalf("unit %d placed out of bounds at %v", u.ID, pos)
		}
	}
}

// TestDeployOverflowTierSpillsIntoAdjacentColumns exercises a single
// range-tier column with more units than any board's MaxRows (15), which
// previously caused placeNearestFree to exhaust its same-column search and
// silently drop the surplus units (never added to Map.byID despite
// Alive=true), permanently stalling their turns. placeNearestFree must now
// find room elsewhere on the board.
func TestDeployOverflowTierSpillsIntoAdjacentColumns(t *testing.T) {
	p1 := []UnitSpec{{Name: "blade", MaxHP: 4, Damage: 2, Range: 1, Count: 20}}
	p2 := []UnitSpec{{Name: "blade", MaxHP: 4, Damage: 2, Range: 1, Count: 20}}
	b := newTestBattle(t, p1, p2, 7)
	allPlaced(t, b)
	if got := len(b.Units.AliveAscending()); got != 40 {
		t.Fatalf("expected 40 alive units, got %d", got)
	}
}

// TestDeployRejectsArmyExceedingBoardCapacity exercises the category-1
// construction failure path: an army too large for the board to ever hold,
// regardless of how generously rows are chosen, must fail NewBattle rather
// than silently dropping units.
func TestDeployRejectsArmyExceedingBoardCapacity(t *testing.T) {
	p1 := []UnitSpec{{Name: "blade", MaxHP: 4, Damage: 2, Range: 1, Count: MaxRows * Cols}}
	p2 := []UnitSpec{{Name: "blade", MaxHP: 4, Damage: 2, Range: 1, Count: 1}}
	_, err := NewBattle(p1, p2, 1, Options{})
	if err == nil {
		t.Fatal("expected a validation error for an oversized army, got nil")
	}
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected a *ValidationError, got %T: %v", err, err)
	}
}

func TestPlaceNearestFreeFindsHexOutsideStartingColumn(t *testing.T) {
	m := NewMap(MinRows)
	for row := 0; row < m.Rows; row++ {
		m.Place(UnitID(row+1), Hex{Col: 8, Row: row})
	}
	u := &Unit{ID: 999}
	if !placeNearestFree(m, u, Hex{Col: 8, Row: m.Rows / 2}) {
		t.Fatal("expected placeNearestFree to find a free hex in a neighboring column")
	}
	pos, ok := m.PositionOf(u.ID)
	if !ok {
		t.Fatal("unit was not placed")
	}
	if pos.Col == 8 {
		t.Fatalf("expected spillover into a different column, stayed at %v", pos)
	}
}
