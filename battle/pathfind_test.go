package battle

import "testing"

func TestShortestPathOpenBoard(t *testing.T) {
	m := NewMap(5)
	src := Hex{Col: 0, Row: 0}
	dst := Hex{Col: 3, Row: 0}
	length, first, ok := ShortestPath(m, src, dst)
	if !ok {
		t.Fatalf("expected a path on an open board")
	}
	if length != 3 {
		t.Errorf("expected path length 3, got %d", length)
	}
	if first.Distance(src) != 1 {
		t.Errorf("first step %v is not adjacent to src %v", first, src)
	}
}

func TestShortestPathBlockedDestinationOnlyIsPassable(t *testing.T) {
	m := NewMap(5)
	src := Hex{Col: 0, Row: 0}
	dst := Hex{Col: 2, Row: 0}
	m.Place(UnitID(99), dst) // occupied destination is still a valid endpoint
	_, _, ok := ShortestPath(m, src, dst)
	if !ok {
		t.Fatalf("expected dst to be reachable even though occupied")
	}
}

func TestShortestPathUnreachableWhenFullyBoxed(t *testing.T) {
	m := NewMap(5)
	src := Hex{Col: 8, Row: 2}
	dst := Hex{Col: 8, Row: 0}
	for i, nb := range src.Neighbors() {
		m.Place(UnitID(100+i), nb)
	}
	_, _, ok := ShortestPath(m, src, dst)
	if ok {
		t.Errorf("expected no path out of a fully boxed-in hex")
	}
}

func TestClosestEnemyBreaksTiesByID(t *testing.T) {
	units := newUnitSet()
	near1 := &Unit{Name: "n1", Player: 2, Alive: true}
	near2 := &Unit{Name: "n2", Player: 2, Alive: true}
	units.Add(near1)
	units.Add(near2)

	m := NewMap(5)
	m.Place(near1.ID, Hex{Col: 2, Row: 0})
	m.Place(near2.ID, Hex{Col: 0, Row: 2})

	src := Hex{Col: 0, Row: 0}
	target, _, _, found := ClosestEnemy(m, units, src, 1)
	if !found {
		t.Fatalf("expected to find a closest enemy")
	}
	if target.ID != near1.ID {
		t.Errorf("expected tie broken toward lowest ID %d, got %d", near1.ID, target.ID)
	}
}
