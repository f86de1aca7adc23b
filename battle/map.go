package battle

// Cols is the fixed board width (spec.md §2.2: "17-column ... board").
const Cols = 17

// MinRows and MaxRows bound the board height, chosen at construction time
// from army size (spec.md §6.1).
const (
	MinRows = 5
	MaxRows = 15
)

// Map tracks hex occupancy for the battle's board. It owns no unit data
// beyond a position index — Unit is the source of truth for a unit's own
// fields; Map is purely "who stands where", grounded on lib/world.go's
// UnitAt/AddUnit/RemoveUnit/MoveUnit occupancy index.
type Map struct {
	Rows int
	byID map[UnitID]Hex
	byAt map[Hex]UnitID
}

// NewMap creates an empty occupancy map with the given row count.
func NewMap(rows int) *Map {
	if rows < MinRows {
		rows = MinRows
	}
	if rows > MaxRows {
		rows = MaxRows
	}
	return &Map{
		Rows: rows,
		byID: make(map[UnitID]Hex),
		byAt: make(map[Hex]UnitID),
	}
}

// InBounds reports whether h is a valid hex on this map.
func (m *Map) InBounds(h Hex) bool {
	return h.Col >= 0 && h.Col < Cols && h.Row >= 0 && h.Row < m.Rows
}

// Occupant returns the unit ID standing at h, and whether one exists.
func (m *Map) Occupant(h Hex) (UnitID, bool) {
	id, ok := m.byAt[h]
	return id, ok
}

// PositionOf returns the hex a unit currently occupies.
func (m *Map) PositionOf(id UnitID) (Hex, bool) {
	h, ok := m.byID[id]
	return h, ok
}

// Place puts a unit at a hex. The hex must be unoccupied and in bounds.
func (m *Map) Place(id UnitID, h Hex) bool {
	if !m.InBounds(h) {
		return false
	}
	if _, occupied := m.byAt[h]; occupied {
		return false
	}
	m.byID[id] = h
	m.byAt[h] = id
	return true
}

// Remove takes a unit off the map entirely (used on death).
func (m *Map) Remove(id UnitID) {
	if h, ok := m.byID[id]; ok {
		delete(m.byAt, h)
		delete(m.byID, id)
	}
}

// Move relocates a unit to a new, currently-unoccupied hex.
func (m *Map) Move(id UnitID, to Hex) bool {
	from, ok := m.byID[id]
	if !ok {
		return false
	}
	if !m.InBounds(to) {
		return false
	}
	if _, occupied := m.byAt[to]; occupied {
		return false
	}
	delete(m.byAt, from)
	m.byAt[to] = id
	m.byID[id] = to
	return true
}

// Clone deep-copies the occupancy index for snapshotting.
func (m *Map) Clone() *Map {
	out := &Map{
		Rows: m.Rows,
		byID: make(map[UnitID]Hex, len(m.byID)),
		byAt: make(map[Hex]UnitID, len(m.byAt)),
	}
	for k, v := range m.byID {
		out.byID[k] = v
	}
	for k, v := range m.byAt {
		out.byAt[k] = v
	}
	return out
}

// RowsForArmySize chooses a row count R in [MinRows,MaxRows] that fits
// both armies, per spec.md §6.1's "implementations may choose the exact
// formula but must produce R in [5,15] and fit all units". This is a
// packing heuristic, not the sole guarantee of fit: deployRangeTier's
// placeNearestFree fallback searches the whole board for a tier that
// overflows its column, and NewBattle rejects an army that can't possibly
// fit the board's total capacity at construction time.
func RowsForArmySize(p1, p2 int) int {
	n := p1
	if p2 > n {
		n = p2
	}
	// Grow with ceil(n/Cols), padded on top of MinRows. A range tier with
	// more units than this many rows still overflows its column; those
	// units are placed by deployRangeTier's placeNearestFree fallback.
	rows := (n + Cols - 1) / Cols
	rows = rows*2 + MinRows
	if rows < MinRows {
		rows = MinRows
	}
	if rows > MaxRows {
		rows = MaxRows
	}
	return rows
}
