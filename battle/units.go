package battle

import "sort"

// UnitSet owns every unit that has ever existed in the battle, alive or
// dead (spec.md §3.3: dead units remain in the unit list for ID
// references in history but are excluded from turn order and queries).
type UnitSet struct {
	byID   map[UnitID]*Unit
	order  []UnitID // insertion order, ascending by construction
	nextID UnitID
}

func newUnitSet() *UnitSet {
	return &UnitSet{byID: make(map[UnitID]*Unit)}
}

// Add registers a new unit and assigns it the next UnitID.
func (s *UnitSet) Add(u *Unit) {
	u.ID = s.nextID
	s.nextID++
	s.byID[u.ID] = u
	s.order = append(s.order, u.ID)
}

// Get looks up a unit by ID, which may be dead.
func (s *UnitSet) Get(id UnitID) (*Unit, bool) {
	u, ok := s.byID[id]
	return u, ok
}

// All returns every unit, alive or dead, in ascending ID order.
func (s *UnitSet) All() []*Unit {
	out := make([]*Unit, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// AliveAscending returns all living units in ascending ID order, the
// iteration order spec.md §4.8 requires for deterministic chained deaths.
func (s *UnitSet) AliveAscending() []*Unit {
	all := s.All()
	out := make([]*Unit, 0, len(all))
	for _, u := range all {
		if u.Alive {
			out = append(out, u)
		}
	}
	return out
}

// AlivePlayer returns the living units belonging to player, in ascending
// ID order.
func (s *UnitSet) AlivePlayer(player int) []*Unit {
	out := []*Unit{}
	for _, u := range s.AliveAscending() {
		if u.Player == player {
			out = append(out, u)
		}
	}
	return out
}

// AliveEnemiesOf returns living units whose player differs from player.
func (s *UnitSet) AliveEnemiesOf(player int) []*Unit {
	out := []*Unit{}
	for _, u := range s.AliveAscending() {
		if u.IsEnemyOf(player) {
			out = append(out, u)
		}
	}
	return out
}

// AliveAlliesOf returns living units on the same side as player.
func (s *UnitSet) AliveAlliesOf(player int) []*Unit {
	out := []*Unit{}
	for _, u := range s.AliveAscending() {
		if u.IsAllyOf(player) {
			out = append(out, u)
		}
	}
	return out
}

// WithinRange filters a unit slice to those within rng hexes of origin
// (inclusive).
func (s *UnitSet) WithinRange(m *Map, units []*Unit, origin Hex, rng int) []*Unit {
	out := []*Unit{}
	for _, u := range units {
		pos, ok := m.PositionOf(u.ID)
		if !ok {
			continue
		}
		if pos.Distance(origin) <= rng {
			out = append(out, u)
		}
	}
	return out
}

// sortByIDAsc sorts a unit slice ascending by ID in place, used wherever
// the spec calls for "ties broken by ID ascending".
func sortByIDAsc(units []*Unit) {
	sort.Slice(units, func(i, j int) bool { return units[i].ID < units[j].ID })
}

// Clone deep-copies every unit (including their ability charge counters)
// for snapshotting.
func (s *UnitSet) Clone() *UnitSet {
	out := newUnitSet()
	out.nextID = s.nextID
	out.order = append([]UnitID(nil), s.order...)
	for id, u := range s.byID {
		cp := *u
		cp.Abilities = make([]*Ability, len(u.Abilities))
		for i, a := range u.Abilities {
			ac := *a
			cp.Abilities[i] = &ac
		}
		out.byID[id] = &cp
	}
	return out
}
