package battle

import "fmt"

// unitTuple is the compact per-unit piece of a round snapshot (spec.md
// §4.9): "(id, hp, pos, armor, damage, count)".
type unitTuple struct {
	id     UnitID
	hp     int
	pos    Hex
	armor  int
	damage int
}

// roundSnapshot is the stalemate-detection tuple taken at the start of
// every round (spec.md §4.9, §8).
type roundSnapshot struct {
	units []unitTuple
	count int
}

func takeRoundSnapshot(b *Battle) roundSnapshot {
	alive := b.Units.AliveAscending()
	s := roundSnapshot{units: make([]unitTuple, 0, len(alive)), count: len(alive)}
	for _, u := range alive {
		pos, _ := b.Map.PositionOf(u.ID)
		s.units = append(s.units, unitTuple{id: u.ID, hp: u.HP, pos: pos, armor: u.Armor, damage: u.Damage})
	}
	return s
}

func sameRoundSnapshot(a, b roundSnapshot) bool {
	if a.count != b.count || len(a.units) != len(b.units) {
		return false
	}
	for i := range a.units {
		if a.units[i] != b.units[i] {
			return false
		}
	}
	return true
}

// snapshot is a full value-copy of battle state, used for both Undo
// (spec.md §6.2) and the exported Snapshot/Restore escape hatch (spec.md
// §6.2 supplement), grounded on lib/world.go's Clone.
type snapshot struct {
	units        *UnitSet
	mapState     *Map
	rngState     uint64
	turnOrder    []UnitID
	currentIndex int
	round        int
	winner       *int
	log          []string
	stalemate    []roundSnapshot
	stalemateCnt int
	applyImm     bool
	current      *LastAction
}

func (b *Battle) captureSnapshot() *snapshot {
	var winner *int
	if b.Winner != nil {
		w := *b.Winner
		winner = &w
	}
	return &snapshot{
		units:        b.Units.Clone(),
		mapState:     b.Map.Clone(),
		rngState:     b.rng.Snapshot(),
		turnOrder:    append([]UnitID(nil), b.TurnOrder...),
		currentIndex: b.CurrentIndex,
		round:        b.Round,
		winner:       winner,
		log:          append([]string(nil), b.Log...),
		stalemate:    append([]roundSnapshot(nil), b.stalemateSnapshots...),
		stalemateCnt: b.StalemateCount,
		applyImm:     b.ApplyEventsImmediately,
		current:      b.current,
	}
}

func (b *Battle) restoreSnapshot(s *snapshot) {
	// Copy again so the restored battle never shares units or map with s,
	// which keeps s intact for a later Restore of the same Snapshot.
	b.Units = s.units.Clone()
	b.Map = s.mapState.Clone()
	b.rng.Restore(s.rngState)
	b.TurnOrder = append([]UnitID(nil), s.turnOrder...)
	b.CurrentIndex = s.currentIndex
	b.Round = s.round
	b.Winner = s.winner
	b.Log = append([]string(nil), s.log...)
	b.stalemateSnapshots = append([]roundSnapshot(nil), s.stalemate...)
	b.StalemateCount = s.stalemateCnt
	b.ApplyEventsImmediately = s.applyImm
	b.current = s.current
	b.eventQueue = nil
	b.draining = false
	b.drainDepth = 0
	b.shadowstepPending = false
}

// Undo restores the previous snapshot including RNG state, failing if the
// undo stack is empty (spec.md §6.2).
func (b *Battle) Undo() bool {
	if len(b.history) == 0 {
		return false
	}
	s := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	b.restoreSnapshot(s)
	return true
}

// Snapshot exports the current battle state as an opaque value that can
// later be handed to Restore (spec.md §6.2 supplement, for hosts that want
// to branch or save states outside the undo stack).
type Snapshot struct{ s *snapshot }

// Snapshot captures the current state.
func (b *Battle) Snapshot() Snapshot { return Snapshot{s: b.captureSnapshot()} }

// Restore resets the battle to a previously captured Snapshot.
func (b *Battle) Restore(s Snapshot) error {
	if s.s == nil {
		return fmt.Errorf("battle: empty snapshot")
	}
	b.restoreSnapshot(s.s)
	return nil
}
