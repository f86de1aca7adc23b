package battle

import "testing"

// TestUndoIsLeftInverseOfStep asserts b.Undo() after b.Step() restores the
// exact pre-step state, including RNG trajectory (spec.md §6.2).
func TestUndoIsLeftInverseOfStep(t *testing.T) {
	b := newTestBattle(t,
		[]UnitSpec{specAt("attacker", 10, 3, 1, 0, 0)},
		[]UnitSpec{specAt("defender", 10, 3, 1, 1, 0)},
		42)

	before := takeRoundSnapshot(b)
	beforeRNG := b.rng.Snapshot()

	if !b.Step() {
		t.Fatalf("expected Step to continue (no winner yet)")
	}

	if !b.Undo() {
		t.Fatalf("expected Undo to succeed")
	}

	after := takeRoundSnapshot(b)
	if !sameRoundSnapshot(before, after) {
		t.Errorf("expected undo to restore identical unit state")
	}
	if b.rng.Snapshot() != beforeRNG {
		t.Errorf("expected undo to restore identical rng state")
	}
}

func TestUndoFailsWithEmptyHistory(t *testing.T) {
	b := newTestBattle(t,
		[]UnitSpec{specAt("attacker", 10, 3, 1, 0, 0)},
		[]UnitSpec{specAt("defender", 10, 3, 1, 1, 0)},
		1)
	if b.Undo() {
		t.Errorf("expected Undo to fail with no history taken yet")
	}
}

// TestSnapshotRestoreRoundTrip exercises the exported escape hatch
// (spec.md §6.2 supplement) independent of the undo stack.
func TestSnapshotRestoreRoundTrip(t *testing.T) {
	b := newTestBattle(t,
		[]UnitSpec{specAt("attacker", 10, 3, 1, 0, 0)},
		[]UnitSpec{specAt("defender", 10, 3, 1, 1, 0)},
		7)

	snap := b.Snapshot()
	roundBefore := b.Round

	for i := 0; i < 5 && !b.IsOver(); i++ {
		b.Step()
	}

	if err := b.Restore(snap); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if b.Round != roundBefore {
		t.Errorf("expected round restored to %d, got %d", roundBefore, b.Round)
	}
	if b.IsOver() {
		t.Errorf("expected restored battle to not be over")
	}
}

// TestStalemateDetectionEndsInDraw mirrors spec.md §4.9/§8: three
// consecutive identical round snapshots force a draw (winner 0), using two
// zero-damage units frozen in place for the whole test, so nothing in the
// round snapshot ever changes and the battle can only resolve via stalemate.
func TestStalemateDetectionEndsInDraw(t *testing.T) {
	b := newTestBattle(t,
		[]UnitSpec{specAt("frozen1", 10, 0, 1, 0, 0)},
		[]UnitSpec{specAt("frozen2", 10, 0, 1, 9, 0)},
		3)

	a, _ := b.Units.Get(0)
	d, _ := b.Units.Get(1)
	a.FrozenTurns = 999
	d.FrozenTurns = 999

	cont := true
	for i := 0; i < 2000 && cont && !b.IsOver(); i++ {
		cont = b.Step()
	}

	if !b.IsOver() {
		t.Fatalf("expected battle to end via stalemate within step cap")
	}
	if b.Winner == nil || *b.Winner != 0 {
		t.Errorf("expected a draw (winner=0) from stalemate, got %v", b.Winner)
	}
}

// TestDecisiveBattleProducesAWinner runs a straightforward lone-archer vs
// melee matchup to a conclusion, asserting only that it resolves decisively
// (not a draw) within a generous step cap. The exact winner depends on RNG
// trajectory details not worth pinning down here.
func TestDecisiveBattleProducesAWinner(t *testing.T) {
	b := newTestBattle(t,
		[]UnitSpec{specAt("archer", 8, 4, 4, 0, 0)},
		[]UnitSpec{specAt("brute", 20, 5, 1, 9, 0)},
		99)

	cont := true
	for i := 0; i < 5000 && cont; i++ {
		cont = b.Step()
	}

	if !b.IsOver() {
		t.Fatalf("expected battle to resolve within step cap")
	}
	if b.Winner == nil || *b.Winner == 0 {
		t.Errorf("expected a decisive winner, got %v", b.Winner)
	}
}

// TestLoneArcherScenarioMatchesSpec reproduces spec.md §8 concrete scenario
// 1 verbatim: archer (hp 5, dmg 3, range 3) at (5,2) vs fighter (hp 6, dmg
// 4, range 1) at (11,2), seed 1. The fighter walks in over several rounds,
// takes 3-dmg hits from the archer, then kills in 2 hits once in range.
// Expected winner = 2.
func TestLoneArcherScenarioMatchesSpec(t *testing.T) {
	b := newTestBattle(t,
		[]UnitSpec{specAt("archer", 5, 3, 3, 5, 2)},
		[]UnitSpec{specAt("fighter", 6, 4, 1, 11, 2)},
		1)

	cont := true
	for i := 0; i < 500 && cont; i++ {
		cont = b.Step()
	}

	if !b.IsOver() {
		t.Fatalf("expected battle to resolve within step cap")
	}
	if b.Winner == nil || *b.Winner != 2 {
		t.Errorf("expected winner = 2 per spec.md scenario 1, got %v", b.Winner)
	}
}
