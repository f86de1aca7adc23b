package battle

import "testing"

// newTestBattle builds a minimal battle from already-placed unit specs,
// grounded on lib's testGameBuilder pattern (lib/attack_test.go) but
// trimmed to this package's own UnitSpec. It also starts an empty
// LastAction record, as Step does, so tests that call the damage pipeline
// or effect handlers directly have somewhere to record their events.
func newTestBattle(t *testing.T, p1, p2 []UnitSpec, seed int64) *Battle {
	b, err := NewBattle(p1, p2, seed, Options{})
	if err != nil {
		t.Fatalf("NewBattle failed: %v", err)
	}
	b.current = newLastAction()
	return b
}

func specAt(name string, maxHP, dmg, rng int, col, row int, abilities ...AbilitySpec) UnitSpec {
	return UnitSpec{
		Name:      name,
		MaxHP:     maxHP,
		Damage:    dmg,
		Range:     rng,
		Position:  &HexSpec{Col: col, Row: row},
		Abilities: abilities,
	}
}
