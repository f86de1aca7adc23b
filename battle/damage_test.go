package battle

import "testing"

// TestBlockAbsorbsUpToItsValue mirrors spec scenario 2: attacker dmg 5 vs a
// defender with hp 10, armor 0, and a passive block ability of value 1.
func TestBlockAbsorbsUpToItsValue(t *testing.T) {
	b := newTestBattle(t,
		[]UnitSpec{specAt("attacker", 20, 5, 1, 0, 0)},
		[]UnitSpec{specAt("defender", 10, 0, 1, 5, 0,
			AbilitySpec{Trigger: "passive", Effect: "block", Target: "self", Value: 1})},
		1)
	attacker, _ := b.Units.Get(0)
	defender, _ := b.Units.Get(1)

	if actual := b.applyDamage(defender, 5, attacker); actual != 0 {
		t.Errorf("first hit: expected blocked (0 damage), got %d", actual)
	}
	if defender.BlockUsed != 1 || defender.HP != 10 {
		t.Errorf("first hit: expected block_used=1 hp=10, got block_used=%d hp=%d", defender.BlockUsed, defender.HP)
	}

	if actual := b.applyDamage(defender, 5, attacker); actual != 5 {
		t.Errorf("second hit: expected 5 damage through, got %d", actual)
	}
	if defender.HP != 5 {
		t.Errorf("second hit: expected hp=5, got %d", defender.HP)
	}

	if actual := b.applyDamage(defender, 5, attacker); actual != 5 {
		t.Errorf("third hit: expected 5 damage through, got %d", actual)
	}
	if defender.HP != 0 || defender.Alive {
		t.Errorf("third hit: expected hp=0 and dead, got hp=%d alive=%v", defender.HP, defender.Alive)
	}
}

// TestUndyingSaveReducesDamageInsteadOfDying mirrors spec scenario 3.
func TestUndyingSaveReducesDamageInsteadOfDying(t *testing.T) {
	b := newTestBattle(t,
		[]UnitSpec{specAt("attacker", 20, 10, 1, 0, 0)},
		[]UnitSpec{
			specAt("defender", 10, 5, 1, 5, 2),
			specAt("guardian", 10, 0, 1, 5, 3,
				AbilitySpec{Trigger: "passive", Effect: "undying", Target: "self", Value: 3, Aura: 2}),
		},
		1)
	attacker, _ := b.Units.Get(0)
	defender, _ := b.Units.Get(1)
	defender.HP = 2 // spec fixes defender hp at 2 for this scenario

	actual := b.applyDamage(defender, 10, attacker)
	if actual != 0 {
		t.Errorf("expected undying to reduce actual damage to 0, got %d", actual)
	}
	if defender.HP != 2 {
		t.Errorf("expected defender hp unchanged at 2, got %d", defender.HP)
	}
	if defender.Damage != 2 {
		t.Errorf("expected defender.damage reduced to 2 (5-3), got %d", defender.Damage)
	}
	if !defender.Alive {
		t.Errorf("expected defender to survive via undying save")
	}
}

// TestExecuteKillsBelowThreshold mirrors spec scenario 4.
func TestExecuteKillsBelowThreshold(t *testing.T) {
	b := newTestBattle(t,
		[]UnitSpec{specAt("executioner", 20, 0, 1, 5, 2,
			AbilitySpec{Trigger: "passive", Effect: "execute", Target: "self", Value: 4, Aura: 5})},
		[]UnitSpec{specAt("defender", 10, 0, 1, 2, 2)},
		1)
	executioner, _ := b.Units.Get(0)
	defender, _ := b.Units.Get(1)

	actual := b.applyDamage(defender, 7, executioner)
	if actual != 7 {
		t.Errorf("expected 7 damage to land, got %d", actual)
	}
	if defender.Alive {
		t.Errorf("expected defender killed by execute at hp<=4")
	}
}

// TestArmorReducesDamage sanity-checks that the defender's base armor is
// subtracted from incoming damage.
func TestArmorReducesDamage(t *testing.T) {
	b := newTestBattle(t,
		[]UnitSpec{specAt("attacker", 20, 0, 1, 0, 0)},
		[]UnitSpec{specAt("defender", 10, 0, 1, 5, 0)},
		1)
	attacker, _ := b.Units.Get(0)
	defender, _ := b.Units.Get(1)
	defender.Armor = 3

	if actual := b.applyDamage(defender, 5, attacker); actual != 2 {
		t.Errorf("expected 5-3=2 damage through armor, got %d", actual)
	}
}
