package battle

import "fmt"

// ValidationError is a caller error (spec.md §7 category 1): malformed
// input detected synchronously at construction. NewBattle fails atomically
// when it returns one, grounded on lib/game.go's NewGame validation style.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid battle setup: %s", e.Reason)
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

var validTriggers = map[Trigger]bool{
	TriggerPassive: true, TriggerTurnStart: true, TriggerOnHit: true,
	TriggerOnKill: true, TriggerWounded: true, TriggerEndTurn: true,
	TriggerLament: true, TriggerHarvest: true,
}

var validEffects = map[Effect]bool{
	EffectHeal: true, EffectFortify: true, EffectStrike: true, EffectSplash: true,
	EffectSunder: true, EffectRamp: true, EffectPush: true, EffectRetreat: true,
	EffectFreeze: true, EffectSummon: true, EffectShadowstep: true,
	EffectSilence: true, EffectReady: true, EffectBlock: true, EffectExecute: true,
	EffectArmor: true, EffectBoost: true, EffectUndying: true, EffectLamentAura: true,
}

var validTargets = map[Target]bool{
	TargetSelf: true, TargetTarget: true, TargetRandom: true,
	TargetArea: true, TargetGlobal: true,
}

// validateAbility rejects unknown trigger/effect/target names at
// construction (spec.md §7: "Abilities with unknown effect names are
// rejected at construction, not silently skipped"), and normalizes Charge
// to its documented default of 1.
func validateAbility(a *Ability, unitName string, idx int) error {
	if !validTriggers[a.Trigger] {
		return validationErrorf("unit %q ability %d: unknown trigger %q", unitName, idx, a.Trigger)
	}
	if !validEffects[a.Effect] {
		return validationErrorf("unit %q ability %d: unknown effect %q", unitName, idx, a.Effect)
	}
	if !validTargets[a.Target] {
		return validationErrorf("unit %q ability %d: unknown target %q", unitName, idx, a.Target)
	}
	if a.Charge <= 0 {
		a.Charge = 1
	}
	if a.Value < 0 {
		a.Value = 0
	}
	return nil
}

// validateUnitSpec checks the caller-error conditions spec.md §7 names:
// stat sanity, plus a negative count. expandSpecs rejects count < 1 itself
// before calling this, so the count check here never fires from there.
func validateUnitSpec(s *UnitSpec) error {
	if s.Name == "" {
		return validationErrorf("unit spec missing name")
	}
	if s.MaxHP <= 0 {
		return validationErrorf("unit %q: max_hp must be positive", s.Name)
	}
	if s.Range < 1 {
		return validationErrorf("unit %q: attack_range must be >= 1", s.Name)
	}
	if s.Count < 0 {
		return validationErrorf("unit %q: count must be >= 1 when set", s.Name)
	}
	return nil
}

// GuardViolation records a runtime invariant broken mid-battle (spec.md §7
// category 2). The battle is not crashed; Battle.Winner is forced to a
// draw (0) so a host can salvage UX, and the violation is recorded for
// diagnostics.
type GuardViolation struct {
	Reason string
}

func (e *GuardViolation) Error() string {
	return fmt.Sprintf("battle guard violated: %s", e.Reason)
}

// guardFail records a guard violation and forces the battle to a draw,
// grounded on lib/game.go's validateGameState.
func (b *Battle) guardFail(format string, args ...any) {
	v := &GuardViolation{Reason: fmt.Sprintf(format, args...)}
	b.GuardViolations = append(b.GuardViolations, v)
	w := 0
	b.Winner = &w
}
