package battle

// applyDamage runs the full damage pipeline (spec.md §4.6): block, armor,
// undying, apply, wounded/execute, death. Returns the actual damage dealt;
// callers may ignore it. source may be nil; a source that has since died
// is passed as is, with Alive false.
func (b *Battle) applyDamage(target *Unit, amount int, source *Unit) int {
	if !target.Alive {
		return 0
	}

	if b.checkBlock(target) {
		return 0
	}

	effArmor := b.effectiveArmor(target)
	actual := amount - effArmor
	if actual < 0 {
		actual = 0
	}
	if actual == 0 {
		return 0
	}

	if target.HP-actual <= 0 && target.Damage > 0 {
		if b.checkUndying(target) {
			return 0
		}
	}

	target.HP -= actual

	if target.HP > 0 {
		b.fireTrigger(TriggerWounded, target, source)
		if !target.Alive {
			return actual
		}
		if killer, ok := b.checkExecute(target); ok {
			target.Alive = false
			b.handleDeath(target, killer)
		}
		return actual
	}

	target.Alive = false
	b.handleDeath(target, source)
	return actual
}

// checkBlock reports whether a non-silenced block passive absorbed this
// hit, incrementing its per-round counter (spec.md §4.6 step 1).
func (b *Battle) checkBlock(target *Unit) bool {
	if target.Silenced {
		return false
	}
	for _, a := range target.Abilities {
		if a.Trigger != TriggerPassive || a.Effect != EffectBlock {
			continue
		}
		if target.BlockUsed < a.Value {
			target.BlockUsed++
			return true
		}
	}
	return false
}

// effectiveArmor sums target's base armor, its own un-silenced armor
// passives, and every living, un-silenced ally's armor aura in range
// (spec.md §4.6 step 2).
func (b *Battle) effectiveArmor(target *Unit) int {
	total := target.Armor

	if !target.Silenced {
		for _, a := range target.Abilities {
			if a.Trigger == TriggerPassive && a.Effect == EffectArmor {
				total += a.Value
			}
		}
	}

	targetPos := b.posOf(target)
	for _, ally := range b.Units.AliveAlliesOf(target.Player) {
		if ally.ID == target.ID || ally.Silenced {
			continue
		}
		allyPos := b.posOf(ally)
		dist := allyPos.Distance(targetPos)
		for _, a := range ally.Abilities {
			if a.Trigger == TriggerPassive && a.Effect == EffectArmor && a.Aura >= dist {
				total += a.Value
			}
		}
	}
	return total
}

// checkUndying looks for an alive, un-silenced ally with a passive/undying
// ability whose aura reaches target and whose value the target's own
// damage can cover, ties broken by ally ID ascending (spec.md §4.6 step
// 4). On success it pays the cost and reports true.
func (b *Battle) checkUndying(target *Unit) bool {
	var candidates []*Unit
	values := make(map[UnitID]int)

	targetPos := b.posOf(target)
	for _, ally := range b.Units.AliveAlliesOf(target.Player) {
		if ally.ID == target.ID || ally.Silenced {
			continue
		}
		allyPos := b.posOf(ally)
		dist := allyPos.Distance(targetPos)
		for _, a := range ally.Abilities {
			if a.Trigger == TriggerPassive && a.Effect == EffectUndying && a.Aura >= dist && a.Value <= target.Damage {
				candidates = append(candidates, ally)
				values[ally.ID] = a.Value
				break
			}
		}
	}
	if len(candidates) == 0 {
		return false
	}
	sortByIDAsc(candidates)
	best := candidates[0]

	target.Damage -= values[best.ID]
	b.current.UndyingSaves = append(b.current.UndyingSaves, UndyingSave{
		TargetPos: targetPos,
		SourcePos: b.posOf(best),
	})
	return true
}

// checkExecute looks for an enemy with a passive/execute ability whose
// aura reaches target and whose value target's remaining hp has dropped
// to or below, ties broken by enemy ID ascending, first match wins
// (spec.md §4.6 step 5).
func (b *Battle) checkExecute(target *Unit) (*Unit, bool) {
	var candidates []*Unit

	targetPos := b.posOf(target)
	for _, enemy := range b.Units.AliveEnemiesOf(target.Player) {
		if enemy.Silenced {
			continue
		}
		enemyPos := b.posOf(enemy)
		dist := enemyPos.Distance(targetPos)
		for _, a := range enemy.Abilities {
			if a.Trigger == TriggerPassive && a.Effect == EffectExecute && a.Aura >= dist && target.HP <= a.Value {
				candidates = append(candidates, enemy)
				break
			}
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}
	sortByIDAsc(candidates)
	return candidates[0], true
}
