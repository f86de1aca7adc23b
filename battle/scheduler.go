package battle

// Step drives exactly one unit's turn (spec.md §4.7), the engine's only
// driver. It returns false once Winner has been decided (including the
// call that decides it) and true otherwise.
func (b *Battle) Step() bool {
	b.history = append(b.history, b.captureSnapshot())
	b.current = newLastAction()

	if b.Winner != nil {
		return false
	}

	p1 := b.Units.AlivePlayer(1)
	p2 := b.Units.AlivePlayer(2)
	switch {
	case len(p1) == 0 && len(p2) == 0:
		w := 0
		b.Winner = &w
		return false
	case len(p1) == 0:
		w := 2
		b.Winner = &w
		return false
	case len(p2) == 0:
		w := 1
		b.Winner = &w
		return false
	}

	for b.CurrentIndex < len(b.TurnOrder) {
		id := b.TurnOrder[b.CurrentIndex]
		u, ok := b.Units.Get(id)
		if !ok || !u.Alive {
			b.CurrentIndex++
			continue
		}
		if u.FrozenTurns > 0 {
			u.FrozenTurns--
			u.HasActed = true
			b.CurrentIndex++
			continue
		}
		break
	}

	if b.CurrentIndex >= len(b.TurnOrder) {
		if b.beginRound(true) {
			return false // stalemate decided the battle this round
		}
		return b.Step()
	}

	u, _ := b.Units.Get(b.TurnOrder[b.CurrentIndex])
	b.execUnitTurn(u)

	if u.readyTriggered {
		u.readyTriggered = false
	} else {
		u.HasActed = true
	}
	b.CurrentIndex++
	return b.Winner == nil // a guard violation during the turn forces a draw
}

// execUnitTurn runs the turnstart/act/endturn sequence for one unit
// (spec.md §4.7 step 5).
func (b *Battle) execUnitTurn(u *Unit) {
	b.shadowstepPending = false
	b.fireTrigger(TriggerTurnStart, u, nil)
	if !u.Alive {
		return
	}

	pos, ok := b.Map.PositionOf(u.ID)
	if !ok {
		// An alive unit with no board position is a broken invariant
		// (spec.md §7 category 2) — deployment should have rejected this
		// army at construction rather than let a unit reach the turn
		// order unplaced.
		b.guardFail("unit %d is alive but has no map position", u.ID)
		return
	}

	enemies := b.enemiesInRange(u, pos, u.AttackRange)
	if len(enemies) > 0 {
		defender := Choice(b.rng, enemies)
		b.performAttack(u, defender, ActionAttack, pos)
	} else {
		b.moveAndMaybeAttack(u, pos)
	}

	if u.Alive {
		b.fireTrigger(TriggerEndTurn, u, nil)
	}
}

// enemiesInRange returns living enemies within rng hexes of pos.
func (b *Battle) enemiesInRange(u *Unit, pos Hex, rng int) []*Unit {
	return b.Units.WithinRange(b.Map, b.Units.AliveEnemiesOf(u.Player), pos, rng)
}

// performAttack applies one unit's attack against a chosen defender and
// records the observable outcome (spec.md §4.7 step 5b).
func (b *Battle) performAttack(attacker, defender *Unit, actionType ActionType, attackerPos Hex) {
	dmg := EffectiveDamage(b.Units, attacker)
	b.applyDamage(defender, dmg, attacker)

	defPos, _ := b.Map.PositionOf(defender.ID)
	b.current.Type = actionType
	b.current.AttackerPos = hexPtr(attackerPos)
	b.current.TargetPos = hexPtr(defPos)
	b.current.Ranged = attacker.AttackRange > 1
	b.current.Killed = !defender.Alive

	if attacker.Alive {
		b.fireTrigger(TriggerOnHit, attacker, defender)
	}
}

// moveAndMaybeAttack executes spec.md §4.7 step 5c: move toward the
// closest living enemy (or shadowstep), then attack if now in range.
func (b *Battle) moveAndMaybeAttack(u *Unit, pos Hex) {
	enemy, _, firstStep, found := ClosestEnemy(b.Map, b.Units, pos, u.Player)
	if !found {
		b.current.Type = ActionSkip
		return
	}

	moved := false
	from := pos

	if b.shadowstepPending {
		if to, ok := b.shadowstepDestination(u); ok {
			b.Map.Move(u.ID, to)
			pos = to
			moved = true
		}
	}
	b.shadowstepPending = false

	if !moved {
		if b.Map.Move(u.ID, firstStep) {
			pos = firstStep
			moved = true
		}

		if moved && u.Speed > 1.0 && b.rng.Uniform() < (u.Speed-1.0) {
			if _, _, step2, ok := ClosestEnemy(b.Map, b.Units, pos, u.Player); ok {
				if b.Map.Move(u.ID, step2) {
					pos = step2
				}
			}
		}
	}

	_ = enemy
	if moved {
		b.current.From = hexPtr(from)
		b.current.To = hexPtr(pos)
	}

	targets := b.enemiesInRange(u, pos, u.AttackRange)
	if len(targets) > 0 {
		defender := Choice(b.rng, targets)
		b.performAttack(u, defender, ActionMoveAttack, pos)
	} else if moved {
		b.current.Type = ActionMove
	} else {
		b.current.Type = ActionSkip
	}
}

// shadowstepDestination finds an unoccupied hex adjacent to the furthest
// living enemy from u's current position, ties on "furthest" and on
// neighbor choice broken by ascending enemy ID and the fixed clockwise
// neighbor order respectively (spec.md §4.7 step 5a).
func (b *Battle) shadowstepDestination(u *Unit) (Hex, bool) {
	pos, ok := b.Map.PositionOf(u.ID)
	if !ok {
		return Hex{}, false
	}
	enemies := b.Units.AliveEnemiesOf(u.Player)
	if len(enemies) == 0 {
		return Hex{}, false
	}

	var furthest *Unit
	bestDist := -1
	for _, e := range enemies {
		ePos, ok := b.Map.PositionOf(e.ID)
		if !ok {
			continue
		}
		d := pos.Distance(ePos)
		if d > bestDist || (d == bestDist && (furthest == nil || e.ID < furthest.ID)) {
			bestDist = d
			furthest = e
		}
	}
	if furthest == nil {
		return Hex{}, false
	}
	ePos, _ := b.Map.PositionOf(furthest.ID)
	for _, nb := range ePos.Neighbors() {
		if !b.Map.InBounds(nb) {
			continue
		}
		if _, occupied := b.Map.Occupant(nb); !occupied {
			return nb, true
		}
	}
	return Hex{}, false
}

// beginRound starts a new round (spec.md §4.9). checkStalemate is false
// only for the very first round at construction, which has no prior
// snapshot to compare against. Returns true if stalemate decided the
// battle.
func (b *Battle) beginRound(checkStalemate bool) bool {
	b.Round++

	if checkStalemate {
		snap := takeRoundSnapshot(b)
		if len(b.stalemateSnapshots) > 0 && sameRoundSnapshot(snap, b.stalemateSnapshots[len(b.stalemateSnapshots)-1]) {
			b.StalemateCount++
		} else {
			b.StalemateCount = 0
		}
		b.stalemateSnapshots = append(b.stalemateSnapshots, snap)
		if len(b.stalemateSnapshots) > 3 {
			b.stalemateSnapshots = b.stalemateSnapshots[len(b.stalemateSnapshots)-3:]
		}
		if b.StalemateCount == 3 {
			w := 0
			b.Winner = &w
			return true
		}
	}

	alive := b.Units.AliveAscending()
	ids := make([]UnitID, len(alive))
	for i, u := range alive {
		ids[i] = u.ID
	}
	Shuffle(b.rng, ids)
	b.TurnOrder = ids

	for _, u := range alive {
		u.HasActed = false
		u.BlockUsed = 0
	}
	b.CurrentIndex = 0
	return false
}
