package battle

// fireTrigger fires every ability of u whose trigger matches, in
// declaration order (spec.md §4.3). ctxTarget is C.target — the unit a
// "target"-kind ability resolves against (e.g. the defender for onhit,
// the damage source for wounded, the victim for onkill). A silenced or
// dead unit fires nothing.
//
// The actual per-ability loop runs inside applyFireTrigger, driven by
// drainEvents' FIFO (spec.md §9): this function only enqueues the
// trigger-fire and, if configured, drains. Routing through the queue
// means fireTrigger is safe to call from anywhere — including from deep
// inside the damage pipeline's own call stack (applyDamage, handleDeath)
// — without growing the native call stack per chained death.
func (b *Battle) fireTrigger(trigger Trigger, u *Unit, ctxTarget *Unit) {
	if u.Silenced || !u.Alive {
		return
	}
	b.enqueueFireTrigger(trigger, u, ctxTarget, false, Hex{})
	if b.ApplyEventsImmediately {
		b.drainEvents()
	}
}

// fireDeathTrigger is fireTrigger's lament/harvest variant (spec.md §4.8):
// each candidate ability additionally gates on distance(v, deathPos) <=
// ability.Range before it is allowed to fire.
func (b *Battle) fireDeathTrigger(trigger Trigger, v *Unit, ctxTarget *Unit, deathPos Hex) {
	if v.Silenced || !v.Alive {
		return
	}
	b.enqueueFireTrigger(trigger, v, ctxTarget, true, deathPos)
	if b.ApplyEventsImmediately {
		b.drainEvents()
	}
}

// enqueueFireTrigger appends an EventFireTrigger for actor to the queue.
func (b *Battle) enqueueFireTrigger(trigger Trigger, actor *Unit, ctxTarget *Unit, deathGate bool, deathPos Hex) {
	ev := Event{Kind: EventFireTrigger, ActorID: actor.ID, Trigger: trigger, DeathGate: deathGate, DeathPos: deathPos}
	if ctxTarget != nil {
		ev.HasCtx = true
		ev.CtxTargetID = ctxTarget.ID
	}
	b.enqueue(ev)
}

// fireAbility runs one ability's charge gate, target resolution, and
// effect handler (spec.md §4.3 step 2).
func (b *Battle) fireAbility(u *Unit, a *Ability, ctxTarget *Unit) {
	a.chargeCounter++
	if a.chargeCounter < a.Charge {
		return
	}
	a.chargeCounter = 0

	targets := b.resolveTargets(u, a, ctxTarget)
	b.invokeEffect(u, a, targets, ctxTarget)
}

// isDamagingEffect reports whether effect is one of the "valid means
// enemy" effects (spec.md §4.3 step 2c).
func isDamagingEffect(e Effect) bool {
	switch e {
	case EffectStrike, EffectSplash, EffectSunder, EffectFreeze, EffectSilence, EffectPush:
		return true
	}
	return false
}

// isSupportiveEffect reports whether effect is one of the "valid means
// ally" effects.
func isSupportiveEffect(e Effect) bool {
	return e == EffectHeal || e == EffectFortify
}

// filterValid keeps only the candidates a given effect may legally target
// (spec.md §4.3 step 2c): enemies for damaging effects, allies for
// supportive effects (heal additionally excludes full-HP units), anything
// alive otherwise.
func filterValid(cands []*Unit, effect Effect, actor *Unit) []*Unit {
	damaging := isDamagingEffect(effect)
	supportive := isSupportiveEffect(effect)
	out := make([]*Unit, 0, len(cands))
	for _, c := range cands {
		if damaging && !c.IsEnemyOf(actor.Player) {
			continue
		}
		if supportive && !c.IsAllyOf(actor.Player) {
			continue
		}
		if effect == EffectHeal && c.HP >= c.MaxHP {
			continue
		}
		out = append(out, c)
	}
	return out
}

// candidatesWithinRange returns every living unit (including u itself)
// within rng hexes of u's position.
func (b *Battle) candidatesWithinRange(u *Unit, rng int) []*Unit {
	pos, ok := b.Map.PositionOf(u.ID)
	if !ok {
		return nil
	}
	return b.Units.WithinRange(b.Map, b.Units.AliveAscending(), pos, rng)
}

// resolveTargets implements spec.md §4.3 step 2c for all five target
// kinds.
func (b *Battle) resolveTargets(u *Unit, a *Ability, ctxTarget *Unit) []*Unit {
	switch a.Target {
	case TargetSelf:
		return []*Unit{u}
	case TargetTarget:
		if ctxTarget != nil && ctxTarget.Alive {
			return []*Unit{ctxTarget}
		}
		return nil
	case TargetRandom:
		cands := filterValid(b.candidatesWithinRange(u, a.Range), a.Effect, u)
		if len(cands) == 0 {
			return nil
		}
		return []*Unit{Choice(b.rng, cands)}
	case TargetArea:
		return filterValid(b.candidatesWithinRange(u, a.Range), a.Effect, u)
	case TargetGlobal:
		if isDamagingEffect(a.Effect) {
			return filterValid(b.Units.AliveEnemiesOf(u.Player), a.Effect, u)
		}
		return filterValid(b.Units.AliveAlliesOf(u.Player), a.Effect, u)
	}
	return nil
}

func (b *Battle) posOf(u *Unit) Hex {
	p, _ := b.Map.PositionOf(u.ID)
	return p
}

// invokeEffect is the effect handler table (spec.md §4.4). Heal, fortify,
// strike, splash and sunder enqueue events for the drain loop; everything
// else mutates state immediately.
func (b *Battle) invokeEffect(u *Unit, a *Ability, targets []*Unit, ctxTarget *Unit) {
	switch a.Effect {
	case EffectHeal:
		for _, t := range targets {
			b.enqueue(Event{Kind: EventHeal, TargetID: t.ID, SourceID: u.ID, Amount: a.Value, Pos: b.posOf(t), SourcePos: b.posOf(u)})
		}
	case EffectFortify:
		for _, t := range targets {
			b.enqueue(Event{Kind: EventFortify, TargetID: t.ID, SourceID: u.ID, Amount: a.Value, Pos: b.posOf(t), SourcePos: b.posOf(u)})
		}
	case EffectStrike:
		for _, t := range targets {
			b.enqueue(Event{Kind: EventStrike, TargetID: t.ID, SourceID: u.ID, Amount: a.Value, Pos: b.posOf(t), SourcePos: b.posOf(u)})
		}
	case EffectSplash:
		for _, primary := range targets {
			primaryPos := b.posOf(primary)
			for _, adj := range b.Units.AliveEnemiesOf(u.Player) {
				if adj.ID == primary.ID {
					continue
				}
				adjPos := b.posOf(adj)
				if adjPos.Distance(primaryPos) != 1 {
					continue
				}
				b.enqueue(Event{Kind: EventSplash, TargetID: adj.ID, SourceID: u.ID, Amount: a.Value, Pos: adjPos, SourcePos: b.posOf(u)})
			}
		}
	case EffectSunder:
		for _, t := range targets {
			b.enqueue(Event{Kind: EventSunder, TargetID: t.ID, SourceID: u.ID, Amount: a.Value, Pos: b.posOf(t), SourcePos: b.posOf(u)})
		}
	case EffectRamp:
		u.Ramp(a.Value)
		b.current.RampPos = hexPtr(b.posOf(u))
	case EffectPush:
		for _, t := range targets {
			b.pushUnit(u, t, a.Value)
		}
	case EffectRetreat:
		b.retreatUnit(u, ctxTarget)
	case EffectFreeze:
		for _, t := range targets {
			if a.Value > t.FrozenTurns {
				t.FrozenTurns = a.Value
			}
		}
	case EffectSummon:
		b.summonUnits(u, a)
	case EffectShadowstep:
		b.shadowstepPending = true
	case EffectSilence:
		for _, t := range targets {
			t.Silenced = true
		}
	case EffectReady:
		u.readyTriggered = true
	}
	// block, execute, armor, boost, undying, lament_aura are passive-only
	// and never reach invokeEffect through normal dispatch.
}

// pushUnit moves target along the pusher->target column direction up to
// value hexes, stopping at the first blocked or out-of-bounds step
// (spec.md §4.1, §4.4 "push").
func (b *Battle) pushUnit(pusher, target *Unit, value int) {
	pusherPos := b.posOf(pusher)
	from := b.posOf(target)
	dir := PushDirection(pusherPos, from)
	cur := from
	for i := 0; i < value; i++ {
		next := Hex{Col: cur.Col + dir, Row: cur.Row}
		if !b.Map.InBounds(next) {
			break
		}
		if _, occupied := b.Map.Occupant(next); occupied {
			break
		}
		b.Map.Move(target.ID, next)
		cur = next
	}
	if cur != from {
		b.current.PushFrom = hexPtr(from)
		b.current.PushTo = hexPtr(cur)
	}
}

// retreatUnit moves u one hex directly away from ctxTarget: the neighbor
// that increases distance, is unoccupied and in bounds, preferring the
// first match in clockwise neighbor order (spec.md §4.4 "retreat").
func (b *Battle) retreatUnit(u, ctxTarget *Unit) {
	if ctxTarget == nil {
		return
	}
	from := b.posOf(u)
	targetPos := b.posOf(ctxTarget)
	curDist := from.Distance(targetPos)

	for _, nb := range from.Neighbors() {
		if !b.Map.InBounds(nb) {
			continue
		}
		if _, occupied := b.Map.Occupant(nb); occupied {
			continue
		}
		if nb.Distance(targetPos) > curDist {
			b.Map.Move(u.ID, nb)
			b.current.From = hexPtr(from)
			b.current.To = hexPtr(nb)
			return
		}
	}
}

// summonUnits creates up to value Blade units in empty hexes adjacent to
// u, in clockwise neighbor order (spec.md §4.4 "summon"). Ready-flagged
// summons are inserted into the remainder of the current round's turn
// order, right after CurrentIndex (the summoner's own slot when it summons
// on its own turn).
func (b *Battle) summonUnits(u *Unit, a *Ability) {
	pos, ok := b.Map.PositionOf(u.ID)
	if !ok {
		return
	}
	var summoned []UnitID
	count := 0
	for _, nb := range pos.Neighbors() {
		if count >= a.Value {
			break
		}
		if !b.Map.InBounds(nb) {
			continue
		}
		if _, occupied := b.Map.Occupant(nb); occupied {
			continue
		}
		blade := newBlade(u.Player, u.ID)
		b.Units.Add(blade)
		b.Map.Place(blade.ID, nb)
		summoned = append(summoned, blade.ID)
		count++
	}
	if a.SummonReady && len(summoned) > 0 {
		head := append([]UnitID(nil), b.TurnOrder[:b.CurrentIndex+1]...)
		tail := append([]UnitID(nil), b.TurnOrder[b.CurrentIndex+1:]...)
		head = append(head, summoned...)
		b.TurnOrder = append(head, tail...)
	}
}
