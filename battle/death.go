package battle

// handleDeath runs spec.md §4.8 once u's hp has reached zero: onkill on
// the killer, lament/harvest on nearby units, and the lament_aura passive
// scan. u is removed from the map (but stays in the unit list per spec.md
// §3.3) before any of this fires, so pathing and distance checks never
// see a corpse occupying its hex.
func (b *Battle) handleDeath(u *Unit, source *Unit) {
	deathPos := b.posOf(u)
	b.Map.Remove(u.ID)

	if source != nil && source.Alive {
		b.fireTrigger(TriggerOnKill, source, u)
	}

	ids := make([]UnitID, 0, len(b.Units.order))
	for _, v := range b.Units.AliveAscending() {
		if v.ID != u.ID {
			ids = append(ids, v.ID)
		}
	}

	for _, id := range ids {
		v, ok := b.Units.Get(id)
		if !ok || !v.Alive {
			continue
		}
		switch {
		case v.IsAllyOf(u.Player):
			b.fireDeathTrigger(TriggerLament, v, u, deathPos)
		case v.IsEnemyOf(u.Player):
			b.fireDeathTrigger(TriggerHarvest, v, u, deathPos)
		}
	}

	for _, id := range ids {
		v, ok := b.Units.Get(id)
		if !ok || !v.Alive || !v.IsAllyOf(u.Player) {
			continue
		}
		for _, a := range v.Abilities {
			if a.Trigger != TriggerPassive || a.Effect != EffectLamentAura {
				continue
			}
			vPos := b.posOf(v)
			for _, ally := range b.Units.AliveAlliesOf(u.Player) {
				allyPos := b.posOf(ally)
				if allyPos.Distance(vPos) <= a.Aura {
					ally.Ramp(a.Value)
					b.current.VengeancePositions = append(b.current.VengeancePositions, allyPos)
				}
			}
		}
	}
}
