package battle

// EventKind distinguishes the five queued effect event types (spec.md §4.4)
// plus the queued trigger-fire (EventFireTrigger).
type EventKind string

const (
	EventHeal        EventKind = "heal"
	EventFortify     EventKind = "fortify"
	EventSunder      EventKind = "sunder"
	EventSplash      EventKind = "splash"
	EventStrike      EventKind = "strike"
	EventFireTrigger EventKind = "fire_trigger"
)

// Event is a queued pending effect (spec.md §4.4): "Each queued event
// carries type, target_id, source_id, amount, pos, and for sunder/strike
// also source_pos." EventFireTrigger additionally carries everything
// needed to run one actor's trigger-matching abilities (spec.md §9:
// ability firings reachable from deep inside the damage pipeline —
// onkill/lament/harvest off a death, wounded off a hit — route through
// this same FIFO instead of recursing through fireTrigger/fireAbility
// natively, so a chain of arbitrary length never grows the call stack.
type Event struct {
	Kind      EventKind
	TargetID  UnitID
	SourceID  UnitID
	Amount    int
	Pos       Hex
	SourcePos Hex

	// EventFireTrigger fields.
	Trigger      Trigger
	ActorID      UnitID
	HasCtx       bool
	CtxTargetID  UnitID
	DeathGate    bool // gate each ability on distance(actor, DeathPos) <= ability.Range
	DeathPos     Hex
	AbilityIndex int // resume the trigger-matching scan from this index
}

// maxChainDepth caps event-queue drain recursion (spec.md §4.5:
// "implementation MUST cap the drain at a documented chain depth
// (recommended 64) and log truncation rather than crash").
const maxChainDepth = 64

// enqueue appends to the battle's event queue.
func (b *Battle) enqueue(ev Event) {
	b.eventQueue = append(b.eventQueue, ev)
}

// drainEvents applies every queued event in FIFO order through
// applyEvent, which may itself enqueue further events (e.g. a killing
// strike enqueues an onkill trigger-fire, whose abilities may enqueue
// more strikes). Draining continues until the queue is empty or the
// chain depth cap is hit.
//
// Reentrant calls (drainEvents invoked again while one is already running
// further down the same call stack — e.g. applyDamage -> handleDeath ->
// fireTrigger -> drainEvents, itself called from inside this loop's own
// applyEvent) return immediately: the active loop's `for len(b.eventQueue)
// > 0` simply picks up whatever the nested call enqueued on its next
// iteration. This keeps drainDepth a single counter shared across the
// whole cascade (spec.md §9: "implement the queue as an explicit FIFO
// owned by the Battle, drained iteratively with a depth counter; do not
// rely on native call-stack recursion through handlers") instead of each
// nested invocation resetting its own depth to zero.
func (b *Battle) drainEvents() {
	if b.draining {
		return
	}
	b.draining = true
	defer func() {
		b.draining = false
		b.drainDepth = 0
	}()

	for len(b.eventQueue) > 0 {
		b.drainDepth++
		if b.drainDepth > maxChainDepth {
			b.Log = append(b.Log, "event chain truncated: max depth exceeded")
			b.eventQueue = nil
			return
		}
		ev := b.eventQueue[0]
		b.eventQueue = b.eventQueue[1:]
		b.applyEvent(ev)
	}
}

// applyEvent re-resolves the target by ID (it may have died since the
// event was queued) and applies the effect. heal/fortify/sunder are
// dropped silently if the target is dead by application time;
// strike/splash still apply if the target is alive (spec.md §4.4).
func (b *Battle) applyEvent(ev Event) {
	if ev.Kind == EventFireTrigger {
		b.applyFireTrigger(ev)
		return
	}

	target, ok := b.Units.Get(ev.TargetID)
	if !ok || !target.Alive {
		return
	}
	var source *Unit
	if s, ok := b.Units.Get(ev.SourceID); ok {
		source = s
	}

	switch ev.Kind {
	case EventHeal:
		target.Heal(ev.Amount)
		b.current.HealEvents = append(b.current.HealEvents, appliedEvent(ev.Pos, ev.SourcePos, ev.Amount))
	case EventFortify:
		target.Fortify(ev.Amount)
		b.current.FortifyEvents = append(b.current.FortifyEvents, appliedEvent(ev.Pos, ev.SourcePos, ev.Amount))
	case EventSunder:
		target.Sunder(ev.Amount)
		b.current.SunderEvents = append(b.current.SunderEvents, appliedEvent(ev.Pos, ev.SourcePos, ev.Amount))
	case EventStrike:
		actual := b.applyDamage(target, ev.Amount, source)
		b.current.StrikeEvents = append(b.current.StrikeEvents, appliedEvent(ev.Pos, ev.SourcePos, actual))
	case EventSplash:
		actual := b.applyDamage(target, ev.Amount, source)
		b.current.SplashEvents = append(b.current.SplashEvents, appliedEvent(ev.Pos, ev.SourcePos, actual))
	}
}

// applyFireTrigger runs one actor's trigger-matching abilities in
// declaration order, stopping early if the actor dies partway through
// (spec.md §4.3). It is the queue-driven replacement for looping over
// abilities inline inside fireTrigger/fireDeathTrigger.
//
// Each ability fires at most one at a time: after firing ability i, a
// continuation event (AbilityIndex = i+1) is enqueued to resume the scan,
// landing right behind whatever events ability i itself just enqueued. So
// by the time the continuation is dequeued, ability i's own effects have
// already been drained, and the actor.Alive check on redequeue sees their
// outcome — the same "fire one, observe, fire the next" cadence the old
// inline loop had — without ever recursing through the native call stack;
// resuming is just another FIFO entry.
func (b *Battle) applyFireTrigger(ev Event) {
	actor, ok := b.Units.Get(ev.ActorID)
	if !ok || !actor.Alive || actor.Silenced {
		return
	}
	var ctxTarget *Unit
	if ev.HasCtx {
		ctxTarget, _ = b.Units.Get(ev.CtxTargetID)
	}

	for i := ev.AbilityIndex; i < len(actor.Abilities); i++ {
		a := actor.Abilities[i]
		if a.Trigger != ev.Trigger {
			continue
		}
		if ev.DeathGate {
			pos, ok := b.Map.PositionOf(actor.ID)
			if !ok || pos.Distance(ev.DeathPos) > a.Range {
				continue
			}
		}
		b.fireAbility(actor, a, ctxTarget)
		cont := ev
		cont.AbilityIndex = i + 1
		b.enqueue(cont)
		return
	}
}

func appliedEvent(pos, sourcePos Hex, amount int) AppliedEvent {
	return AppliedEvent{TargetPos: pos, SourcePos: sourcePos, Amount: amount}
}
