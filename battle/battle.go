package battle

import "github.com/google/uuid"

// Battle is the facade the spec calls for (spec.md §2 component 10): map,
// units, turn order, and the handful of bits of read-only state a host UI
// needs (§6.2). All mutation happens inside Step/Undo, grounded on
// lib/game.go's single-owning-struct model ("Avoid global state — all
// engine state is inside the Battle value, so multiple battles can
// coexist", spec.md §9).
type Battle struct {
	// ID is a stable external handle for this battle instance, for hosts
	// that track many concurrent battles. It plays no role in simulation
	// logic.
	ID string

	Units *UnitSet
	Map   *Map
	rng   *RNG

	TurnOrder    []UnitID
	CurrentIndex int
	Round        int
	Winner       *int // nil while running, else 0 (draw), 1, or 2

	Log             []string
	GuardViolations []*GuardViolation

	ApplyEventsImmediately bool
	eventQueue             []Event
	// draining/drainDepth make drainEvents reentrancy-safe: a nested call
	// (e.g. applyDamage -> handleDeath -> fireTrigger -> drainEvents, while
	// an outer drainEvents is already iterating its own queue) returns
	// immediately instead of starting a second loop, so the chain-depth cap
	// bounds the true cascade length rather than resetting at each level of
	// native call-stack nesting (spec.md §9 "Queued events and chain
	// recursion").
	draining   bool
	drainDepth int

	stalemateSnapshots []roundSnapshot
	StalemateCount     int

	history []*snapshot

	current *LastAction

	// shadowstepPending is set by a turnstart Shadowstep ability and
	// consumed by the movement phase of the same Step call (spec.md §4.7
	// step 5a/5c).
	shadowstepPending bool
}

// NewBattle constructs a battle from two army specs and a seed (spec.md
// §6.1). Construction fails atomically on any caller error (spec.md §7
// category 1): malformed specs, unknown ability trigger/effect/target,
// count < 1, or an explicit out-of-bounds/occupied position.
func NewBattle(p1Specs, p2Specs []UnitSpec, seed int64, opts Options) (*Battle, error) {
	p1, err := expandSpecs(p1Specs)
	if err != nil {
		return nil, err
	}
	p2, err := expandSpecs(p2Specs)
	if err != nil {
		return nil, err
	}

	rows := RowsForArmySize(len(p1), len(p2))
	if len(p1)+len(p2) > rows*Cols {
		return nil, validationErrorf("army sizes %d+%d exceed board capacity %dx%d", len(p1), len(p2), Cols, rows)
	}
	b := &Battle{
		ID:                     uuid.NewString(),
		Map:                    NewMap(rows),
		rng:                    NewRNG(seed),
		ApplyEventsImmediately: true,
	}
	if opts.ApplyEventsImmediately != nil {
		b.ApplyEventsImmediately = *opts.ApplyEventsImmediately
	}
	b.Units = newUnitSet()

	if err := b.buildPlayer(p1, 1); err != nil {
		return nil, err
	}
	if err := b.buildPlayer(p2, 2); err != nil {
		return nil, err
	}

	b.beginRound(false)
	return b, nil
}

func (b *Battle) buildPlayer(specs []UnitSpec, player int) error {
	var toDeploy []*Unit
	for _, s := range specs {
		u := unitFromSpec(s, player)
		for i, a := range u.Abilities {
			if err := validateAbility(a, u.Name, i); err != nil {
				return err
			}
		}
		b.Units.Add(u)

		if s.Position != nil {
			h := Hex{Col: s.Position.Col, Row: s.Position.Row}
			if !b.Map.InBounds(h) {
				return validationErrorf("unit %q: position %v out of bounds", u.Name, h)
			}
			if !b.Map.Place(u.ID, h) {
				return validationErrorf("unit %q: position %v already occupied", u.Name, h)
			}
		} else {
			toDeploy = append(toDeploy, u)
		}
	}
	if !deployRangeTier(b.Map, b.rng, toDeploy, player) {
		return validationErrorf("player %d: army does not fit on the %dx%d board", player, Cols, b.Map.Rows)
	}
	return nil
}

// LastAction returns the structured record of the most recent Step
// (spec.md §6.3). Nil before the first Step.
func (b *Battle) LastAction() *LastAction { return b.current }

// IsOver reports whether Winner has been decided.
func (b *Battle) IsOver() bool { return b.Winner != nil }

// Replay drives up to n steps, collecting each step's outcome, grounded on
// lib/moves.go's ProcessMoves batch wrapper around ProcessMove.
func (b *Battle) Replay(n int) []StepResult {
	out := make([]StepResult, 0, n)
	for i := 0; i < n; i++ {
		cont := b.Step()
		out = append(out, StepResult{Continued: cont, LastAction: b.current, Winner: b.Winner})
		if !cont {
			break
		}
	}
	return out
}
