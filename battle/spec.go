package battle

// AbilitySpec is the JSON-decodable form of Ability (spec.md §6.1),
// grounded on lib/rules_loader.go's JSON-driven data tables.
type AbilitySpec struct {
	Trigger string `json:"trigger"`
	Effect  string `json:"effect"`
	Target  string `json:"target"`
	Value   int    `json:"value"`
	Range   int    `json:"range,omitempty"`
	Charge  int    `json:"charge,omitempty"`
	Aura    int    `json:"aura,omitempty"`

	SummonReady bool `json:"summon_ready,omitempty"`
}

// HexSpec is the JSON-decodable form of a fixed deployment position.
type HexSpec struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// UnitSpec is the external, already-resolved unit description the engine
// receives at construction (spec.md §6.1). The engine never reads stat
// tables itself — callers (the overworld meta-game, out of scope per
// spec.md §1) are responsible for resolving a UnitSpec from their own
// hero/unit data before handing it to NewBattle.
type UnitSpec struct {
	Name        string        `json:"name"`
	DisplayName string        `json:"display_name,omitempty"`
	MaxHP       int           `json:"max_hp"`
	HP          int           `json:"hp,omitempty"`
	Damage      int           `json:"damage"`
	Range       int           `json:"range"`
	Armor       int           `json:"armor,omitempty"`
	Speed       float64       `json:"speed,omitempty"`
	Abilities   []AbilitySpec `json:"abilities,omitempty"`
	Count       int           `json:"count,omitempty"`
	Position    *HexSpec      `json:"position,omitempty"`
}

// Options configures optional battle behavior (spec.md §3.1).
type Options struct {
	ApplyEventsImmediately *bool `json:"apply_events_immediately,omitempty"`
}

// ArmyFile is the top-level JSON document the CLI loads to build a battle,
// grounded on lib/legacy.go's LegacyGameData top-level container, adapted
// from a terrain/unit catalogue to a pair of battle rosters.
type ArmyFile struct {
	Seed    int64      `json:"seed"`
	Player1 []UnitSpec `json:"player1"`
	Player2 []UnitSpec `json:"player2"`
	Options Options    `json:"options,omitempty"`
}

// expandSpecs expands count>1 specs into that many identical units and
// validates caller errors (spec.md §6.1, §7 category 1).
func expandSpecs(specs []UnitSpec) ([]UnitSpec, error) {
	out := make([]UnitSpec, 0, len(specs))
	for _, s := range specs {
		n := s.Count
		if n == 0 {
			n = 1
		}
		if n < 1 {
			return nil, validationErrorf("unit %q: count must be >= 1", s.Name)
		}
		if err := validateUnitSpec(&s); err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			cp := s
			cp.Count = 1
			out = append(out, cp)
		}
	}
	return out, nil
}

func abilityFromSpec(a AbilitySpec) *Ability {
	return &Ability{
		Trigger:     Trigger(a.Trigger),
		Effect:      Effect(a.Effect),
		Target:      Target(a.Target),
		Value:       a.Value,
		Range:       a.Range,
		Charge:      a.Charge,
		Aura:        a.Aura,
		SummonReady: a.SummonReady,
	}
}

func unitFromSpec(s UnitSpec, player int) *Unit {
	hp := s.HP
	if hp == 0 {
		hp = s.MaxHP
	}
	speed := s.Speed
	if speed < 1.0 {
		speed = 1.0
	}
	abilities := make([]*Ability, len(s.Abilities))
	for i, as := range s.Abilities {
		abilities[i] = abilityFromSpec(as)
	}
	return &Unit{
		Name:        s.Name,
		DisplayName: s.DisplayName,
		Player:      player,
		Alive:       true,
		MaxHP:       s.MaxHP,
		HP:          hp,
		Damage:      s.Damage,
		AttackRange: s.Range,
		Armor:       s.Armor,
		Speed:       speed,
		Abilities:   abilities,
	}
}

// newBlade builds a summon-effect Blade unit (spec.md §4.4 "summon"):
// HP 1, damage 2, range 1, no abilities.
func newBlade(player int, summoner UnitID) *Unit {
	return &Unit{
		Name:        "blade",
		DisplayName: "Blade",
		Player:      player,
		Alive:       true,
		MaxHP:       1,
		HP:          1,
		Damage:      2,
		AttackRange: 1,
		Speed:       1.0,
		SummonerID:  summoner,
		HasSummoner: true,
	}
}
