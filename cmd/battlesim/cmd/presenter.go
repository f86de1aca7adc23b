package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/turnforge/battlesim/battle"
)

// loadArmyFile reads and decodes a battle.ArmyFile from disk.
func loadArmyFile(path string) (*battle.ArmyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read army file %s: %w", path, err)
	}
	var af battle.ArmyFile
	if err := json.Unmarshal(data, &af); err != nil {
		return nil, fmt.Errorf("failed to parse army file %s: %w", path, err)
	}
	return &af, nil
}

// newBattleFromFile loads an army file and constructs the battle, letting
// an explicit --seed flag override the file's own seed.
func newBattleFromFile(path string, seedOverride *int64) (*battle.Battle, error) {
	af, err := loadArmyFile(path)
	if err != nil {
		return nil, err
	}
	seed := af.Seed
	if seedOverride != nil {
		seed = *seedOverride
	}
	return battle.NewBattle(af.Player1, af.Player2, seed, af.Options)
}

var (
	colorAttack = color.New(color.FgRed)
	colorMove   = color.New(color.FgCyan)
	colorSkip   = color.New(color.FgHiBlack)
	colorKill   = color.New(color.FgRed, color.Bold)
	colorWinner = color.New(color.FgGreen, color.Bold)
)

// formatStep renders one LastAction as a single line, grounded on the
// original CLI's FormatGameStatus line-oriented text rendering.
func formatStep(round, idx int, a *battle.LastAction) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "round %d: ", round)

	switch a.Type {
	case battle.ActionAttack, battle.ActionMoveAttack:
		line := fmt.Sprintf("%s %s -> %s", a.Type, hexStr(a.AttackerPos), hexStr(a.TargetPos))
		if a.Killed {
			sb.WriteString(colorKill.Sprint(line + " (killed)"))
		} else {
			sb.WriteString(colorAttack.Sprint(line))
		}
	case battle.ActionMove:
		sb.WriteString(colorMove.Sprintf("move %s -> %s", hexStr(a.From), hexStr(a.To)))
	default:
		sb.WriteString(colorSkip.Sprint("skip"))
	}
	return sb.String()
}

func hexStr(h *battle.Hex) string {
	if h == nil {
		return "?"
	}
	return h.String()
}

// formatWinner renders the terminal outcome of a battle.
func formatWinner(winner *int) string {
	if winner == nil {
		return "battle still in progress"
	}
	switch *winner {
	case 0:
		return colorWinner.Sprint("draw")
	default:
		return colorWinner.Sprintf("player %d wins", *winner)
	}
}
