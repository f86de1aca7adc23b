package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	runSeed     int64
	runSeedSet  bool
	runMaxSteps int
)

var runCmd = &cobra.Command{
	Use:   "run <army-file.json>",
	Short: "Run a battle to completion (or until --max-steps is hit)",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "override the army file's seed")
	runCmd.Flags().IntVar(&runMaxSteps, "max-steps", 10000, "safety cap on steps taken")
}

func runRun(cmd *cobra.Command, args []string) error {
	runSeedSet = cmd.Flags().Changed("seed")
	var seed *int64
	if runSeedSet {
		seed = &runSeed
	}

	b, err := newBattleFromFile(args[0], seed)
	if err != nil {
		return err
	}

	steps := 0
	for !b.IsOver() && steps < runMaxSteps {
		b.Step()
		steps++
		if isVerbose() {
			fmt.Println(formatStep(b.Round, steps, b.LastAction()))
		}
	}

	formatter := NewOutputFormatter()
	if formatter.JSON {
		return formatter.PrintJSON(map[string]any{
			"steps":  steps,
			"round":  b.Round,
			"winner": b.Winner,
		})
	}
	return formatter.PrintText(fmt.Sprintf("%s after %d steps (round %d)", formatWinner(b.Winner), steps, b.Round))
}
