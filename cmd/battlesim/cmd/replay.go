package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var replaySteps int

var replayCmd = &cobra.Command{
	Use:   "replay <army-file.json>",
	Short: "Run a battle to completion, printing the outcome of every step",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().IntVar(&replaySteps, "steps", 10000, "safety cap on steps taken")
}

func runReplay(cmd *cobra.Command, args []string) error {
	b, err := newBattleFromFile(args[0], nil)
	if err != nil {
		return err
	}

	results := b.Replay(replaySteps)

	formatter := NewOutputFormatter()
	if formatter.JSON {
		return formatter.PrintJSON(results)
	}
	for i, r := range results {
		fmt.Println(formatStep(b.Round, i+1, r.LastAction))
	}
	if len(results) > 0 {
		fmt.Println(formatWinner(results[len(results)-1].Winner))
	}
	return nil
}
