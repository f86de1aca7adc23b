package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var stepCount int

var stepCmd = &cobra.Command{
	Use:   "step <army-file.json>",
	Short: "Advance a fresh battle n steps and print each outcome",
	Args:  cobra.ExactArgs(1),
	RunE:  runStep,
}

func init() {
	rootCmd.AddCommand(stepCmd)
	stepCmd.Flags().IntVarP(&stepCount, "n", "n", 1, "number of steps to advance")
}

func runStep(cmd *cobra.Command, args []string) error {
	b, err := newBattleFromFile(args[0], nil)
	if err != nil {
		return err
	}

	results := b.Replay(stepCount)

	formatter := NewOutputFormatter()
	if formatter.JSON {
		return formatter.PrintJSON(results)
	}
	for i, r := range results {
		fmt.Println(formatStep(b.Round, i+1, r.LastAction))
		if !r.Continued {
			fmt.Println(formatWinner(r.Winner))
			break
		}
	}
	return nil
}
