package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var undoSteps int

var undoCmd = &cobra.Command{
	Use:   "undo <army-file.json>",
	Short: "Advance n steps, then undo the last one, and print both states",
	Args:  cobra.ExactArgs(1),
	RunE:  runUndo,
}

func init() {
	rootCmd.AddCommand(undoCmd)
	undoCmd.Flags().IntVarP(&undoSteps, "n", "n", 1, "number of steps to advance before undoing")
}

func runUndo(cmd *cobra.Command, args []string) error {
	b, err := newBattleFromFile(args[0], nil)
	if err != nil {
		return err
	}

	// LastAction is nil again once the very first step has been undone.
	describe := func() string {
		last := "none"
		if a := b.LastAction(); a != nil {
			last = string(a.Type)
		}
		return fmt.Sprintf("round %d, index %d, last action %s", b.Round, b.CurrentIndex, last)
	}

	b.Replay(undoSteps)
	before := describe()

	if !b.Undo() {
		return fmt.Errorf("nothing to undo")
	}
	after := describe()

	formatter := NewOutputFormatter()
	if formatter.JSON {
		return formatter.PrintJSON(map[string]string{"before_undo": before, "after_undo": after})
	}
	return formatter.PrintText(fmt.Sprintf("before undo: %s\nafter undo:  %s", before, after))
}
